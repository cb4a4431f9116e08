// Package yahoo はYahoo Finance chart APIから日足データを取得するクライアントを提供します。
package yahoo

import "time"

// DefaultBaseURL is the public v8 chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// DefaultUserAgent is sent with every request; the endpoint rejects empty agents.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config はYahoo Finance クライアントの設定を保持します。
type Config struct {
	BaseURL   string        // APIのベースURL
	UserAgent string        // User-Agent ヘッダー
	Timeout   time.Duration // HTTPリクエストタイムアウト
}
