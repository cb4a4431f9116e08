// Package dto はstockdataフィーチャーのHTTPレスポンスDTOを定義します。
package dto

// PriceResponse は日足1本分のレスポンスDTOです。
type PriceResponse struct {
	Date   string  `json:"date"`   // 日付（YYYY-MM-DD）
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// PredictionResponse は翌営業日の終値予測のレスポンスDTOです。
type PredictionResponse struct {
	Ticker         string  `json:"ticker"`
	PredictedClose float64 `json:"predicted_close"`
	Observations   int     `json:"observations"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
