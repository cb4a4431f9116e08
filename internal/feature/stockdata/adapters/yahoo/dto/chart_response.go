// Package dto はYahoo Finance chart APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// ChartResponse は /v8/finance/chart/{symbol} のJSONレスポンスです。
// 休場日などの欠損値は null で返るため、数値はポインタで受けます。
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

type ChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []Quote `json:"quote"`
	} `json:"indicators"`
}

type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
