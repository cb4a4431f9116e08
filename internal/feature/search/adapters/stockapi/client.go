// Package stockapi はstock data サービスのHTTPクライアントを提供します。
package stockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"stockchart/internal/feature/search/domain/entity"
	"stockchart/internal/feature/search/usecase"
)

const (
	stockDataPath = "/api/stock_data/"
	predictPath   = "/api/predict/"
)

// APIError はサービスがステータスとエラーメッセージで応答したことを表します。
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stock api: %d: %s", e.StatusCode, e.Message)
}

// Client はstock data サービスへのリクエストを行います。
type Client struct {
	http *resty.Client
}

// ClientがStockDataClientを実装していることをコンパイル時に検証します。
var _ usecase.StockDataClient = (*Client)(nil)

// NewClient は baseURL に対するClientを生成します。
// hc が nil の場合は全体タイムアウトなしのクライアントを使います。
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	c := resty.NewWithClient(hc).SetBaseURL(strings.TrimRight(baseURL, "/"))
	return &Client{http: c}
}

// FetchSeries は GET {base}/api/stock_data/{ticker} を1回だけ発行し、結果を分類します。
// エラー本文を持つ応答はステータスに関わらず DomainError になります。
func (c *Client) FetchSeries(ctx context.Context, ticker string) entity.Result {
	res, err := c.http.R().
		SetContext(ctx).
		Get(stockDataPath + url.PathEscape(ticker))
	if err != nil {
		return entity.TransportError{Err: fmt.Errorf("GET %s%s: %w", stockDataPath, ticker, err)}
	}
	return decodeSeries(res.StatusCode(), res.Body())
}

// FetchPrediction は GET {base}/api/predict/{ticker} の結果を返します。
func (c *Client) FetchPrediction(ctx context.Context, ticker string) (entity.Prediction, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(predictPath + url.PathEscape(ticker))
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("GET %s%s: %w", predictPath, ticker, err)
	}

	body := res.Body()
	if msg, ok := errorMessage(body); ok {
		return entity.Prediction{}, &APIError{StatusCode: res.StatusCode(), Message: msg}
	}
	if res.IsError() {
		return entity.Prediction{}, fmt.Errorf("stock api: unexpected status %d", res.StatusCode())
	}

	var p entity.Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		return entity.Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}
	return p, nil
}

// decodeSeries は応答を Success / DomainError / TransportError のいずれかに分類します。
func decodeSeries(status int, body []byte) entity.Result {
	if msg, ok := errorMessage(body); ok {
		return entity.DomainError{Message: msg}
	}
	if status < 200 || status > 299 {
		return entity.TransportError{Err: fmt.Errorf("unexpected status %d", status)}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return entity.TransportError{Err: errors.New("response body is not a JSON array")}
	}
	var series []entity.Point
	if err := json.Unmarshal(trimmed, &series); err != nil {
		return entity.TransportError{Err: fmt.Errorf("decode series: %w", err)}
	}
	return entity.Success{Series: series}
}

// errorMessage は {"error": "..."} 形式の本文からメッセージを取り出します。
func errorMessage(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var e struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &e); err != nil || e.Error == nil || *e.Error == "" {
		return "", false
	}
	return *e.Error, true
}
