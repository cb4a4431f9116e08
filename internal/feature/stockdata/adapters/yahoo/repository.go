package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"stockchart/internal/feature/stockdata/adapters/yahoo/dto"
	"stockchart/internal/feature/stockdata/domain/entity"
	"stockchart/internal/feature/stockdata/usecase"
)

// codeNotFound is the chart error code for unknown or delisted symbols.
const codeNotFound = "Not Found"

// YahooMarket はYahoo Finance から株価データを取得するMarketRepository実装です。
type YahooMarket struct {
	client *resty.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketを生成します。
func NewYahooMarket(cfg Config, hc *http.Client) *YahooMarket {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	c := resty.NewWithClient(hc).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &YahooMarket{client: c}
}

// GetDailyHistory は period 分の日足データを取得します。
// 存在しない銘柄は usecase.ErrNoData を返します。
func (y *YahooMarket) GetDailyHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.PricePoint, error) {
	var body dto.ChartResponse
	res, err := y.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    string(period),
			"interval": "1d",
		}).
		SetResult(&body).
		SetError(&body).
		Get("/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}

	if e := body.Chart.Error; e != nil {
		if e.Code == codeNotFound {
			return nil, fmt.Errorf("yahoo: %s: %w", e.Description, usecase.ErrNoData)
		}
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if res.IsError() {
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode())
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}

	return toPricePoints(body.Chart.Result[0])
}

func toPricePoints(r dto.ChartResult) ([]entity.PricePoint, error) {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return nil, nil
	}

	loc := time.UTC
	if r.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(r.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	q := r.Indicators.Quote[0]
	if len(q.Close) != len(r.Timestamp) {
		return nil, fmt.Errorf("yahoo: %d timestamps but %d closes", len(r.Timestamp), len(q.Close))
	}

	out := make([]entity.PricePoint, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		// 終値のない足（休場日など）はスキップ
		if q.Close[i] == nil {
			continue
		}
		t := time.Unix(ts, 0).In(loc)
		out = append(out, entity.PricePoint{
			Time:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Open:   floatAt(q.Open, i),
			High:   floatAt(q.High, i),
			Low:    floatAt(q.Low, i),
			Close:  *q.Close[i],
			Volume: intAt(q.Volume, i),
		})
	}
	return out, nil
}

func floatAt(vs []*float64, i int) float64 {
	if i < len(vs) && vs[i] != nil {
		return *vs[i]
	}
	return 0
}

func intAt(vs []*int64, i int) int64 {
	if i < len(vs) && vs[i] != nil {
		return *vs[i]
	}
	return 0
}
