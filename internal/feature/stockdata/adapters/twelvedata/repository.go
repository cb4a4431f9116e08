package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"stockchart/internal/feature/stockdata/adapters/twelvedata/dto"
	"stockchart/internal/feature/stockdata/domain/entity"
	"stockchart/internal/feature/stockdata/usecase"
)

// maxOutputSize はTwelve Dataが1リクエストで返す最大件数です。
const maxOutputSize = 5000

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	client *resty.Client
	now    func() time.Time
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
// APIキーはすべてのリクエストにクエリパラメータとして付与されます。
func NewTwelveDataMarket(cfg Config, hc *http.Client) *TwelveDataMarket {
	c := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetQueryParam("apikey", cfg.TwelveDataAPIKey)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &TwelveDataMarket{client: c, now: time.Now}
}

// GetDailyHistory はTwelve Data APIから period 分の日足データを昇順で取得します。
// Twelve Data はエラーも HTTP 200 で返すため、本文の status で判定します。
func (t *TwelveDataMarket) GetDailyHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.PricePoint, error) {
	res, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":     symbol,
			"interval":   "1day",
			"start_date": period.Since(t.now()).Format(time.DateOnly),
			"outputsize": strconv.Itoa(maxOutputSize),
			"order":      "ASC",
		}).
		Get("/time_series")
	if err != nil {
		return nil, fmt.Errorf("twelvedata request: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode())
	}

	var body dto.TimeSeriesResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if body.Status == "error" {
		if isNoData(body) {
			return nil, fmt.Errorf("twelvedata: %s: %w", body.Message, usecase.ErrNoData)
		}
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	loc := exchangeLocation(body.Meta.ExchangeTimezone)
	points := make([]entity.PricePoint, 0, len(body.Values))
	for _, v := range body.Values {
		p, err := toPricePoint(v, loc)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func exchangeLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// toPricePoint は文字列で返される数値を変換します。
func toPricePoint(v dto.Value, loc *time.Location) (entity.PricePoint, error) {
	tm, err := time.ParseInLocation(time.DateOnly, v.Datetime, loc)
	if err != nil {
		return entity.PricePoint{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
	}

	p := entity.PricePoint{Time: tm}
	fields := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"open", v.Open, &p.Open},
		{"high", v.High, &p.High},
		{"low", v.Low, &p.Low},
		{"close", v.Close, &p.Close},
	}
	for _, f := range fields {
		if *f.dst, err = strconv.ParseFloat(f.raw, 64); err != nil {
			return entity.PricePoint{}, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
	}

	if v.Volume != "" {
		if p.Volume, err = strconv.ParseInt(v.Volume, 10, 64); err != nil {
			return entity.PricePoint{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
	}
	return p, nil
}

// isNoData は未知の銘柄や期間内にデータがないことを示すエラー本文かを判定します。
func isNoData(body dto.TimeSeriesResponse) bool {
	if body.Code == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(body.Message)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no data is available")
}
