// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stockchart/internal/feature/stockdata/adapters/twelvedata"
	"stockchart/internal/feature/stockdata/adapters/yahoo"
	"stockchart/internal/feature/stockdata/usecase"
	"stockchart/internal/platform/config"
	infrahttp "stockchart/internal/platform/http"
	"stockchart/internal/platform/http/middleware"
	"stockchart/internal/shared/ratelimiter"
)

// NewMarket creates the MarketRepository selected by cfg.Provider.
func NewMarket(cfg config.MarketConfig) (usecase.MarketRepository, error) {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)

	switch cfg.Provider {
	case config.ProviderYahoo, "":
		return yahoo.NewYahooMarket(yahoo.Config{
			BaseURL: cfg.YahooBaseURL,
			Timeout: cfg.Timeout,
		}, httpClient), nil
	case config.ProviderTwelveData:
		if cfg.TwelveDataAPIKey == "" {
			return nil, fmt.Errorf("TWELVE_DATA_API_KEY is required for provider %q", cfg.Provider)
		}
		return twelvedata.NewTwelveDataMarket(twelvedata.Config{
			TwelveDataAPIKey: cfg.TwelveDataAPIKey,
			BaseURL:          cfg.TwelveDataURL,
			Timeout:          cfg.Timeout,
		}, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Provider)
	}
}

// NewUpstreamLimiter throttles calls to the market provider.
// A non-positive CallsPerMinute disables throttling.
func NewUpstreamLimiter(cfg config.MarketConfig) ratelimiter.RateLimiterInterface {
	if cfg.CallsPerMinute <= 0 {
		return ratelimiter.Unlimited{}
	}
	return ratelimiter.NewRateLimiter(cfg.CallsPerMinute, time.Minute)
}

// NewStockDataUsecase wires the market provider and its throttle.
func NewStockDataUsecase(cfg config.MarketConfig) (*usecase.StockDataUsecase, error) {
	market, err := NewMarket(cfg)
	if err != nil {
		return nil, err
	}
	return usecase.NewStockDataUsecase(market, NewUpstreamLimiter(cfg)), nil
}

// NewRequestLimiter creates the inbound per-client limiter.
// If Redis is available, it returns a Redis-backed implementation shared by
// every server instance. Otherwise, it falls back to an in-process limiter.
// A non-positive limit returns nil, which disables the middleware.
func NewRequestLimiter(rdb *redis.Client, cfg config.LimitConfig) middleware.Limiter {
	if cfg.RequestsPerMinute <= 0 {
		return nil
	}
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, cfg.RequestsPerMinute, time.Minute, "ratelimit")
	}
	return middleware.NewMemoryLimiter(cfg.RequestsPerMinute, time.Minute)
}
