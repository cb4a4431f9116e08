package di

import (
	"github.com/rs/zerolog"

	"stockchart/internal/feature/search/adapters/stockapi"
	"stockchart/internal/feature/search/usecase"
	"stockchart/internal/platform/config"
	infrahttp "stockchart/internal/platform/http"
)

// NewStockAPIClient creates the chart client's HTTP client for the stock data service.
// The request has no overall timeout; it ends when the service answers or the
// connection fails.
func NewStockAPIClient(cfg *config.ClientConfig) *stockapi.Client {
	return stockapi.NewClient(cfg.BaseURL, infrahttp.NewHTTPClient(0))
}

// NewSearchUsecase creates the search usecase backed by the stock data service.
func NewSearchUsecase(cfg *config.ClientConfig, logger zerolog.Logger) *usecase.SearchUsecase {
	return usecase.NewSearchUsecase(NewStockAPIClient(cfg), logger)
}
