package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	stockdatahandler "stockchart/internal/feature/stockdata/transport/handler"
	platformhandler "stockchart/internal/platform/http/handler"
	"stockchart/internal/platform/http/middleware"
)

// Options configures the cross-cutting middleware.
type Options struct {
	// AllowOrigins の "*" はすべてのオリジンを許可します。
	AllowOrigins []string
	// Limiter が nil の場合、/api のレート制限は無効です。
	Limiter middleware.Limiter
}

func NewRouter(stockData *stockdatahandler.StockDataHandler, health *platformhandler.HealthHandler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger("/healthz"))
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	api := r.Group("/api")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter, time.Minute))
	}
	{
		// 過去1年分の日足
		api.GET("/stock_data/:ticker", stockData.GetStockData)
		// 翌営業日の終値予測
		api.GET("/predict/:ticker", stockData.PredictNextClose)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID, "Retry-After"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
