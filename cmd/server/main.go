package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"stockchart/internal/app/di"
	"stockchart/internal/app/router"
	stockdatahandler "stockchart/internal/feature/stockdata/transport/handler"
	"stockchart/internal/platform/config"
	platformhandler "stockchart/internal/platform/http/handler"
	"stockchart/internal/platform/logger"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Dir:     cfg.Logging.Dir,
		Console: true,
		Service: "stockchart-server",
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis（任意）
	deps := map[string]platformhandler.Pinger{}
	rdb := di.NewOptionalRedis(ctx, cfg.Redis)
	if rdb != nil {
		deps["redis"] = platformhandler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis client")
			}
		}()
	}

	// Usecase
	stockDataUC, err := di.NewStockDataUsecase(cfg.Market)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure market provider")
	}

	// Handler
	stockDataH := stockdatahandler.NewStockDataHandler(stockDataUC)
	healthH := platformhandler.NewHealthHandler(cfg.Market.Provider, deps)

	r := router.NewRouter(stockDataH, healthH, router.Options{
		AllowOrigins: cfg.CORSAllowOrigins,
		Limiter:      di.NewRequestLimiter(rdb, cfg.Limit),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("provider", cfg.Market.Provider).
			Msg("stock data server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
