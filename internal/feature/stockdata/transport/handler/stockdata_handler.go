// Package handler はstockdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"stockchart/internal/feature/stockdata/domain/entity"
	"stockchart/internal/feature/stockdata/transport/http/dto"
	"stockchart/internal/feature/stockdata/usecase"
)

// StockDataUsecase は株価データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockDataUsecase interface {
	GetHistory(ctx context.Context, ticker string) ([]entity.PricePoint, error)
	PredictNextClose(ctx context.Context, ticker string) (entity.Prediction, error)
}

// StockDataHandler は株価データのHTTPリクエストを処理します。
type StockDataHandler struct {
	uc StockDataUsecase
}

// NewStockDataHandler は指定されたusecaseでStockDataHandlerの新しいインスタンスを生成します。
func NewStockDataHandler(uc StockDataUsecase) *StockDataHandler {
	return &StockDataHandler{uc: uc}
}

// GetStockData は銘柄コードを受け取り、過去1年分の日足データをJSONで返します。
//
// エンドポイント例:
// GET /api/stock_data/:ticker
func (h *StockDataHandler) GetStockData(c *gin.Context) {
	ticker := c.Param("ticker")

	points, err := h.uc.GetHistory(c.Request.Context(), ticker)
	if err != nil {
		h.writeError(c, ticker, err)
		return
	}

	out := make([]dto.PriceResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PriceResponse{
			Date:   p.Time.Format("2006-01-02"),
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
		})
	}

	c.JSON(http.StatusOK, out)
}

// PredictNextClose は直近1ヶ月の終値から翌営業日の終値を推定して返します。
//
// エンドポイント例:
// GET /api/predict/:ticker
func (h *StockDataHandler) PredictNextClose(c *gin.Context) {
	ticker := c.Param("ticker")

	p, err := h.uc.PredictNextClose(c.Request.Context(), ticker)
	if err != nil {
		h.writeError(c, ticker, err)
		return
	}

	c.JSON(http.StatusOK, dto.PredictionResponse{
		Ticker:         p.Ticker,
		PredictedClose: p.PredictedClose,
		Observations:   p.Observations,
	})
}

// writeError maps usecase errors to status codes; the body is always {"error": "..."}.
func (h *StockDataHandler) writeError(c *gin.Context, ticker string, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyTicker):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ticker is required"})
	case errors.Is(err, usecase.ErrNoData):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: fmt.Sprintf("No data found for ticker '%s'. It might be an invalid ticker or delisted.", ticker),
		})
	case errors.Is(err, usecase.ErrNotEnoughData):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: fmt.Sprintf("Not enough data to predict %s. Detail: %v", ticker, err),
		})
	default:
		log.Error().Err(err).Str("ticker", ticker).Str("path", c.FullPath()).Msg("failed to retrieve stock data")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve data for %s. Detail: %v", ticker, err),
		})
	}
}
