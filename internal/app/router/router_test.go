package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stockchart/internal/feature/stockdata/domain/entity"
	stockdatahandler "stockchart/internal/feature/stockdata/transport/handler"
	platformhandler "stockchart/internal/platform/http/handler"
)

type stubUsecase struct{}

func (stubUsecase) GetHistory(ctx context.Context, ticker string) ([]entity.PricePoint, error) {
	return []entity.PricePoint{}, nil
}

func (stubUsecase) PredictNextClose(ctx context.Context, ticker string) (entity.Prediction, error) {
	return entity.Prediction{Ticker: ticker, PredictedClose: 1, Observations: 2}, nil
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

func newTestRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(
		stockdatahandler.NewStockDataHandler(stubUsecase{}),
		platformhandler.NewHealthHandler("yahoo", nil),
		opts,
	)
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(Options{AllowOrigins: []string{"*"}})

	for _, path := range []string{"/healthz", "/api/stock_data/AAPL", "/api/predict/AAPL"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter(Options{AllowOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodGet, "/api/stock_data/AAPL", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRestricted(t *testing.T) {
	r := newTestRouter(Options{AllowOrigins: []string{"https://charts.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/api/stock_data/AAPL", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	r := newTestRouter(Options{Limiter: denyAll{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stock_data/AAPL", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
