package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchart/internal/feature/stockdata/domain/entity"
	"stockchart/internal/feature/stockdata/usecase"
)

func newServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooMarket_GetDailyHistory_Success(t *testing.T) {
	t.Parallel()

	// 2025-01-14 14:30 UTC and 2025-01-15 14:30 UTC (09:30 New York); the middle bar is a holiday gap.
	body := `{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL", "currency": "USD", "exchangeTimezoneName": "America/New_York"},
				"timestamp": [1736865000, 1736908200, 1736951400],
				"indicators": {"quote": [{
					"open":   [148.0, null, 150.0],
					"high":   [151.0, null, 155.0],
					"low":    [147.5, null, 149.0],
					"close":  [150.0, null, 154.5],
					"volume": [900000, null, 1000000]
				}]}
			}],
			"error": null
		}
	}`
	srv := newServer(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
	})

	market := NewYahooMarket(Config{BaseURL: srv.URL}, srv.Client())
	points, err := market.GetDailyHistory(context.Background(), "AAPL", entity.Period1Y)

	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2025-01-14", points[0].Time.Format("2006-01-02"))
	assert.Equal(t, 150.0, points[0].Close)
	assert.Equal(t, int64(900000), points[0].Volume)

	assert.Equal(t, "2025-01-15", points[1].Time.Format("2006-01-02"))
	assert.Equal(t, 150.0, points[1].Open)
	assert.Equal(t, 155.0, points[1].High)
	assert.Equal(t, 149.0, points[1].Low)
	assert.Equal(t, 154.5, points[1].Close)
	assert.Equal(t, 0, points[1].Time.Hour())
}

func TestYahooMarket_GetDailyHistory_PathEscaping(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, `{"chart":{"result":[],"error":null}}`, func(r *http.Request) {
		assert.Equal(t, "/^GSPC", r.URL.Path)
		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
	})

	market := NewYahooMarket(Config{BaseURL: srv.URL}, srv.Client())
	points, err := market.GetDailyHistory(context.Background(), "^GSPC", entity.Period1Mo)

	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestYahooMarket_GetDailyHistory_NotFound(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	srv := newServer(t, http.StatusNotFound, body, nil)

	market := NewYahooMarket(Config{BaseURL: srv.URL}, srv.Client())
	_, err := market.GetDailyHistory(context.Background(), "ZZZZ", entity.Period1Y)

	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrNoData)
	assert.Contains(t, err.Error(), "symbol may be delisted")
}

func TestYahooMarket_GetDailyHistory_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "api error other than not found",
			status:  http.StatusBadRequest,
			body:    `{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input - interval=1d is not supported"}}}`,
			wantMsg: "Bad Request",
		},
		{
			name:    "http error without body",
			status:  http.StatusServiceUnavailable,
			body:    ``,
			wantMsg: "yahoo http 503",
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantMsg: "yahoo request",
		},
		{
			name:    "misaligned quote arrays",
			status:  http.StatusOK,
			body:    `{"chart":{"result":[{"timestamp":[1,2],"indicators":{"quote":[{"close":[1.0]}]}}],"error":null}}`,
			wantMsg: "2 timestamps but 1 closes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newServer(t, tt.status, tt.body, nil)
			market := NewYahooMarket(Config{BaseURL: srv.URL}, srv.Client())

			_, err := market.GetDailyHistory(context.Background(), "AAPL", entity.Period1Y)

			require.Error(t, err)
			assert.NotErrorIs(t, err, usecase.ErrNoData)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestYahooMarket_GetDailyHistory_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":[{"meta":{"exchangeTimezoneName":"Mars/Olympus"},"timestamp":[1736951400],"indicators":{"quote":[{"close":[10.0]}]}}],"error":null}}`
	srv := newServer(t, http.StatusOK, body, nil)

	market := NewYahooMarket(Config{BaseURL: srv.URL}, srv.Client())
	points, err := market.GetDailyHistory(context.Background(), "X", entity.Period1Y)

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, time.UTC, points[0].Time.Location())
	assert.Equal(t, 0.0, points[0].Open)
	assert.Equal(t, int64(0), points[0].Volume)
}
