package di

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchart/internal/feature/stockdata/adapters/twelvedata"
	"stockchart/internal/feature/stockdata/adapters/yahoo"
	"stockchart/internal/platform/config"
	"stockchart/internal/platform/http/middleware"
	"stockchart/internal/shared/ratelimiter"
)

func TestNewMarket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.MarketConfig
		want    any
		wantErr bool
	}{
		{name: "default is yahoo", cfg: config.MarketConfig{}, want: &yahoo.YahooMarket{}},
		{name: "yahoo", cfg: config.MarketConfig{Provider: config.ProviderYahoo}, want: &yahoo.YahooMarket{}},
		{
			name: "twelvedata",
			cfg:  config.MarketConfig{Provider: config.ProviderTwelveData, TwelveDataAPIKey: "k", Timeout: time.Second},
			want: &twelvedata.TwelveDataMarket{},
		},
		{name: "twelvedata without key", cfg: config.MarketConfig{Provider: config.ProviderTwelveData}, wantErr: true},
		{name: "unknown", cfg: config.MarketConfig{Provider: "bloomberg"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewMarket(tt.cfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestNewUpstreamLimiter(t *testing.T) {
	t.Parallel()

	assert.IsType(t, ratelimiter.Unlimited{}, NewUpstreamLimiter(config.MarketConfig{}))
	assert.IsType(t, &ratelimiter.RateLimiter{}, NewUpstreamLimiter(config.MarketConfig{CallsPerMinute: 8}))
}

func TestNewRequestLimiter(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewRequestLimiter(nil, config.LimitConfig{}))
	assert.IsType(t, &middleware.MemoryLimiter{}, NewRequestLimiter(nil, config.LimitConfig{RequestsPerMinute: 10}))
}
