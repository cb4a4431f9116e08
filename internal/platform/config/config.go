// Package config loads the stock data server configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Provider names accepted by MARKET_PROVIDER.
const (
	ProviderYahoo      = "yahoo"
	ProviderTwelveData = "twelvedata"
)

// Config is the server configuration.
type Config struct {
	Server           ServerConfig
	Market           MarketConfig
	Redis            RedisConfig
	Limit            LimitConfig
	Logging          LoggingConfig
	CORSAllowOrigins []string
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MarketConfig struct {
	Provider         string
	YahooBaseURL     string
	TwelveDataAPIKey string
	TwelveDataURL    string
	Timeout          time.Duration
	CallsPerMinute   int // upstream throttle; 0 disables it
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type LimitConfig struct {
	RequestsPerMinute int // inbound limit per client IP; 0 disables it
}

type LoggingConfig struct {
	Level  string
	Format string
	Dir    string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Market: MarketConfig{
			Provider:         strings.ToLower(getEnv("MARKET_PROVIDER", ProviderYahoo)),
			YahooBaseURL:     getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			TwelveDataAPIKey: os.Getenv("TWELVE_DATA_API_KEY"),
			TwelveDataURL:    getEnv("TWELVE_DATA_BASE_URL", "https://api.twelvedata.com"),
			Timeout:          getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			CallsPerMinute:   getInt("UPSTREAM_CALLS_PER_MINUTE", 0),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Limit: LimitConfig{
			RequestsPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Dir:    os.Getenv("LOG_DIR"),
		},
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer in environment, using default")
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid duration in environment, using default")
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
