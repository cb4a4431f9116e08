// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status   string            `json:"status"`
	Provider string            `json:"provider,omitempty"`
	Checks   map[string]string `json:"checks,omitempty"`
}

// HealthHandler reports liveness plus the state of optional dependencies.
type HealthHandler struct {
	provider string
	deps     map[string]Pinger
}

// NewHealthHandler creates a HealthHandler. deps may be nil.
func NewHealthHandler(provider string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{provider: provider, deps: deps}
}

// Health は /healthz エンドポイントを処理します。
// 依存先の障害は "degraded" として報告しますが、ステータスコードは 200 のままです。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	resp := HealthResponse{Status: "ok", Provider: h.provider}
	if len(h.deps) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		resp.Checks = make(map[string]string, len(h.deps))
		for name, p := range h.deps {
			if err := p.Ping(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "ok"
		}
	}
	c.JSON(http.StatusOK, resp)
}
