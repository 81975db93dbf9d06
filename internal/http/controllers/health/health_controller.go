// Package health contiene los endpoints de liveness y readiness.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/boardz/internal/cache"
	"github.com/dropDatabas3/boardz/internal/http/helpers"
	"github.com/dropDatabas3/boardz/internal/observability/logger"
	"github.com/dropDatabas3/boardz/internal/store"
)

// Controller maneja /healthz y /readyz.
type Controller struct {
	store store.Store
	cache cache.Client
}

// NewController crea el controller de health.
func NewController(st store.Store, c cache.Client) *Controller {
	return &Controller{store: st, cache: c}
}

// Healthz maneja GET /healthz: el proceso está vivo, sin tocar deps.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz: chequea store y cache con timeout corto.
// 503 si alguna dependencia no responde.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{
		"store": "ok",
		"cache": "ok",
	}
	healthy := true

	if err := c.store.Ping(ctx); err != nil {
		logger.From(r.Context()).Warn("store not ready",
			logger.Component("health"), logger.Err(err))
		checks["store"] = err.Error()
		healthy = false
	}
	if err := c.cache.Ping(ctx); err != nil {
		logger.From(r.Context()).Warn("cache not ready",
			logger.Component("health"), logger.Err(err))
		checks["cache"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	helpers.WriteJSON(w, status, map[string]any{
		"status": overall,
		"checks": checks,
	})
}
