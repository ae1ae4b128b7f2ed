package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and the state of backing stores
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler creates a health handler; nil checkers are skipped
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	filtered := make(map[string]HealthChecker, len(checks))
	for name, check := range checks {
		if check != nil {
			filtered[name] = check
		}
	}
	return &HealthHandler{checks: filtered}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			components[name] = "unavailable"
			status = "degraded"
			continue
		}
		components[name] = "ok"
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":     status,
		"components": components,
	})
}
