package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fordeling/pkg/platform/httputil"
)

// Check is a named readiness check.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Health serves liveness and readiness.
type Health struct {
	checks  []Check
	timeout time.Duration
}

// NewHealth builds a health handler. Checks without Ping are ignored.
func NewHealth(checks ...Check) *Health {
	h := &Health{timeout: 2 * time.Second}
	for _, c := range checks {
		if c.Ping != nil {
			h.checks = append(h.checks, c)
		}
	}
	return h
}

// Register mounts /health and /ready.
func (h *Health) Register(r chi.Router) {
	r.Get("/health", h.HandleLive)
	r.Get("/ready", h.HandleReady)
}

func (h *Health) HandleLive(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReady runs every check and reports 503 when any fails.
func (h *Health) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			results[c.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[c.Name] = "ok"
	}
	httputil.WriteJSON(w, status, map[string]any{"checks": results})
}
