package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fordeling/internal/routing"
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
	"fordeling/pkg/platform/httputil"
	"fordeling/pkg/platform/sentinel"
	"fordeling/pkg/requestcontext"
)

// Decider is the routing surface the handler needs.
type Decider interface {
	Decide(ctx context.Context, req models.RoutingRequest) routing.Decision
}

// Handler wires routing preview and unit registry endpoints.
type Handler struct {
	router   Decider
	registry *units.Registry
	logger   *slog.Logger
}

// New constructs a routing handler.
func New(router Decider, registry *units.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{router: router, registry: registry, logger: logger}
}

// Register mounts routing endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/routing/route", h.HandleRoute)
	r.Get("/units", h.HandleListUnits)
	r.Get("/units/{code}", h.HandleGetUnit)
}

// HandleRoute handles POST /routing/route. It runs the full decision chain,
// including the lookup overlay, and returns the decision with provenance.
func (h *Handler) HandleRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[RouteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision := h.router.Decide(ctx, req.Parsed())

	h.logger.InfoContext(ctx, "routing preview",
		"request_id", requestID,
		"category", decision.Category,
		"unit", decision.Unit.Code,
		"source", decision.Source,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleListUnits handles GET /units.
func (h *Handler) HandleListUnits(w http.ResponseWriter, _ *http.Request) {
	all := h.registry.All()
	out := make([]UnitResponse, 0, len(all))
	for _, u := range all {
		out = append(out, fromUnit(u))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGetUnit handles GET /units/{code}.
func (h *Handler) HandleGetUnit(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	u, ok := h.registry.Lookup(code)
	if !ok {
		httputil.WriteError(w, fmt.Errorf("unit %s: %w", code, sentinel.ErrNotFound))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromUnit(u))
}
