// Package handler serves the journaled routing decisions over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fordeling/internal/journal"
	"fordeling/pkg/platform/httputil"
	"fordeling/pkg/requestcontext"
)

// DecisionReader lists recorded decisions for a RINA case.
type DecisionReader interface {
	ListByCase(ctx context.Context, rinaCaseID string) ([]journal.Record, error)
}

// DecisionResponse is one journaled routing decision.
type DecisionResponse struct {
	EventKey  string    `json:"event_key"`
	SedID     string    `json:"sed_id,omitempty"`
	SedType   string    `json:"sed_type,omitempty"`
	BucType   string    `json:"buc_type"`
	EnhetNr   string    `json:"enhet_nr"`
	Source    string    `json:"source"`
	RequestID string    `json:"request_id,omitempty"`
	RoutedAt  time.Time `json:"routed_at"`
}

// CaseDecisionsResponse is the body of GET /cases/{rinaCaseID}/decisions.
type CaseDecisionsResponse struct {
	RinaCaseID string             `json:"rina_sak_id"`
	Decisions  []DecisionResponse `json:"decisions"`
}

// Handler exposes the decision journal.
type Handler struct {
	reader DecisionReader
	logger *slog.Logger
}

// New constructs a journal handler.
func New(reader DecisionReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{reader: reader, logger: logger}
}

// Register mounts the journal endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/cases/{rinaCaseID}/decisions", h.HandleListByCase)
}

// HandleListByCase handles GET /cases/{rinaCaseID}/decisions. A case with
// no decisions yields an empty list.
func (h *Handler) HandleListByCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caseID := strings.TrimSpace(chi.URLParam(r, "rinaCaseID"))
	if caseID == "" || len(caseID) > 64 {
		httputil.WriteError(w, httputil.BadRequest("invalid rina case id"))
		return
	}

	records, err := h.reader.ListByCase(ctx, caseID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list routing decisions",
			"request_id", requestcontext.RequestID(ctx),
			"rina_sak_id", caseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := CaseDecisionsResponse{
		RinaCaseID: caseID,
		Decisions:  make([]DecisionResponse, 0, len(records)),
	}
	for _, rec := range records {
		out.Decisions = append(out.Decisions, DecisionResponse{
			EventKey:  rec.EventKey,
			SedID:     rec.SedID,
			SedType:   rec.SedType,
			BucType:   string(rec.Category),
			EnhetNr:   rec.UnitCode,
			Source:    string(rec.Source),
			RequestID: rec.RequestID,
			RoutedAt:  rec.RoutedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
