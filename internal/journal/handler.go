package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fordeling/internal/platform/kafka/consumer"
	"fordeling/internal/routing"
	"fordeling/internal/routing/models"
	"fordeling/pkg/requestcontext"
)

// Decider is the routing surface the handler needs.
type Decider interface {
	Decide(ctx context.Context, req models.RoutingRequest) routing.Decision
}

// Handler routes received document events. It implements consumer.Handler.
type Handler struct {
	router   Decider
	persons  PersonResolver
	cases    CaseResolver
	benefits BenefitResolver
	sink     DecisionSink
	logger   *slog.Logger
	clock    func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithHandlerClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// NewHandler wires the resolvers and sink around a router.
func NewHandler(
	router Decider,
	persons PersonResolver,
	cases CaseResolver,
	benefits BenefitResolver,
	sink DecisionSink,
	opts ...HandlerOption,
) *Handler {
	h := &Handler{
		router:   router,
		persons:  persons,
		cases:    cases,
		benefits: benefits,
		sink:     sink,
		logger:   slog.New(slog.DiscardHandler),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle implements consumer.Handler. Malformed and out-of-scope events are
// logged and acknowledged; resolver and sink failures are returned so the
// consumer retries.
func (h *Handler) Handle(ctx context.Context, msg *consumer.Message) error {
	event, err := DecodeEvent(msg.Value)
	if err != nil {
		h.logger.ErrorContext(ctx, "dropping malformed sed event",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}
	if !event.Routable() {
		h.logger.DebugContext(ctx, "skipping sed event outside routed sectors",
			"sektor", event.SectorCode,
			"buc_type", event.BucType,
		)
		return nil
	}

	ctx = requestcontext.WithEventID(ctx, event.Key())
	if id := msg.Headers["Nav-Call-Id"]; id != "" {
		ctx = requestcontext.WithRequestID(ctx, id)
	}
	ctx = requestcontext.WithTime(ctx, h.clock())

	_, err = h.Route(ctx, event)
	return err
}

// Route resolves the event's context, routes it and records the result.
func (h *Handler) Route(ctx context.Context, event SedEvent) (Record, error) {
	person, found, err := h.persons.ResolvePerson(ctx, event)
	if err != nil {
		return Record{}, fmt.Errorf("resolve person: %w", err)
	}
	status, err := h.cases.CaseStatus(ctx, event.RinaCaseID)
	if err != nil {
		return Record{}, fmt.Errorf("resolve case status: %w", err)
	}
	benefit, err := h.benefits.BenefitType(ctx, event)
	if err != nil {
		return Record{}, fmt.Errorf("resolve benefit type: %w", err)
	}

	decision := h.router.Decide(ctx, BuildRequest(event, person, found, status, benefit))

	rec := NewRecord(event, decision)
	rec.RequestID = requestcontext.RequestID(ctx)
	rec.RoutedAt = requestcontext.Now(ctx)
	if err := h.sink.Record(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("record decision: %w", err)
	}
	return rec, nil
}
