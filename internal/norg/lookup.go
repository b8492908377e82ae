package norg

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"fordeling/internal/routing/metrics"
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
	"fordeling/pkg/platform/circuit"
)

// Fetcher returns the raw candidate list for criteria.
type Fetcher interface {
	Arbeidsfordeling(ctx context.Context, criteria Criteria) ([]Candidate, error)
}

// Lookup turns a routing request into criteria, fetches candidates and
// reduces them to at most one registered unit. Failures never leave this
// type; they are logged and reported as no match.
type Lookup struct {
	fetcher  Fetcher
	registry *units.Registry
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	breaker  *circuit.Breaker
	flight   singleflight.Group
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithCache enables read-through caching of candidate lists.
func WithCache(cache Cache, ttl time.Duration) LookupOption {
	return func(l *Lookup) {
		if cache != nil && ttl > 0 {
			l.cache = cache
			l.cacheTTL = ttl
		}
	}
}

// WithBreaker skips NORG while the breaker is open.
func WithBreaker(b *circuit.Breaker) LookupOption {
	return func(l *Lookup) {
		l.breaker = b
	}
}

// WithLookupLogger sets the logger.
func WithLookupLogger(logger *slog.Logger) LookupOption {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithLookupMetrics sets the metrics sink.
func WithLookupMetrics(m *metrics.Metrics) LookupOption {
	return func(l *Lookup) {
		l.metrics = m
	}
}

// NewLookup constructs a Lookup.
func NewLookup(fetcher Fetcher, registry *units.Registry, opts ...LookupOption) *Lookup {
	l := &Lookup{
		fetcher:  fetcher,
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// FindUnit implements routing.UnitLookup.
func (l *Lookup) FindUnit(ctx context.Context, req models.RoutingRequest, residency models.ResidencyClass) (units.Unit, bool) {
	ctx, span := otel.Tracer("fordeling/norg").Start(ctx, "norg.FindUnit")
	defer span.End()

	if l.breaker != nil && !l.breaker.Allow() {
		l.metrics.IncrementLookup("circuit_open", "")
		return units.Unit{}, false
	}

	criteria := BuildCriteria(req, residency)
	start := time.Now()
	candidates, err := l.candidates(ctx, criteria)
	if err != nil && ctx.Err() != nil {
		err = newLookupError(ErrorCancelled, "caller context done", err)
	}
	l.metrics.ObserveLookupLatency(time.Since(start))
	l.recordOutcome(ctx, err)

	if err != nil {
		category := GetCategory(err)
		l.metrics.IncrementLookup("error", string(category))
		span.SetAttributes(attribute.String("norg.error_category", string(category)))
		l.logger.WarnContext(ctx, "norg lookup failed, using static default",
			"category", req.Category,
			"error_category", category,
			"error", err,
		)
		return units.Unit{}, false
	}

	selected, ok := SelectCandidate(criteria, candidates)
	if !ok {
		l.metrics.IncrementLookup("no_match", "")
		l.logger.DebugContext(ctx, "norg returned no matching candidate",
			"category", req.Category,
			"candidates", len(candidates),
			"criteria", criteria.Key(),
		)
		return units.Unit{}, false
	}

	unit, known := l.registry.Lookup(selected.EnhetNr)
	if !known {
		l.metrics.IncrementLookup("unknown_unit", "")
		l.logger.WarnContext(ctx, "norg selected unit not in registry",
			"category", req.Category,
			"enhet_nr", selected.EnhetNr,
			"enhet_navn", selected.EnhetNavn,
		)
		return units.Unit{}, false
	}

	l.metrics.IncrementLookup("match", "")
	span.SetAttributes(attribute.String("norg.enhet_nr", unit.Code))
	return unit, true
}

// recordOutcome feeds the breaker. Only provider health failures count;
// cancellations and contract errors release a pending trial call untouched.
func (l *Lookup) recordOutcome(ctx context.Context, err error) {
	if l.breaker == nil {
		return
	}
	if err == nil {
		if _, change := l.breaker.RecordSuccess(); change.Closed {
			l.logger.InfoContext(ctx, "norg circuit closed", "breaker", l.breaker.Name())
		}
		return
	}
	switch GetCategory(err) {
	case ErrorTimeout, ErrorProviderOutage, ErrorRateLimited:
		if _, change := l.breaker.RecordFailure(); change.Opened {
			l.logger.WarnContext(ctx, "norg circuit opened", "breaker", l.breaker.Name(), "error", err)
		}
	default:
		l.breaker.Release()
	}
}

func (l *Lookup) candidates(ctx context.Context, criteria Criteria) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, classifyTransportError(err)
	}
	if l.cache == nil {
		return l.fetcher.Arbeidsfordeling(ctx, criteria)
	}

	key := criteria.Key()
	if cached, ok, err := l.cache.Get(ctx, key); err != nil {
		l.logger.WarnContext(ctx, "norg cache read failed", "error", err)
	} else if ok {
		l.metrics.IncrementLookup("cache_hit", "")
		return cached, nil
	}

	ch := l.flight.DoChan(key, func() (any, error) {
		// Shared by every waiter on key; bounded by the HTTP client timeout.
		fetchCtx := context.WithoutCancel(ctx)
		candidates, err := l.fetcher.Arbeidsfordeling(fetchCtx, criteria)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(fetchCtx, key, candidates, l.cacheTTL); err != nil {
			l.logger.WarnContext(ctx, "norg cache write failed", "error", err)
		}
		return candidates, nil
	})

	select {
	case <-ctx.Done():
		return nil, classifyTransportError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		candidates, _ := res.Val.([]Candidate)
		return candidates, nil
	}
}
