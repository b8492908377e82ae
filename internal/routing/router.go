package routing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"fordeling/internal/routing/metrics"
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
	"fordeling/pkg/requestcontext"
)

// DecisionSource says which step of the decision chain produced the unit.
type DecisionSource string

const (
	SourceMissingSubject DecisionSource = "missing_subject"
	SourceStatic         DecisionSource = "static"
	SourceLookup         DecisionSource = "lookup"
)

// Decision is a routing result with its provenance.
type Decision struct {
	Unit          units.Unit
	Source        DecisionSource
	Category      models.CaseCategory
	Residency     models.ResidencyClass
	AgeBracket    models.AgeBracket
	StaticDefault units.Unit
	LookupTried   bool
}

// Router is the routing orchestrator. It holds no per-call state and is safe
// for concurrent use.
type Router struct {
	registry *units.Registry
	lookup   UnitLookup
	policies map[models.CaseCategory]Policy
	clock    Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Router.
type Option func(*Router)

// WithClock fixes the reference clock for age computations. Without it the
// request-scoped time from the context is used.
func WithClock(clock Clock) Option {
	return func(r *Router) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithPolicies replaces the category policy table.
func WithPolicies(p map[models.CaseCategory]Policy) Option {
	return func(r *Router) {
		if p != nil {
			r.policies = p
		}
	}
}

// New constructs a Router. lookup may be nil, in which case every overlay
// falls through to the static default. The registry must contain every code
// the static table can return.
func New(registry *units.Registry, lookup UnitLookup, opts ...Option) (*Router, error) {
	if err := registry.Require(units.RequiredCodes...); err != nil {
		return nil, err
	}
	r := &Router{
		registry: registry,
		lookup:   lookup,
		policies: DefaultPolicies(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Route returns the unit responsible for the request.
func (r *Router) Route(ctx context.Context, req models.RoutingRequest) units.Unit {
	return r.Decide(ctx, req).Unit
}

// Decide runs the decision chain:
//  1. no case subject: missing-subject unit, nothing else computed
//  2. static default from the rule table
//  3. dynamic overlay for categories whose gate holds
//  4. lookup result if present, else the static default
func (r *Router) Decide(ctx context.Context, req models.RoutingRequest) Decision {
	ctx, span := otel.Tracer("fordeling/routing").Start(ctx, "routing.Decide")
	defer span.End()

	if !req.SubjectPresent {
		d := Decision{
			Unit:     r.registry.Get(units.CodeMissingSubject),
			Source:   SourceMissingSubject,
			Category: req.Category,
		}
		r.record(ctx, d)
		span.SetAttributes(attribute.String("routing.source", string(d.Source)))
		return d
	}

	residency := ClassifyResidency(req.CountryCode)
	bracket := r.ageBracket(ctx, req)
	staticDefault := r.ResolveDefault(ctx, req.Category, residency, bracket, req.BenefitType)

	d := Decision{
		Unit:          staticDefault,
		Source:        SourceStatic,
		Category:      req.Category,
		Residency:     residency,
		AgeBracket:    bracket,
		StaticDefault: staticDefault,
	}

	if r.lookup != nil && r.policyFor(req.Category).UsesLookup(req, residency) {
		d.LookupTried = true
		if u, ok := r.lookup.FindUnit(ctx, req, residency); ok {
			d.Unit = u
			d.Source = SourceLookup
		}
	}

	r.record(ctx, d)
	span.SetAttributes(
		attribute.String("routing.category", string(req.Category)),
		attribute.String("routing.residency", string(residency)),
		attribute.String("routing.source", string(d.Source)),
		attribute.String("routing.unit", d.Unit.Code),
	)
	return d
}

// ResolveDefault maps the static rule table result through the registry. An
// unmapped category is logged as a table defect and routed to the generic
// foreign pension unit.
func (r *Router) ResolveDefault(
	ctx context.Context,
	category models.CaseCategory,
	residency models.ResidencyClass,
	bracket models.AgeBracket,
	benefit models.BenefitType,
) units.Unit {
	code, mapped := DefaultCode(category, residency, bracket, benefit)
	if !mapped {
		r.logger.WarnContext(ctx, "no static routing rule for case category",
			"category", category,
			"residency", residency,
			"fallback_unit", code,
		)
		r.metrics.IncrementUnmapped(string(category))
	}
	return r.registry.Get(code)
}

// PolicyFor exposes the policy applied to a category.
func (r *Router) PolicyFor(category models.CaseCategory) Policy {
	return r.policyFor(category)
}

func (r *Router) policyFor(category models.CaseCategory) Policy {
	if p, ok := r.policies[category]; ok {
		return p
	}
	return StaticOnly()
}

func (r *Router) ageBracket(ctx context.Context, req models.RoutingRequest) models.AgeBracket {
	if req.AgeBracket != models.AgeUnresolved {
		return req.AgeBracket
	}
	bracket, ok := ClassifyAge(req.BirthDate, r.now(ctx))
	if !ok && req.BirthDate != "" {
		r.logger.DebugContext(ctx, "unparseable birth date, using young-or-old bracket",
			"category", req.Category,
		)
	}
	return bracket
}

func (r *Router) now(ctx context.Context) time.Time {
	if r.clock != nil {
		return r.clock()
	}
	return requestcontext.Now(ctx)
}

func (r *Router) record(ctx context.Context, d Decision) {
	r.metrics.IncrementDecision(string(d.Source), d.Unit.Code)
	r.logger.DebugContext(ctx, "routing decision",
		"category", d.Category,
		"residency", d.Residency,
		"age_bracket", d.AgeBracket,
		"source", d.Source,
		"unit", d.Unit.Code,
		"static_default", d.StaticDefault.Code,
		"lookup_tried", d.LookupTried,
	)
}
