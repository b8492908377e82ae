package routing

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fordeling/internal/routing/metrics"
	"fordeling/internal/routing/mocks"
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
)

type RouterSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	lookup   *mocks.MockUnitLookup
	registry *units.Registry
	metrics  *metrics.Metrics
	router   *Router
	now      time.Time
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.lookup = mocks.NewMockUnitLookup(s.ctrl)
	s.registry = units.Default()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	r, err := New(s.registry, s.lookup,
		WithClock(func() time.Time { return s.now }),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.router = r
}

func (s *RouterSuite) unit(code string) units.Unit {
	u, ok := s.registry.Lookup(code)
	s.Require().True(ok, code)
	return u
}

func subject(req models.RoutingRequest) models.RoutingRequest {
	req.SubjectPresent = true
	return req
}

func (s *RouterSuite) TestMissingSubject_AlwaysFallbackUnit() {
	ctx := context.Background()
	// No lookup call is expected for any of these; gomock fails on any call.
	requests := []models.RoutingRequest{
		{},
		{Category: models.CategoryOldAgeClaim, CountryCode: "NOR"},
		{Category: models.CategorySurvivorClaim, CountryCode: "NOR", CaseStatus: models.CaseStatusActive},
		{Category: models.CategoryClaimInitiation, BenefitType: models.BenefitDisability, Protection: models.ProtectionStrict},
		{Category: models.CategoryUnknown, BirthDate: "19800101"},
	}

	for _, req := range requests {
		d := s.router.Decide(ctx, req)
		s.Equal(s.unit(units.CodeMissingSubject), d.Unit)
		s.Equal(SourceMissingSubject, d.Source)
		s.True(d.StaticDefault.IsZero(), "static default must not be computed")
	}
}

func (s *RouterSuite) TestStaticOnlyCategories_NeverCallLookup() {
	ctx := context.Background()
	staticCategories := []models.CaseCategory{
		models.CategoryDisabilityClaim,
		models.CategoryInformationRequest,
		models.CategoryPeriodsRequest,
		models.CategoryHorizontal,
		models.CategoryRepayment,
		models.CategoryUnknown,
	}
	countries := []string{"", "NOR", "SWE"}

	for _, category := range staticCategories {
		for _, country := range countries {
			req := subject(models.RoutingRequest{Category: category, CountryCode: country, BirthDate: "19800101"})
			d := s.router.Decide(ctx, req)

			want := s.router.ResolveDefault(ctx, category, ClassifyResidency(country), models.AgeWorking, models.BenefitNone)
			s.Equal(want, d.Unit, "%s/%s", category, country)
			s.Equal(SourceStatic, d.Source)
			s.False(d.LookupTried)
		}
	}
}

func (s *RouterSuite) TestSurvivorGate() {
	ctx := context.Background()

	s.Run("closed case stays static", func() {
		req := subject(models.RoutingRequest{
			Category:    models.CategorySurvivorClaim,
			CountryCode: "NOR",
			CaseStatus:  models.CaseStatusClosed,
		})
		s.Equal(s.unit(units.CodePensionDomestic), s.router.Route(ctx, req))
	})

	s.Run("foreign residency stays static", func() {
		req := subject(models.RoutingRequest{
			Category:    models.CategorySurvivorClaim,
			CountryCode: "SWE",
			CaseStatus:  models.CaseStatusActive,
		})
		s.Equal(s.unit(units.CodePensionForeign), s.router.Route(ctx, req))
	})

	s.Run("active domestic case uses lookup", func() {
		req := subject(models.RoutingRequest{
			Category:    models.CategorySurvivorClaim,
			CountryCode: "NOR",
			CaseStatus:  models.CaseStatusActive,
		})
		local := s.unit("4817")
		s.lookup.EXPECT().FindUnit(gomock.Any(), req, models.ResidencyDomestic).Return(local, true)

		d := s.router.Decide(ctx, req)
		s.Equal(local, d.Unit)
		s.Equal(SourceLookup, d.Source)
		s.Equal(s.unit(units.CodePensionDomestic), d.StaticDefault)
	})
}

func (s *RouterSuite) TestOverlay_LookupResultWins() {
	ctx := context.Background()
	req := subject(models.RoutingRequest{Category: models.CategoryOldAgeClaim, CountryCode: "NOR", GeographicTie: "0301"})
	oslo := s.unit("4803")
	s.lookup.EXPECT().FindUnit(gomock.Any(), req, models.ResidencyDomestic).Return(oslo, true)

	s.Equal(oslo, s.router.Route(ctx, req))
}

func (s *RouterSuite) TestOverlay_NoMatchFallsBackToStaticDefault() {
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RoutingRequest
		want string
	}{
		{"old-age foreign", models.RoutingRequest{Category: models.CategoryOldAgeClaim, CountryCode: "SWE"}, units.CodePensionForeign},
		{"old-age domestic", models.RoutingRequest{Category: models.CategoryOldAgeClaim, CountryCode: "NOR"}, units.CodePensionDomestic},
		{"claim initiation disability", models.RoutingRequest{Category: models.CategoryClaimInitiation, CountryCode: "NOR", BenefitType: models.BenefitDisability}, units.CodeDisabilityDomestic},
		{"survivor active domestic", models.RoutingRequest{Category: models.CategorySurvivorClaim, CountryCode: "NOR", CaseStatus: models.CaseStatusActive}, units.CodePensionDomestic},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := subject(tt.req)
			s.lookup.EXPECT().FindUnit(gomock.Any(), req, gomock.Any()).Return(units.Unit{}, false)

			d := s.router.Decide(ctx, req)
			s.Equal(s.unit(tt.want), d.Unit)
			s.Equal(SourceStatic, d.Source)
			s.True(d.LookupTried)
		})
	}
}

func (s *RouterSuite) TestEndToEndRouting() {
	ctx := context.Background()
	// Lookup yields nothing, so these pin the static defaults.
	s.lookup.EXPECT().FindUnit(gomock.Any(), gomock.Any(), gomock.Any()).Return(units.Unit{}, false).AnyTimes()

	tests := []struct {
		name string
		req  models.RoutingRequest
		want string
	}{
		{
			name: "first pension claim without country",
			req:  models.RoutingRequest{Category: models.CategoryOldAgeClaim, BirthDate: "19500101"},
			want: units.CodePensionForeign,
		},
		{
			name: "first pension claim domestic",
			req:  models.RoutingRequest{Category: models.CategoryOldAgeClaim, CountryCode: "NOR", BirthDate: "19500101"},
			want: units.CodePensionDomestic,
		},
		{
			name: "disability claim domestic",
			req:  models.RoutingRequest{Category: models.CategoryDisabilityClaim, CountryCode: "NOR", BirthDate: "19800101"},
			want: units.CodeDisabilityDomestic,
		},
		{
			name: "claim initiation with disability benefit domestic",
			req:  models.RoutingRequest{Category: models.CategoryClaimInitiation, CountryCode: "NOR", BenefitType: models.BenefitDisability, BirthDate: "19500101"},
			want: units.CodeDisabilityDomestic,
		},
		{
			name: "horizontal working age abroad",
			req:  models.RoutingRequest{Category: models.CategoryHorizontal, CountryCode: "DEU", BirthDate: "19800101"},
			want: units.CodeDisabilityForeign,
		},
		{
			name: "horizontal with resolved bracket ignores birth date",
			req:  models.RoutingRequest{Category: models.CategoryHorizontal, CountryCode: "NOR", BirthDate: "19800101", AgeBracket: models.AgeYoungOrOld},
			want: units.CodePensionDomestic,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(s.unit(tt.want), s.router.Route(ctx, subject(tt.req)))
		})
	}
}

func (s *RouterSuite) TestIdempotent() {
	ctx := context.Background()
	req := subject(models.RoutingRequest{Category: models.CategoryOldAgeClaim, CountryCode: "NOR", GeographicTie: "5001"})
	local := s.unit("4817")
	s.lookup.EXPECT().FindUnit(gomock.Any(), req, models.ResidencyDomestic).Return(local, true).Times(2)

	first := s.router.Decide(ctx, req)
	second := s.router.Decide(ctx, req)
	s.Equal(first, second)
}

func (s *RouterSuite) TestUnmappedCategory_SafeDefault() {
	ctx := context.Background()
	req := subject(models.RoutingRequest{Category: models.CaseCategory("X_BUC_99"), CountryCode: "NOR"})

	s.Equal(s.unit(units.CodePensionForeign), s.router.Route(ctx, req))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.UnmappedCategories.WithLabelValues("X_BUC_99")))
}

func (s *RouterSuite) TestMetrics_RecordsDecisionSource() {
	ctx := context.Background()
	s.router.Route(ctx, models.RoutingRequest{})
	s.router.Route(ctx, subject(models.RoutingRequest{Category: models.CategoryRepayment}))

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues(string(SourceMissingSubject), units.CodeMissingSubject)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Decisions.WithLabelValues(string(SourceStatic), units.CodeRepayment)))
}

func TestNew_RejectsIncompleteRegistry(t *testing.T) {
	reg, err := units.NewRegistry([]units.Unit{{Code: units.CodePensionForeign, DisplayName: "x"}})
	require.NoError(t, err)

	_, err = New(reg, nil)
	assert.Error(t, err, "registry without required codes")
}

func TestRoute_NilLookupUsesStaticDefault(t *testing.T) {
	r, err := New(units.Default(), nil)
	require.NoError(t, err)

	got := r.Route(context.Background(), models.RoutingRequest{
		Category:       models.CategoryOldAgeClaim,
		CountryCode:    "NOR",
		SubjectPresent: true,
	})
	assert.Equal(t, units.CodePensionDomestic, got.Code)
}
