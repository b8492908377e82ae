package norg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fordeling/internal/routing/metrics"
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
	"fordeling/pkg/platform/circuit"
)

type stubFetcher struct {
	candidates []Candidate
	err        error
	calls      atomic.Int32
	gate       chan struct{}
}

func (f *stubFetcher) Arbeidsfordeling(_ context.Context, _ Criteria) ([]Candidate, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.candidates, f.err
}

type LookupSuite struct {
	suite.Suite
	registry *units.Registry
	metrics  *metrics.Metrics
	req      models.RoutingRequest
	criteria Criteria
}

func TestLookupSuite(t *testing.T) {
	suite.Run(t, new(LookupSuite))
}

func (s *LookupSuite) SetupTest() {
	s.registry = units.Default()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.req = models.RoutingRequest{
		Category:       models.CategoryOldAgeClaim,
		CountryCode:    "NOR",
		GeographicTie:  "0301",
		SubjectPresent: true,
	}
	s.criteria = BuildCriteria(s.req, models.ResidencyDomestic)
}

func (s *LookupSuite) matching(enhet string) Candidate {
	return Candidate{
		Tema:              s.criteria.Tema,
		Diskresjonskode:   s.criteria.Diskresjonskode,
		Behandlingstema:   s.criteria.Behandlingstema,
		Behandlingstype:   s.criteria.Behandlingstype,
		GeografiskOmraade: s.criteria.GeografiskOmraade,
		EnhetNr:           enhet,
	}
}

func (s *LookupSuite) newLookup(f Fetcher, opts ...LookupOption) *Lookup {
	opts = append(opts, WithLookupMetrics(s.metrics))
	return NewLookup(f, s.registry, opts...)
}

func (s *LookupSuite) TestMatch_ReturnsRegisteredUnit() {
	l := s.newLookup(&stubFetcher{candidates: []Candidate{s.matching("4803")}})

	u, ok := l.FindUnit(context.Background(), s.req, models.ResidencyDomestic)
	s.True(ok)
	s.Equal("4803", u.Code)
	s.NotEmpty(u.DisplayName, "display name comes from the registry")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues("match", "")))
}

func (s *LookupSuite) TestTieBreak_LastMatchWins() {
	l := s.newLookup(&stubFetcher{candidates: []Candidate{s.matching("4803"), s.matching("4817")}})

	u, ok := l.FindUnit(context.Background(), s.req, models.ResidencyDomestic)
	s.True(ok)
	s.Equal("4817", u.Code)
}

func (s *LookupSuite) TestNoMatchCases() {
	ctx := context.Background()

	s.Run("fetch error", func() {
		l := s.newLookup(&stubFetcher{err: newLookupError(ErrorProviderOutage, "status 503", nil)})
		_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
		s.False(ok)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues("error", string(ErrorProviderOutage))))
	})

	s.Run("uncategorized error", func() {
		l := s.newLookup(&stubFetcher{err: errors.New("boom")})
		_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
		s.False(ok)
	})

	s.Run("empty response", func() {
		l := s.newLookup(&stubFetcher{})
		_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
		s.False(ok)
	})

	s.Run("no candidate matches", func() {
		c := s.matching("4803")
		c.Tema = TemaDisability
		l := s.newLookup(&stubFetcher{candidates: []Candidate{c}})
		_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
		s.False(ok)
	})

	s.Run("unit unknown to registry", func() {
		l := s.newLookup(&stubFetcher{candidates: []Candidate{s.matching("4803"), s.matching("1234")}})
		_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
		s.False(ok, "last match is unknown, earlier known match is not used")
	})
}

func (s *LookupSuite) TestCache_SecondCallServedFromCache() {
	f := &stubFetcher{candidates: []Candidate{s.matching("4803")}}
	l := s.newLookup(f, WithCache(NewMemoryCache(), time.Minute))
	ctx := context.Background()

	first, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
	s.Require().True(ok)
	second, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
	s.Require().True(ok)

	s.Equal(first, second)
	s.Equal(int32(1), f.calls.Load())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues("cache_hit", "")))
}

func (s *LookupSuite) TestCache_ErrorsAreNotCached() {
	f := &stubFetcher{err: newLookupError(ErrorTimeout, "request timed out", nil)}
	l := s.newLookup(f, WithCache(NewMemoryCache(), time.Minute))
	ctx := context.Background()

	_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
	s.False(ok)

	f.err = nil
	f.candidates = []Candidate{s.matching("4803")}
	u, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
	s.True(ok)
	s.Equal("4803", u.Code)
	s.Equal(int32(2), f.calls.Load())
}

func (s *LookupSuite) TestCache_ConcurrentMissesShareOneFetch() {
	f := &stubFetcher{candidates: []Candidate{s.matching("4803")}, gate: make(chan struct{})}
	l := s.newLookup(f, WithCache(NewMemoryCache(), time.Minute))

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, _ := l.FindUnit(context.Background(), s.req, models.ResidencyDomestic)
			results[i] = u.Code
		}()
	}

	s.Eventually(func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	s.LessOrEqual(f.calls.Load(), int32(callers))
	for _, code := range results {
		s.Equal("4803", code)
	}
}

func (s *LookupSuite) TestCancelledContext_IsNoMatch() {
	f := &stubFetcher{candidates: []Candidate{s.matching("4803")}, gate: make(chan struct{})}
	defer close(f.gate)
	l := s.newLookup(f, WithCache(NewMemoryCache(), time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
	s.False(ok)
}

func (s *LookupSuite) TestBreaker_OpenCircuitSkipsFetch() {
	f := &stubFetcher{err: newLookupError(ErrorProviderOutage, "status 503", nil)}
	b := circuit.New("norg", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	l := s.newLookup(f, WithBreaker(b))
	ctx := context.Background()

	for range 2 {
		_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
		s.False(ok)
	}
	s.True(b.IsOpen())

	_, ok := l.FindUnit(ctx, s.req, models.ResidencyDomestic)
	s.False(ok)
	s.Equal(int32(2), f.calls.Load())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues("circuit_open", "")))
}

func (s *LookupSuite) TestBreaker_ContractErrorsDoNotTrip() {
	f := &stubFetcher{err: newLookupError(ErrorContractMismatch, "status 404", nil)}
	b := circuit.New("norg", circuit.WithFailureThreshold(1))
	l := s.newLookup(f, WithBreaker(b))

	_, ok := l.FindUnit(context.Background(), s.req, models.ResidencyDomestic)
	s.False(ok)
	s.False(b.IsOpen())
}

func (s *LookupSuite) healthyNorg(enhet string) *httptest.Server {
	body, err := json.Marshal([]Candidate{s.matching(enhet)})
	s.Require().NoError(err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	s.T().Cleanup(srv.Close)
	return srv
}

func (s *LookupSuite) TestBreaker_CallerCancellationDoesNotTrip() {
	for name, opts := range map[string][]LookupOption{
		"uncached": nil,
		"cached":   {WithCache(NewMemoryCache(), time.Minute)},
	} {
		s.Run(name, func() {
			s.metrics = metrics.New(prometheus.NewRegistry())
			srv := s.healthyNorg("4803")
			b := circuit.New("norg", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
			l := s.newLookup(NewHTTPClient(srv.URL, time.Second), append(opts, WithBreaker(b))...)

			cancelled, cancel := context.WithCancel(context.Background())
			cancel()
			for range 2 {
				_, ok := l.FindUnit(cancelled, s.req, models.ResidencyDomestic)
				s.False(ok)
			}
			s.False(b.IsOpen())
			s.Equal(2.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues("error", string(ErrorCancelled))))

			u, ok := l.FindUnit(context.Background(), s.req, models.ResidencyDomestic)
			s.True(ok)
			s.Equal("4803", u.Code)
		})
	}
}

func (s *LookupSuite) TestBreaker_CancelledTrialReleasesSlot() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := circuit.New("norg",
		circuit.WithFailureThreshold(1),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Second),
		circuit.WithClock(func() time.Time { return now }),
	)
	b.RecordFailure()
	now = now.Add(time.Second)

	srv := s.healthyNorg("4803")
	l := s.newLookup(NewHTTPClient(srv.URL, time.Second), WithBreaker(b))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := l.FindUnit(cancelled, s.req, models.ResidencyDomestic)
	s.False(ok)
	s.True(b.IsOpen())

	u, ok := l.FindUnit(context.Background(), s.req, models.ResidencyDomestic)
	s.True(ok, "next caller gets the trial call")
	s.Equal("4803", u.Code)
	s.False(b.IsOpen())
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.clock = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []Candidate{{EnhetNr: "4803"}}, time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "4803", got[0].EnhetNr)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry expires at its TTL")
}
