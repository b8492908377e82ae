package journal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"fordeling/internal/journal"
	"fordeling/internal/journal/mocks"
	"fordeling/internal/platform/kafka/consumer"
	"fordeling/internal/routing"
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
)

type HandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	persons  *mocks.MockPersonResolver
	cases    *mocks.MockCaseResolver
	benefits *mocks.MockBenefitResolver
	sink     *mocks.MockDecisionSink
	handler  *journal.Handler
	now      time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.persons = mocks.NewMockPersonResolver(s.ctrl)
	s.cases = mocks.NewMockCaseResolver(s.ctrl)
	s.benefits = mocks.NewMockBenefitResolver(s.ctrl)
	s.sink = mocks.NewMockDecisionSink(s.ctrl)
	s.now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	// No fixed clock on the router: age is computed from the handler's
	// per-event time.
	router, err := routing.New(units.Default(), nil)
	s.Require().NoError(err)

	s.handler = journal.NewHandler(router, s.persons, s.cases, s.benefits, s.sink,
		journal.WithHandlerClock(func() time.Time { return s.now }),
	)
}

func (s *HandlerSuite) message(ev journal.SedEvent) *consumer.Message {
	raw, err := json.Marshal(ev)
	s.Require().NoError(err)
	return &consumer.Message{
		Topic:   "eessi-basis-sedmottatt-v1",
		Value:   raw,
		Headers: map[string]string{"Nav-Call-Id": "call-1"},
	}
}

func periodsRequest() journal.SedEvent {
	return journal.SedEvent{
		ID:         42,
		SectorCode: "P",
		BucType:    "P_BUC_06",
		RinaCaseID: "147729",
		SedType:    "P6000",
		NavUser:    "01017012345",
	}
}

func (s *HandlerSuite) expectResolvers(person journal.Person, found bool) {
	s.persons.EXPECT().ResolvePerson(gomock.Any(), gomock.Any()).Return(person, found, nil)
	s.cases.EXPECT().CaseStatus(gomock.Any(), "147729").Return(models.CaseStatusActive, nil)
	s.benefits.EXPECT().BenefitType(gomock.Any(), gomock.Any()).Return(models.BenefitNone, nil)
}

func (s *HandlerSuite) TestRoutesWorkingAgeDomesticToDisabilityUnit() {
	s.expectResolvers(journal.Person{BirthDate: "19700101", CountryCode: "NOR"}, true)

	var got journal.Record
	s.sink.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec journal.Record) error {
			got = rec
			return nil
		})

	s.Require().NoError(s.handler.Handle(context.Background(), s.message(periodsRequest())))

	s.Equal("42", got.EventKey)
	s.Equal(units.CodeDisabilityDomestic, got.UnitCode)
	s.Equal(routing.SourceStatic, got.Source)
	s.Equal(models.CategoryPeriodsRequest, got.Category)
	s.Equal("call-1", got.RequestID)
	s.Equal(s.now, got.RoutedAt)
}

func (s *HandlerSuite) TestMissingSubjectGoesToFallbackUnit() {
	s.expectResolvers(journal.Person{}, false)
	s.sink.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec journal.Record) error {
			s.Equal(units.CodeMissingSubject, rec.UnitCode)
			s.Equal(routing.SourceMissingSubject, rec.Source)
			return nil
		})

	s.NoError(s.handler.Handle(context.Background(), s.message(periodsRequest())))
}

func (s *HandlerSuite) TestMalformedEventIsAcknowledged() {
	err := s.handler.Handle(context.Background(), &consumer.Message{Value: []byte(`not json`)})
	s.NoError(err)
}

func (s *HandlerSuite) TestOtherSectorIsSkipped() {
	ev := periodsRequest()
	ev.SectorCode = "FB"
	ev.BucType = "FB_BUC_01"
	s.NoError(s.handler.Handle(context.Background(), s.message(ev)))
}

func (s *HandlerSuite) TestResolverFailureIsReturnedForRetry() {
	s.persons.EXPECT().ResolvePerson(gomock.Any(), gomock.Any()).
		Return(journal.Person{}, false, errors.New("register unavailable"))

	err := s.handler.Handle(context.Background(), s.message(periodsRequest()))
	s.Error(err)
}

func (s *HandlerSuite) TestSinkFailureIsReturnedForRetry() {
	s.expectResolvers(journal.Person{CountryCode: "SWE"}, true)
	s.sink.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	err := s.handler.Handle(context.Background(), s.message(periodsRequest()))
	s.Error(err)
}
