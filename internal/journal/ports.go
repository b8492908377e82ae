package journal

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks PersonResolver,CaseResolver,BenefitResolver,DecisionSink

import (
	"context"
	"time"

	"fordeling/internal/routing"
	"fordeling/internal/routing/models"
)

// Person is the case subject as known to the person register.
type Person struct {
	ID            string
	BirthDate     string
	CountryCode   string
	GeographicTie string
	Protection    models.ProtectionLevel
	Relation      models.PersonRelation
}

// PersonResolver finds the subject of a case. found is false when the event
// carries no identifiable person.
type PersonResolver interface {
	ResolvePerson(ctx context.Context, event SedEvent) (person Person, found bool, err error)
}

// CaseResolver reports the status of the case the event belongs to.
type CaseResolver interface {
	CaseStatus(ctx context.Context, rinaCaseID string) (models.CaseStatus, error)
}

// BenefitResolver determines which benefit the case concerns.
type BenefitResolver interface {
	BenefitType(ctx context.Context, event SedEvent) (models.BenefitType, error)
}

// Record is a routed event as handed to the sink.
type Record struct {
	EventKey   string
	SedID      string
	SedType    string
	RinaCaseID string
	Category   models.CaseCategory
	UnitCode   string
	UnitName   string
	Source     routing.DecisionSource
	RequestID  string
	RoutedAt   time.Time
}

// DecisionSink receives the routing result for each handled event.
type DecisionSink interface {
	Record(ctx context.Context, rec Record) error
}
