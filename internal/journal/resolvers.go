package journal

import (
	"context"
	"strconv"
	"strings"

	"fordeling/internal/routing"
	"fordeling/internal/routing/models"
)

// EventPersonResolver derives the subject from the national identity number
// carried on the event. It knows nothing about residency or protection, so
// those stay unset until a register-backed resolver replaces it.
type EventPersonResolver struct{}

// ResolvePerson implements PersonResolver.
func (EventPersonResolver) ResolvePerson(_ context.Context, event SedEvent) (Person, bool, error) {
	id := strings.TrimSpace(event.NavUser)
	if id == "" {
		return Person{}, false, nil
	}
	birth, _ := BirthDateFromIdent(id)
	return Person{ID: id, BirthDate: birth}, true, nil
}

// BirthDateFromIdent extracts the birth date (yyyyMMdd) from an 11-digit
// national identity number or D-number.
func BirthDateFromIdent(ident string) (string, bool) {
	if len(ident) != 11 {
		return "", false
	}
	if _, err := strconv.ParseUint(ident, 10, 64); err != nil {
		return "", false
	}
	day, _ := strconv.Atoi(ident[0:2])
	month, _ := strconv.Atoi(ident[2:4])
	yy, _ := strconv.Atoi(ident[4:6])
	individual, _ := strconv.Atoi(ident[6:9])

	if day > 40 {
		day -= 40 // D-number
	}
	if month > 40 {
		month -= 40 // synthetic test identity
	}

	var century int
	switch {
	case individual <= 499:
		century = 1900
	case individual <= 749 && yy >= 54:
		century = 1800
	case individual >= 900 && yy >= 40:
		century = 1900
	case yy <= 39:
		century = 2000
	default:
		return "", false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(strconv.Itoa(century + yy))
	b.WriteString(twoDigits(month))
	b.WriteString(twoDigits(day))
	return b.String(), true
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// UnknownCaseStatus reports every case status as unknown.
type UnknownCaseStatus struct{}

// CaseStatus implements CaseResolver.
func (UnknownCaseStatus) CaseStatus(context.Context, string) (models.CaseStatus, error) {
	return models.CaseStatusUnknown, nil
}

// SedTypeBenefitResolver infers the benefit from the claim document type.
type SedTypeBenefitResolver struct{}

var benefitBySedType = map[string]models.BenefitType{
	"P2000": models.BenefitOldAge,
	"P2100": models.BenefitSurvivor,
	"P2200": models.BenefitDisability,
}

// BenefitType implements BenefitResolver.
func (SedTypeBenefitResolver) BenefitType(_ context.Context, event SedEvent) (models.BenefitType, error) {
	return benefitBySedType[strings.ToUpper(strings.TrimSpace(event.SedType))], nil
}

// BuildRequest assembles the routing request for an event.
func BuildRequest(event SedEvent, person Person, found bool, status models.CaseStatus, benefit models.BenefitType) models.RoutingRequest {
	req := models.RoutingRequest{
		Category:       event.Category(),
		BenefitType:    benefit,
		CaseStatus:     status,
		SubjectPresent: found,
	}
	if !found {
		return req
	}
	req.CountryCode = person.CountryCode
	req.BirthDate = person.BirthDate
	req.Protection = person.Protection
	req.PersonRelation = person.Relation
	req.GeographicTie = person.GeographicTie
	return req
}

// NewRecord builds the sink record for a routed event.
func NewRecord(event SedEvent, d routing.Decision) Record {
	return Record{
		EventKey:   event.Key(),
		SedID:      event.SedID,
		SedType:    event.SedType,
		RinaCaseID: event.RinaCaseID,
		Category:   d.Category,
		UnitCode:   d.Unit.Code,
		UnitName:   d.Unit.DisplayName,
		Source:     d.Source,
	}
}
