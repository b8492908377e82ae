package handler

import (
	"strings"

	"fordeling/internal/routing/models"
	"fordeling/pkg/platform/httputil"
)

// RouteRequest is the HTTP request body for POST /routing/route.
type RouteRequest struct {
	BucType        string `json:"buc_type"`
	CountryCode    string `json:"country_code"`
	BirthDate      string `json:"birth_date"`
	AgeBracket     string `json:"age_bracket"`
	BenefitType    string `json:"benefit_type"`
	Protection     string `json:"protection"`
	PersonRelation string `json:"person_relation"`
	CaseStatus     string `json:"case_status"`
	GeographicTie  string `json:"geographic_tie"`
	// SubjectPresent defaults to true when omitted.
	SubjectPresent *bool `json:"subject_present"`

	parsed models.RoutingRequest
}

// Validate implements httputil.Validatable.
func (r *RouteRequest) Validate() error {
	if r == nil {
		return httputil.BadRequest("request body is required")
	}
	if strings.TrimSpace(r.BucType) == "" {
		return httputil.BadRequest("buc_type is required")
	}
	r.CountryCode = strings.TrimSpace(r.CountryCode)
	r.GeographicTie = strings.TrimSpace(r.GeographicTie)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	if len(r.CountryCode) > 3 || len(r.GeographicTie) > 8 || len(r.BirthDate) > 8 {
		return httputil.BadRequest("field too long")
	}

	bracket := models.AgeBracket(strings.ToUpper(strings.TrimSpace(r.AgeBracket)))
	switch bracket {
	case models.AgeUnresolved, models.AgeYoungOrOld, models.AgeWorking:
	default:
		return httputil.BadRequest("age_bracket must be YOUNG_OR_OLD or WORKING_AGE")
	}

	protection := models.ProtectionLevel(strings.ToUpper(strings.TrimSpace(r.Protection)))
	switch protection {
	case models.ProtectionNone, models.ProtectionStrict, models.ProtectionStrictAbroad, models.ProtectionConfidential:
	default:
		return httputil.BadRequest("unknown protection level")
	}

	subject := true
	if r.SubjectPresent != nil {
		subject = *r.SubjectPresent
	}

	r.parsed = models.RoutingRequest{
		Category:       models.ParseCaseCategory(r.BucType),
		CountryCode:    r.CountryCode,
		BirthDate:      r.BirthDate,
		AgeBracket:     bracket,
		BenefitType:    models.ParseBenefitType(r.BenefitType),
		Protection:     protection,
		PersonRelation: models.PersonRelation(strings.ToUpper(strings.TrimSpace(r.PersonRelation))),
		CaseStatus:     models.CaseStatus(strings.ToUpper(strings.TrimSpace(r.CaseStatus))),
		GeographicTie:  r.GeographicTie,
		SubjectPresent: subject,
	}
	return nil
}

// Parsed returns the validated routing request.
func (r *RouteRequest) Parsed() models.RoutingRequest {
	return r.parsed
}
