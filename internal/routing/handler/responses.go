package handler

import (
	"fordeling/internal/routing"
	"fordeling/internal/routing/units"
)

// UnitResponse is a unit as returned by the registry endpoints.
type UnitResponse struct {
	Code        string `json:"enhet_nr"`
	DisplayName string `json:"enhet_navn"`
}

// RouteResponse is the HTTP response for POST /routing/route.
type RouteResponse struct {
	Unit          UnitResponse  `json:"unit"`
	Source        string        `json:"source"`
	Category      string        `json:"category"`
	Residency     string        `json:"residency,omitempty"`
	AgeBracket    string        `json:"age_bracket,omitempty"`
	StaticDefault *UnitResponse `json:"static_default,omitempty"`
	LookupTried   bool          `json:"lookup_tried"`
}

func fromUnit(u units.Unit) UnitResponse {
	return UnitResponse{Code: u.Code, DisplayName: u.DisplayName}
}

// FromDecision converts a routing decision to an HTTP response.
func FromDecision(d routing.Decision) *RouteResponse {
	resp := &RouteResponse{
		Unit:        fromUnit(d.Unit),
		Source:      string(d.Source),
		Category:    string(d.Category),
		Residency:   string(d.Residency),
		AgeBracket:  string(d.AgeBracket),
		LookupTried: d.LookupTried,
	}
	if !d.StaticDefault.IsZero() {
		sd := fromUnit(d.StaticDefault)
		resp.StaticDefault = &sd
	}
	return resp
}
