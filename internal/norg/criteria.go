package norg

import (
	"strings"

	"fordeling/internal/routing/models"
)

// Wildcard is the literal value NORG uses for an unset filter.
const Wildcard = "ANY"

// Filter codes.
const (
	TemaPension    = "PEN"
	TemaDisability = "UFO"

	BehandlingstemaChildPension    = "ab0255"
	BehandlingstemaSurvivorPension = "ab0011"

	BehandlingstypeResidentDomestic = "ae0104"
	BehandlingstypeResidentAbroad   = "ae0107"

	DiskresjonskodeStrict = "SPSF"

	OppgavetypeJournalforing = "JFR"
)

// Criteria is the arbeidsfordeling request body.
type Criteria struct {
	Tema               string `json:"tema"`
	Diskresjonskode    string `json:"diskresjonskode"`
	Behandlingstema    string `json:"behandlingstema"`
	Behandlingstype    string `json:"behandlingstype"`
	GeografiskOmraade  string `json:"geografiskOmraade"`
	SkalTilLokalkontor bool   `json:"skalTilLokalkontor"`
	Oppgavetype        string `json:"oppgavetype"`
	Temagruppe         string `json:"temagruppe"`
}

// Key is a stable cache key covering every criteria field.
func (c Criteria) Key() string {
	lokal := "0"
	if c.SkalTilLokalkontor {
		lokal = "1"
	}
	return strings.Join([]string{
		c.Tema,
		c.Diskresjonskode,
		c.Behandlingstema,
		c.Behandlingstype,
		c.GeografiskOmraade,
		lokal,
		c.Oppgavetype,
		c.Temagruppe,
	}, "|")
}

// Candidate is one arbeidsfordeling rule returned by NORG.
type Candidate struct {
	Tema              string `json:"tema"`
	Diskresjonskode   string `json:"diskresjonskode"`
	Behandlingstema   string `json:"behandlingstema"`
	Behandlingstype   string `json:"behandlingstype"`
	GeografiskOmraade string `json:"geografiskOmraade"`
	Oppgavetype       string `json:"oppgavetype"`
	Temagruppe        string `json:"temagruppe"`
	EnhetNr           string `json:"enhetNr"`
	EnhetNavn         string `json:"enhetNavn"`
}

// BuildCriteria derives lookup criteria from a routing request. Protected
// claimants take a separate branch that ignores every other attribute.
func BuildCriteria(req models.RoutingRequest, residency models.ResidencyClass) Criteria {
	if req.Protection.IsSet() {
		return protectedCriteria()
	}
	return Criteria{
		Tema:               temaFor(req.BenefitType),
		Diskresjonskode:    Wildcard,
		Behandlingstema:    behandlingstemaFor(req.PersonRelation),
		Behandlingstype:    behandlingstypeFor(residency),
		GeografiskOmraade:  geografiskOmraadeFor(req.GeographicTie),
		SkalTilLokalkontor: false,
		Oppgavetype:        OppgavetypeJournalforing,
		Temagruppe:         Wildcard,
	}
}

// protectedCriteria is the dedicated profile for address-protected
// claimants: strict protection, everything else wildcard.
func protectedCriteria() Criteria {
	return Criteria{
		Tema:               Wildcard,
		Diskresjonskode:    DiskresjonskodeStrict,
		Behandlingstema:    Wildcard,
		Behandlingstype:    Wildcard,
		GeografiskOmraade:  Wildcard,
		SkalTilLokalkontor: false,
		Oppgavetype:        Wildcard,
		Temagruppe:         Wildcard,
	}
}

func temaFor(benefit models.BenefitType) string {
	if benefit == models.BenefitDisability {
		return TemaDisability
	}
	return TemaPension
}

func behandlingstemaFor(relation models.PersonRelation) string {
	switch relation {
	case models.RelationChild:
		return BehandlingstemaChildPension
	case models.RelationSurvivor:
		return BehandlingstemaSurvivorPension
	default:
		return Wildcard
	}
}

func behandlingstypeFor(residency models.ResidencyClass) string {
	if residency == models.ResidencyDomestic {
		return BehandlingstypeResidentDomestic
	}
	return BehandlingstypeResidentAbroad
}

func geografiskOmraadeFor(tie string) string {
	if t := strings.TrimSpace(tie); t != "" {
		return t
	}
	return Wildcard
}

// SelectCandidate keeps candidates whose diskresjonskode, behandlingstype,
// behandlingstema and tema all equal the criteria and returns the last one
// in response order.
func SelectCandidate(criteria Criteria, candidates []Candidate) (Candidate, bool) {
	var (
		selected Candidate
		found    bool
	)
	for _, c := range candidates {
		if c.Diskresjonskode != criteria.Diskresjonskode ||
			c.Behandlingstype != criteria.Behandlingstype ||
			c.Behandlingstema != criteria.Behandlingstema ||
			c.Tema != criteria.Tema {
			continue
		}
		// Last match wins. Kept for compatibility; see DESIGN.md.
		selected = c
		found = true
	}
	return selected, found
}
