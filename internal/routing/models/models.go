package models

import pstrings "fordeling/pkg/platform/strings"

// CaseCategory is the business document exchange (BUC) type of an inbound
// case event. It drives the static rule branch and whether the dynamic
// lookup overlay applies.
type CaseCategory string

const (
	CategoryOldAgeClaim        CaseCategory = "P_BUC_01"
	CategorySurvivorClaim      CaseCategory = "P_BUC_02"
	CategoryDisabilityClaim    CaseCategory = "P_BUC_03"
	CategoryInformationRequest CaseCategory = "P_BUC_05"
	CategoryPeriodsRequest     CaseCategory = "P_BUC_06"
	CategoryClaimInitiation    CaseCategory = "P_BUC_10"
	CategoryHorizontal         CaseCategory = "H_BUC_07"
	CategoryRepayment          CaseCategory = "R_BUC_02"
	CategoryUnknown            CaseCategory = "UNKNOWN"
)

// AllCategories lists every known category, excluding CategoryUnknown.
var AllCategories = []CaseCategory{
	CategoryOldAgeClaim,
	CategorySurvivorClaim,
	CategoryDisabilityClaim,
	CategoryInformationRequest,
	CategoryPeriodsRequest,
	CategoryClaimInitiation,
	CategoryHorizontal,
	CategoryRepayment,
}

// ParseCaseCategory maps a raw BUC type to a known category. Anything not
// recognized becomes CategoryUnknown.
func ParseCaseCategory(raw string) CaseCategory {
	c := CaseCategory(pstrings.NormalizeCode(raw))
	for _, known := range AllCategories {
		if c == known {
			return c
		}
	}
	return CategoryUnknown
}

func (c CaseCategory) String() string { return string(c) }

// BenefitType is the optional benefit (ytelse) the case concerns.
type BenefitType string

const (
	BenefitNone       BenefitType = ""
	BenefitOldAge     BenefitType = "ALDER"
	BenefitSurvivor   BenefitType = "GJENLEV"
	BenefitChild      BenefitType = "BARNEP"
	BenefitDisability BenefitType = "UFOREP"
)

// ParseBenefitType returns BenefitNone for empty or unrecognized input.
func ParseBenefitType(raw string) BenefitType {
	switch b := BenefitType(pstrings.NormalizeCode(raw)); b {
	case BenefitOldAge, BenefitSurvivor, BenefitChild, BenefitDisability:
		return b
	default:
		return BenefitNone
	}
}

// ResidencyClass is derived from the claimant's country of residence.
type ResidencyClass string

const (
	ResidencyDomestic ResidencyClass = "DOMESTIC"
	ResidencyForeign  ResidencyClass = "FOREIGN"
	ResidencyUnknown  ResidencyClass = "UNKNOWN"
)

// AllResidencies lists every residency class.
var AllResidencies = []ResidencyClass{ResidencyDomestic, ResidencyForeign, ResidencyUnknown}

// AgeBracket is the coarse age classification used to choose between the
// pension and disability welfare units.
type AgeBracket string

const (
	AgeUnresolved AgeBracket = ""
	AgeYoungOrOld AgeBracket = "YOUNG_OR_OLD"
	AgeWorking    AgeBracket = "WORKING_AGE"
)

// ProtectionLevel is the address protection status of the claimant.
type ProtectionLevel string

const (
	ProtectionNone         ProtectionLevel = ""
	ProtectionStrict       ProtectionLevel = "STRENGT_FORTROLIG"
	ProtectionStrictAbroad ProtectionLevel = "STRENGT_FORTROLIG_UTLAND"
	ProtectionConfidential ProtectionLevel = "FORTROLIG"
)

// IsSet reports whether any address protection applies.
func (p ProtectionLevel) IsSet() bool { return p != ProtectionNone }

// PersonRelation is the claimant's relation to the insured person in the case.
type PersonRelation string

const (
	RelationNone     PersonRelation = ""
	RelationInsured  PersonRelation = "FORSIKRET"
	RelationSurvivor PersonRelation = "GJENLEVENDE"
	RelationDeceased PersonRelation = "AVDOD"
	RelationChild    PersonRelation = "BARN"
	RelationOther    PersonRelation = "ANNET"
)

// CaseStatus is the status of the underlying pension case, when known.
type CaseStatus string

const (
	CaseStatusUnknown CaseStatus = ""
	CaseStatusOpen    CaseStatus = "OPPRETTET"
	CaseStatusActive  CaseStatus = "LOPENDE"
	CaseStatusClosed  CaseStatus = "AVSLUTTET"
)

// RoutingRequest aggregates everything the engine needs. It is built by the
// caller before routing; the engine never fetches any of these fields.
type RoutingRequest struct {
	Category       CaseCategory
	CountryCode    string
	BirthDate      string     // yyyyMMdd, used when AgeBracket is unresolved
	AgeBracket     AgeBracket // optional, wins over BirthDate
	BenefitType    BenefitType
	Protection     ProtectionLevel
	PersonRelation PersonRelation
	CaseStatus     CaseStatus
	GeographicTie  string
	SubjectPresent bool
}
