package routing

import (
	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
)

// DefaultCode is the static rule table. It is pure: no I/O, no logging.
// The second return value is false when the category has no table entry and
// the generic foreign pension unit was used instead.
//
// Rule shape per category:
//   - old-age claim: pension unit
//   - disability claim: disability unit
//   - survivor claim: disability unit for disability benefit, else pension unit
//   - information, periods and horizontal: bracket rule
//   - claim initiation: explicit benefit wins, else bracket rule
//   - repayment: repayment unit
//
// Domestic residency picks the domestic unit; foreign and unknown pick the
// foreign unit.
func DefaultCode(
	category models.CaseCategory,
	residency models.ResidencyClass,
	bracket models.AgeBracket,
	benefit models.BenefitType,
) (string, bool) {
	switch category {
	case models.CategoryOldAgeClaim:
		return pensionUnit(residency), true

	case models.CategoryDisabilityClaim:
		return disabilityUnit(residency), true

	case models.CategorySurvivorClaim:
		if benefit == models.BenefitDisability {
			return disabilityUnit(residency), true
		}
		return pensionUnit(residency), true

	case models.CategoryInformationRequest, models.CategoryPeriodsRequest, models.CategoryHorizontal:
		return byBracket(residency, bracket), true

	case models.CategoryClaimInitiation:
		switch benefit {
		case models.BenefitDisability:
			return disabilityUnit(residency), true
		case models.BenefitOldAge, models.BenefitSurvivor, models.BenefitChild:
			return pensionUnit(residency), true
		default:
			return byBracket(residency, bracket), true
		}

	case models.CategoryRepayment:
		return units.CodeRepayment, true

	default:
		return units.CodePensionForeign, false
	}
}

// byBracket chooses the disability unit for working-age claimants, who fall
// in the disability welfare bracket, and the pension unit otherwise.
func byBracket(residency models.ResidencyClass, bracket models.AgeBracket) string {
	if bracket == models.AgeWorking {
		return disabilityUnit(residency)
	}
	return pensionUnit(residency)
}

func pensionUnit(residency models.ResidencyClass) string {
	if residency == models.ResidencyDomestic {
		return units.CodePensionDomestic
	}
	return units.CodePensionForeign
}

func disabilityUnit(residency models.ResidencyClass) string {
	if residency == models.ResidencyDomestic {
		return units.CodeDisabilityDomestic
	}
	return units.CodeDisabilityForeign
}
