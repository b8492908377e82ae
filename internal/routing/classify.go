package routing

import (
	"strings"
	"time"

	"fordeling/internal/routing/models"
	pstrings "fordeling/pkg/platform/strings"
)

// DomesticCountryCode is the ISO 3166 alpha-3 code of the domestic country.
const DomesticCountryCode = "NOR"

// domesticAlpha2 is accepted as well; some senders use alpha-2 codes.
const domesticAlpha2 = "NO"

// BirthDateLayout is the compact birth date format carried on case events.
const BirthDateLayout = "20060102"

const (
	workingAgeFrom  = 18 // inclusive
	workingAgeUntil = 60 // exclusive
)

// Clock returns the reference time for age computations.
type Clock func() time.Time

// ClassifyResidency maps a country code to a residency class. It has no
// failure modes.
func ClassifyResidency(countryCode string) models.ResidencyClass {
	code := pstrings.NormalizeCode(countryCode)
	switch code {
	case "":
		return models.ResidencyUnknown
	case DomesticCountryCode, domesticAlpha2:
		return models.ResidencyDomestic
	default:
		return models.ResidencyForeign
	}
}

// ClassifyAge maps a yyyyMMdd birth date to an age bracket as of now. The
// second return value is false when the birth date cannot be parsed, in
// which case the bracket is YOUNG_OR_OLD.
func ClassifyAge(birthDate string, now time.Time) (models.AgeBracket, bool) {
	born, err := time.ParseInLocation(BirthDateLayout, strings.TrimSpace(birthDate), now.Location())
	if err != nil {
		return models.AgeYoungOrOld, false
	}
	return BracketForAge(AgeAt(born, now)), true
}

// AgeAt returns the number of whole years between born and now.
func AgeAt(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// BracketForAge applies the [18, 60) working age window.
func BracketForAge(age int) models.AgeBracket {
	if age >= workingAgeFrom && age < workingAgeUntil {
		return models.AgeWorking
	}
	return models.AgeYoungOrOld
}
