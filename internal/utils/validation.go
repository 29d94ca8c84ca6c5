package utils

import (
	"errors"
	"regexp"

	"gapdash.dashboardpro.org/internal/dataset"
)

// Compiled regular expressions for validation
var (
	// Letters in any script plus the punctuation found in country names,
	// e.g. "Korea, Dem. Rep.", "Cote d'Ivoire", "Guinea-Bissau".
	validCountryPattern = regexp.MustCompile(`^[\p{L}\p{N} .,'()-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
)

// ValidateCountry validates a country name taken from a query or path
func ValidateCountry(country string) error {
	if country == "" {
		return errors.New("country cannot be empty")
	}

	if len(country) > 100 {
		return errors.New("country too long (max 100 characters)")
	}

	if dangerousPattern.MatchString(country) || !validCountryPattern.MatchString(country) {
		return errors.New("country contains invalid characters")
	}

	return nil
}

// ValidateContinent accepts a known continent or the "no filter" sentinel
func ValidateContinent(continent string) error {
	if dataset.IsAllContinents(continent) || dataset.IsKnownContinent(continent) {
		return nil
	}
	return errors.New("unknown continent")
}

// ValidateMeasure accepts one of the selectable measure names
func ValidateMeasure(measure string) error {
	if _, err := dataset.ParseMeasure(measure); err != nil {
		return errors.New("unknown measure, use one of pop, lifeExp, gdpPercap")
	}
	return nil
}
