// Package plates validates and normalizes Argentine license plates.
package plates

import (
	"regexp"
	"strings"
)

// The three plate formats in circulation: Mercosur (AB123CD), the older
// three-letter format (ABC123) and the motorcycle format (A123BCD).
var (
	patternMercosur   = regexp.MustCompile(`^[A-Z]{2}\d{3}[A-Z]{2}$`)
	patternThreeAlpha = regexp.MustCompile(`^[A-Z]{3}\d{3}$`)
	patternMotorcycle = regexp.MustCompile(`^[A-Z]\d{3}[A-Z]{3}$`)
)

// normalize strips spaces and hyphens and uppercases the input.
func normalize(plate string) string {
	s := strings.TrimSpace(plate)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToUpper(s)
}

// IsValid reports whether the plate matches one of the three supported
// formats after normalization. Total: never panics, empty input is invalid.
func IsValid(plate string) bool {
	s := normalize(plate)
	return patternMercosur.MatchString(s) ||
		patternThreeAlpha.MatchString(s) ||
		patternMotorcycle.MatchString(s)
}

// Normalize returns the normalized uppercase form and whether it is a valid
// plate. The normalized form is returned even for invalid input so callers
// can echo it back in error messages.
func Normalize(plate string) (string, bool) {
	s := normalize(plate)
	return s, IsValid(s)
}
