// Package phone normalizes South African mobile numbers.
package phone

import (
	"strings"

	"github.com/01moynul/bales-storefront/internal/apperr"
)

const (
	countryCode      = "27"
	trunkPrefix      = "0"
	normalizedDigits = 11
)

// Normalize strips non-digits and rewrites the number into 27XXXXXXXXX form.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, trunkPrefix):
		digits = countryCode + digits[1:]
	case strings.HasPrefix(digits, countryCode):
	default:
		digits = countryCode + digits
	}

	if len(digits) != normalizedDigits {
		return "", apperr.New(apperr.KindInvalidPhoneFormat, "Invalid phone number format")
	}
	return digits, nil
}

// Candidates returns every stored format a number may have been saved in:
// +27…, 27… and 0….
func Candidates(raw string) ([]string, error) {
	n, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	local := trunkPrefix + n[len(countryCode):]
	return []string{"+" + n, n, local}, nil
}
