package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

// indianMobileRegex matches Indian mobile numbers: 10 digits starting with
// 6-9, optionally prefixed with +91, 91, or a leading 0, with spaces or
// hyphens after the country code.
var indianMobileRegex = regexp.MustCompile(`^(?:(?:\+|0{0,2})91[\s-]?)?0?[6789]\d{9}$`)

// IsValidIndianMobile reports whether phone is a plausible Indian mobile
// number. Accepted forms include 9876543210, 09876543210, +919876543210 and
// +91-9876543210.
func IsValidIndianMobile(phone string) bool {
	return indianMobileRegex.MatchString(strings.TrimSpace(phone))
}

// IsValidEmail reports whether s parses as an RFC 5322 address.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil && addr.Address == strings.TrimSpace(s)
}

// NormalizeIndianMobile normalizes a number to +91XXXXXXXXXX form where
// possible; unrecognized inputs are returned stripped of separators.
func NormalizeIndianMobile(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, phone)

	switch {
	case len(cleaned) == 10:
		return "+91" + cleaned
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "0"):
		return "+91" + cleaned[1:]
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "91"):
		return "+" + cleaned
	default:
		return cleaned
	}
}
