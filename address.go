package geoassist

import (
	"regexp"
	"strings"
)

var postalCode = regexp.MustCompile(`\b\d{5}\b`)

var countryNames = map[string]bool{
	"vietnam":  true,
	"viet nam": true,
	"vn":       true,
}

// FormatAddress cleans a provider-formatted address for display: postal codes
// are dropped, a trailing country part is removed and separators are normalized.
//
// Example:
//
//	geoassist.FormatAddress("Han Market, 50207, Da Nang, Vietnam")
//	// Han Market, Da Nang
func FormatAddress(address string) string {
	parts := strings.Split(address, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(postalCode.ReplaceAllString(part, "")), " ")
		if part != "" {
			out = append(out, part)
		}
	}
	if n := len(out); n > 1 && countryNames[strings.ToLower(out[n-1])] {
		out = out[:n-1]
	}
	return strings.Join(out, ", ")
}
