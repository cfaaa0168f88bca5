package algorithms

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"bloodbank_backend/internal/models"
)

// UrgencyBadge maps an urgency level to its UI badge style.
func UrgencyBadge(level models.UrgencyLevel) string {
	switch level {
	case models.UrgencyLow:
		return "success"
	case models.UrgencyMedium:
		return "warning"
	case models.UrgencyHigh:
		return "danger"
	case models.UrgencyCritical:
		return "dark"
	default:
		return "secondary"
	}
}

// TitleCase upper-cases the first letter and lower-cases the rest ("critical" -> "Critical").
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
