package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex       = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	localMobileRegex = regexp.MustCompile(`^0?5\d{8}$`)
	phoneJunkRegex   = regexp.MustCompile(`[\s()\-]`)
)

// NormalizeNumber reshapes a destination typed in chat into international
// form. It is not a validator: input that matches no local pattern is
// returned with separators stripped and otherwise untouched.
//
//	555 12-34-56   -> +995555123456
//	0555123456     -> +995555123456
//	995555123456   -> +995555123456
//	+995555123456  -> +995555123456
func NormalizeNumber(raw, countryCode string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}

	cc := strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	if cc == "" {
		cc = DefaultCountryCode
	}

	cleaned := phoneJunkRegex.ReplaceAllString(raw, "")

	if localMobileRegex.MatchString(cleaned) {
		return "+" + cc + strings.TrimPrefix(cleaned, "0")
	}

	if strings.HasPrefix(cleaned, cc) {
		return "+" + cleaned
	}

	return cleaned
}

func IsValidPhone(phone string) bool {
	// Remove all non-digit characters except +
	cleaned := regexp.MustCompile(`[^\d+]`).ReplaceAllString(phone, "")

	// Basic E.164 format validation
	return strings.HasPrefix(cleaned, "+") && phoneRegex.MatchString(cleaned)
}

// MaskPhone keeps the last 4 characters for logs.
func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}

	masked := strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
	return masked
}
