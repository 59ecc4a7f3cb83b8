package utils

import (
	"regexp"
	"strings"
)

var (
	phoneCleaner = regexp.MustCompile(`[\s\-().]`)
	phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)
)

// NormalizePhone strips separators and converts a local number starting
// with 0 to the default country prefix.
func NormalizePhone(phone string) string {
	phone = phoneCleaner.ReplaceAllString(strings.TrimSpace(phone), "")
	if phone == "" {
		return ""
	}

	if strings.HasPrefix(phone, "00") {
		phone = "+" + phone[2:]
	} else if strings.HasPrefix(phone, "0") {
		phone = "+" + DEFAULT_COUNTRY + phone[1:]
	}

	return phone
}

// IsValidPhone reports whether a normalized phone number looks dialable.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
