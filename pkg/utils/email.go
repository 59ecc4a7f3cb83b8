package utils

import (
	"net/mail"
	"strings"
)

// HasLineBreak reports whether s contains a CR or LF, which would end a
// mail header early.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

// IsValidEmail reports whether addr is a single bare address such as
// jane@example.com. Display names, groups and line breaks are rejected.
func IsValidEmail(addr string) bool {
	if addr == "" || HasLineBreak(addr) || strings.TrimSpace(addr) != addr {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Name == "" && parsed.Address == addr
}
