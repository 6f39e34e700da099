package utils

import (
	"net"
	"strings"
)

// MaxInputLength bounds raw domain input accepted from clients.
const MaxInputLength = 2048

// IsValidTarget reports whether a canonical domain looks like a hostname
// worth watching: letters, digits, dots and hyphens with at least one dot.
// IP literals are rejected.
func IsValidTarget(target string) bool {
	if target == "" || len(target) > 253 {
		return false
	}
	if net.ParseIP(target) != nil {
		return false
	}
	for _, ch := range target {
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') && ch != '.' && ch != '-' {
			return false
		}
	}
	return strings.Contains(target, ".") && !strings.HasPrefix(target, ".") && !strings.Contains(target, "..")
}

// IsAcceptableInput is the caller-side guard applied before a raw string is
// handed to the scanner.
func IsAcceptableInput(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed != "" && len(trimmed) <= MaxInputLength
}
