package scanner

import "strings"

// SovereignSuffix is the national namespace under evaluation.
const SovereignSuffix = ".ng"

// SuspiciousKeywords are substrings commonly seen in phishing domains.
var SuspiciousKeywords = []string{
	"bonus",
	"free",
	"gift",
	"promo",
	"login-check",
	"support",
	"verify",
	"update",
	"bank-ng",
}

// IsSovereign reports whether domain sits under .ng.
func IsSovereign(domain string) bool {
	return strings.HasSuffix(domain, SovereignSuffix)
}

// MatchKeywords returns the suspicious keywords found in domain, in
// SuspiciousKeywords order.
func MatchKeywords(domain string) []string {
	d := strings.ToLower(domain)
	var hits []string
	for _, kw := range SuspiciousKeywords {
		if strings.Contains(d, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// IsSuspicious reports whether domain contains any suspicious keyword.
func IsSuspicious(domain string) bool {
	return len(MatchKeywords(domain)) > 0
}
