// Package scanner turns a raw domain string into a trust verdict by combining
// the offline trust anchors, a live authenticated-resolution check and
// heuristic pattern rules.
package scanner

import "strings"

// Normalize canonicalises raw user input: trim, lowercase, drop one leading
// http:// or https://, drop any path, query or fragment (which covers the
// trailing slash), then drop one leading www.
//
// It never fails. Empty input yields an empty domain, which Evaluate turns
// into a caution verdict without touching the network.
func Normalize(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(d, "https://") {
		d = strings.TrimPrefix(d, "https://")
	} else {
		d = strings.TrimPrefix(d, "http://")
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimPrefix(d, "www.")
	return d
}
