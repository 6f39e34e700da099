package scanner

import (
	"context"

	"github.com/miekg/dns"
)

// Outcome is the authenticity signal produced by a Resolver.
type Outcome int

const (
	// OutcomeUnavailable means no answer was obtained: offline, skipped,
	// timed out or the response could not be parsed.
	OutcomeUnavailable Outcome = iota
	// OutcomeAuthenticated means the name resolved and the response carried
	// the authenticated-data flag.
	OutcomeAuthenticated
	// OutcomeCheckedAbsent means the name resolved without the flag.
	OutcomeCheckedAbsent
	// OutcomeNonExistent means the resolver answered but the name did not
	// resolve.
	OutcomeNonExistent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeCheckedAbsent:
		return "checked_absent"
	case OutcomeNonExistent:
		return "non_existent"
	default:
		return "unavailable"
	}
}

// Resolver performs one authenticated name-resolution attempt. Implementations
// must not return errors or panic; every failure maps to OutcomeUnavailable.
type Resolver interface {
	Resolve(ctx context.Context, domain string) Outcome
}

// classify maps a DNS response code and AD flag to an Outcome. Any non-zero
// rcode counts as unresolvable.
func classify(rcode int, authenticated bool) Outcome {
	if rcode != dns.RcodeSuccess {
		return OutcomeNonExistent
	}
	if authenticated {
		return OutcomeAuthenticated
	}
	return OutcomeCheckedAbsent
}

// offlineResolver never answers.
type offlineResolver struct{}

func (offlineResolver) Resolve(context.Context, string) Outcome { return OutcomeUnavailable }
