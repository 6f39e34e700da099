package scanner

import (
	"context"
	"fmt"
	"time"

	"sentinel/internal/utils"

	"github.com/miekg/dns"
)

// WireResolver sends a single A query straight to a recursive resolver with
// the EDNS0 DO bit set and reads the AD flag from the reply.
type WireResolver struct {
	Server  string
	Net     string // "udp" (default) or "tcp"
	Timeout time.Duration
}

func NewWireResolver(server string, timeout time.Duration) *WireResolver {
	return &WireResolver{
		Server:  server,
		Timeout: timeout,
	}
}

func (r *WireResolver) Resolve(ctx context.Context, domain string) Outcome {
	out, err := r.query(ctx, domain)
	if err != nil {
		utils.Log.Warn("dns lookup failed",
			utils.Field("domain", domain),
			utils.Field("server", r.Server),
			utils.Field("error", err.Error()))
		return OutcomeUnavailable
	}
	return out
}

func (r *WireResolver) query(ctx context.Context, domain string) (Outcome, error) {
	if _, ok := dns.IsDomainName(domain); !ok {
		return OutcomeUnavailable, fmt.Errorf("invalid domain name %q", domain)
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	m.SetEdns0(4096, true)
	m.AuthenticatedData = true

	c := &dns.Client{Net: r.Net, Timeout: r.Timeout}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	in, _, err := c.ExchangeContext(ctx, m, r.Server)
	if err != nil {
		return OutcomeUnavailable, err
	}
	if in == nil {
		return OutcomeUnavailable, fmt.Errorf("empty response")
	}
	return classify(in.Rcode, in.AuthenticatedData), nil
}
