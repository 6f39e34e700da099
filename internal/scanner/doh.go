package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"sentinel/internal/utils"

	"github.com/miekg/dns"
)

const maxDoHBody = 64 << 10

// DoHResolver queries a JSON DNS-over-HTTPS endpoint (dns.google/resolve,
// cloudflare-dns.com/dns-query) for an A record with DNSSEC data requested.
type DoHResolver struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

func NewDoHResolver(endpoint string, timeout time.Duration) *DoHResolver {
	return &DoHResolver{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
		Timeout:  timeout,
	}
}

type dohResponse struct {
	Status *int `json:"Status"`
	AD     bool `json:"AD"`
}

func (r *DoHResolver) Resolve(ctx context.Context, domain string) Outcome {
	out, err := r.query(ctx, domain)
	if err != nil {
		utils.Log.Warn("doh lookup failed",
			utils.Field("domain", domain),
			utils.Field("error", err.Error()))
		return OutcomeUnavailable
	}
	return out
}

func (r *DoHResolver) query(ctx context.Context, domain string) (Outcome, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	u, err := url.Parse(r.Endpoint)
	if err != nil {
		return OutcomeUnavailable, fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("name", domain)
	q.Set("type", dns.TypeToString[dns.TypeA])
	q.Set("do", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return OutcomeUnavailable, err
	}
	req.Header.Set("Accept", "application/dns-json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return OutcomeUnavailable, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return OutcomeUnavailable, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var body dohResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDoHBody)).Decode(&body); err != nil {
		return OutcomeUnavailable, fmt.Errorf("invalid JSON: %w", err)
	}
	if body.Status == nil {
		return OutcomeUnavailable, fmt.Errorf("response has no Status field")
	}

	return classify(*body.Status, body.AD), nil
}
