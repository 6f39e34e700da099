package scanner

import (
	"context"
	"time"

	"sentinel/internal/metrics"
	"sentinel/internal/model"
	"sentinel/internal/utils"
)

// AnchorStore answers exact-match trust anchor lookups.
type AnchorStore interface {
	IsTrusted(domain string) bool
}

// Engine evaluates domains. It holds no mutable state, so one Engine can
// serve concurrent scans.
type Engine struct {
	Anchors  AnchorStore
	Resolver Resolver
	Metrics  *metrics.Metrics
}

// NewEngine wires an engine. A nil resolver behaves as permanently offline.
func NewEngine(anchors AnchorStore, resolver Resolver, m *metrics.Metrics) *Engine {
	if resolver == nil {
		resolver = offlineResolver{}
	}
	return &Engine{Anchors: anchors, Resolver: resolver, Metrics: m}
}

// Evaluate produces the verdict for raw. When online is false the resolver is
// not called. Evaluate always returns a result; resolver failures degrade to
// OutcomeUnavailable.
func (e *Engine) Evaluate(ctx context.Context, raw string, online bool) model.ScanResult {
	domain := Normalize(raw)

	if e.Anchors != nil && e.Anchors.IsTrusted(domain) {
		res := Compose(Signals{Domain: domain, Anchored: true})
		e.record(res, "anchor")
		return res
	}

	outcome := OutcomeUnavailable
	if online && domain != "" {
		outcome = e.resolve(ctx, domain)
	}

	res := Compose(Signals{
		Domain:    domain,
		Sovereign: IsSovereign(domain),
		Keywords:  MatchKeywords(domain),
		Outcome:   outcome,
	})
	e.record(res, outcome.String())
	return res
}

func (e *Engine) resolve(ctx context.Context, domain string) (out Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			utils.Log.Error("resolver panicked",
				utils.Field("domain", domain),
				utils.Field("panic", r))
			out = OutcomeUnavailable
		}
		e.Metrics.ObserveResolver(out.String(), time.Since(start))
	}()
	return e.Resolver.Resolve(ctx, domain)
}

func (e *Engine) record(res model.ScanResult, source string) {
	e.Metrics.ObserveScan(string(res.Status))
	utils.Log.Debug("domain evaluated",
		utils.Field("domain", res.Domain),
		utils.Field("status", res.Status),
		utils.Field("source", source))
}
