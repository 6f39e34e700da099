// Package app builds the scanner and its collaborators from configuration.
package app

import (
	"sentinel/internal/config"
	"sentinel/internal/metrics"
	"sentinel/internal/scanner"
	"sentinel/internal/trust"
)

// NewAnchors returns the configured trust anchors: the file named by
// TRUST_ANCHORS_FILE when set, the compiled-in list otherwise.
func NewAnchors(cfg *config.Config) (*trust.Store, error) {
	if cfg.TrustAnchorsFile != "" {
		return trust.LoadFile(cfg.TrustAnchorsFile)
	}
	return trust.Default(), nil
}

// NewResolver picks the authenticity resolver for cfg.ResolverMode.
func NewResolver(cfg *config.Config) scanner.Resolver {
	if cfg.ResolverMode == config.ResolverModeDNS {
		return scanner.NewWireResolver(cfg.DNSServer, cfg.ResolverTimeout)
	}
	return scanner.NewDoHResolver(cfg.DoHEndpoint, cfg.ResolverTimeout)
}

// NewEngine wires anchors, resolver and metrics into an engine. m may be nil.
func NewEngine(cfg *config.Config, m *metrics.Metrics) (*scanner.Engine, *trust.Store, error) {
	anchors, err := NewAnchors(cfg)
	if err != nil {
		return nil, nil, err
	}
	return scanner.NewEngine(anchors, NewResolver(cfg), m), anchors, nil
}
