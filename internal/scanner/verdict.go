package scanner

import (
	"fmt"
	"strings"

	"sentinel/internal/model"
)

// Registrar labels are provenance hints, not registry lookups.
const (
	RegistrarAnchor        = "Galaxy Backbone / NiRA Accredited"
	RegistrarNotRegistered = "Not Registered"
	RegistrarInternational = "International Registrar"
	RegistrarPrivate       = "Unknown / Private"
	RegistrarAccredited    = "NiRA Accredited Registrar"
	RegistrarNiRA          = "NiRA Registry (.ng)"
)

// Detail messages, in the order rules append them.
const (
	DetailAnchorVerified   = "Verified against offline trust cache"
	DetailAnchorSkipped    = "Live checks skipped: domain is a trust anchor"
	DetailNXDomain         = "NXDOMAIN: domain does not resolve and is likely unregistered"
	DetailNotSovereign     = "Non-Nigerian domain (outside .ng)"
	DetailNoSovereignty    = "Data sovereignty is not guaranteed"
	DetailOutsideSovereign = "DNSSEC passed, but the domain is outside Nigerian sovereignty"
	DetailPhishingPattern  = "Matches known phishing pattern"
	DetailValidDomain      = "Valid .ng domain"
	DetailDNSSECVerified   = "DNSSEC signature verified"
	DetailValidFormat      = "Valid .ng domain format"
	DetailDNSSECMissing    = "Missing DNSSEC signature"
	DetailCheckUnavailable = "DNSSEC check unavailable (offline or resolver unreachable)"
)

// Signals are the independent inputs to the decision table.
type Signals struct {
	Domain    string
	Anchored  bool
	Sovereign bool
	Keywords  []string
	Outcome   Outcome
}

// Compose applies the decision table top to bottom; the first matching row
// wins. It is pure and total over Signals.
func Compose(s Signals) model.ScanResult {
	res := model.ScanResult{
		Domain: s.Domain,
		DNSSEC: s.Outcome == OutcomeAuthenticated,
	}

	switch {
	case s.Anchored:
		res.Status = model.StatusSafe
		res.IsOfflineVerified = true
		res.DNSSEC = true
		res.Registrar = RegistrarAnchor
		res.Details = []string{DetailAnchorVerified, DetailAnchorSkipped}

	case s.Outcome == OutcomeNonExistent:
		res.Status = model.StatusCaution
		res.Registrar = RegistrarNotRegistered
		res.Details = []string{DetailNXDomain}

	case !s.Sovereign:
		res.Status = model.StatusCaution
		res.Registrar = RegistrarInternational
		res.Details = []string{DetailNotSovereign, DetailNoSovereignty}
		if s.Outcome == OutcomeAuthenticated {
			res.Details = append(res.Details, DetailOutsideSovereign)
		}

	case len(s.Keywords) > 0:
		res.Status = model.StatusUnsafe
		res.Registrar = RegistrarPrivate
		res.Details = []string{
			fmt.Sprintf("Suspicious keyword detected: %s", strings.Join(s.Keywords, ", ")),
			DetailPhishingPattern,
		}

	case s.Outcome == OutcomeAuthenticated:
		res.Status = model.StatusSafe
		res.Registrar = RegistrarAccredited
		res.Details = []string{DetailValidDomain, DetailDNSSECVerified}

	case s.Outcome == OutcomeCheckedAbsent:
		res.Status = model.StatusCaution
		res.Registrar = RegistrarNiRA
		res.Details = []string{DetailValidFormat, DetailDNSSECMissing}

	default:
		res.Status = model.StatusSafe
		res.Registrar = RegistrarNiRA
		res.Details = []string{DetailValidFormat, DetailCheckUnavailable}
	}

	return res
}
