package scanner

import (
	"slices"
	"testing"

	"sentinel/internal/model"
)

func TestCompose_DecisionTable(t *testing.T) {
	tests := []struct {
		name          string
		sig           Signals
		wantStatus    model.Status
		wantRegistrar string
		wantDNSSEC    bool
		wantOffline   bool
		wantDetail    string
	}{
		{
			name:          "Anchor hit wins over everything",
			sig:           Signals{Domain: "firs.gov.ng", Anchored: true, Outcome: OutcomeNonExistent, Keywords: []string{"free"}},
			wantStatus:    model.StatusSafe,
			wantRegistrar: RegistrarAnchor,
			wantDNSSEC:    true,
			wantOffline:   true,
			wantDetail:    DetailAnchorVerified,
		},
		{
			name:          "NXDOMAIN before sovereignty",
			sig:           Signals{Domain: "ghost.ng", Sovereign: true, Outcome: OutcomeNonExistent},
			wantStatus:    model.StatusCaution,
			wantRegistrar: RegistrarNotRegistered,
			wantDetail:    DetailNXDomain,
		},
		{
			name:          "NXDOMAIN before suspicion",
			sig:           Signals{Domain: "free.ng", Sovereign: true, Keywords: []string{"free"}, Outcome: OutcomeNonExistent},
			wantStatus:    model.StatusCaution,
			wantRegistrar: RegistrarNotRegistered,
			wantDetail:    DetailNXDomain,
		},
		{
			name:          "Foreign and authenticated",
			sig:           Signals{Domain: "example.com", Outcome: OutcomeAuthenticated},
			wantStatus:    model.StatusCaution,
			wantRegistrar: RegistrarInternational,
			wantDNSSEC:    true,
			wantDetail:    DetailOutsideSovereign,
		},
		{
			name:          "Foreign and suspicious stays caution",
			sig:           Signals{Domain: "free-gift.com", Keywords: []string{"free", "gift"}, Outcome: OutcomeCheckedAbsent},
			wantStatus:    model.StatusCaution,
			wantRegistrar: RegistrarInternational,
			wantDetail:    DetailNotSovereign,
		},
		{
			name:          "Sovereign and suspicious",
			sig:           Signals{Domain: "bonus.ng", Sovereign: true, Keywords: []string{"bonus"}, Outcome: OutcomeAuthenticated},
			wantStatus:    model.StatusUnsafe,
			wantRegistrar: RegistrarPrivate,
			wantDNSSEC:    true,
			wantDetail:    DetailPhishingPattern,
		},
		{
			name:          "Sovereign and authenticated",
			sig:           Signals{Domain: "shop.ng", Sovereign: true, Outcome: OutcomeAuthenticated},
			wantStatus:    model.StatusSafe,
			wantRegistrar: RegistrarAccredited,
			wantDNSSEC:    true,
			wantDetail:    DetailDNSSECVerified,
		},
		{
			name:          "Sovereign and checked absent",
			sig:           Signals{Domain: "shop.ng", Sovereign: true, Outcome: OutcomeCheckedAbsent},
			wantStatus:    model.StatusCaution,
			wantRegistrar: RegistrarNiRA,
			wantDetail:    DetailDNSSECMissing,
		},
		{
			name:          "Sovereign and unavailable",
			sig:           Signals{Domain: "shop.ng", Sovereign: true, Outcome: OutcomeUnavailable},
			wantStatus:    model.StatusSafe,
			wantRegistrar: RegistrarNiRA,
			wantDetail:    DetailCheckUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compose(tt.sig)
			if res.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", res.Status, tt.wantStatus)
			}
			if res.Registrar != tt.wantRegistrar {
				t.Errorf("Registrar = %q, want %q", res.Registrar, tt.wantRegistrar)
			}
			if res.DNSSEC != tt.wantDNSSEC {
				t.Errorf("DNSSEC = %v, want %v", res.DNSSEC, tt.wantDNSSEC)
			}
			if res.IsOfflineVerified != tt.wantOffline {
				t.Errorf("IsOfflineVerified = %v, want %v", res.IsOfflineVerified, tt.wantOffline)
			}
			if !slices.Contains(res.Details, tt.wantDetail) {
				t.Errorf("Details %v missing %q", res.Details, tt.wantDetail)
			}
			if res.Domain != tt.sig.Domain {
				t.Errorf("Domain = %q, want %q", res.Domain, tt.sig.Domain)
			}
		})
	}
}

func TestCompose_ForeignWithoutAuthenticationHasNoDNSSECNote(t *testing.T) {
	for _, o := range []Outcome{OutcomeUnavailable, OutcomeCheckedAbsent} {
		res := Compose(Signals{Domain: "example.com", Outcome: o})
		if slices.Contains(res.Details, DetailOutsideSovereign) {
			t.Errorf("Outcome %s should not add the DNSSEC note", o)
		}
	}
}

func TestCompose_SuspiciousDetailListsKeywords(t *testing.T) {
	res := Compose(Signals{Domain: "free-gift.ng", Sovereign: true, Keywords: []string{"free", "gift"}})
	want := "Suspicious keyword detected: free, gift"
	if res.Details[0] != want {
		t.Errorf("Details[0] = %q, want %q", res.Details[0], want)
	}
}

func TestCompose_ExhaustiveNeverUnknown(t *testing.T) {
	outcomes := []Outcome{OutcomeUnavailable, OutcomeAuthenticated, OutcomeCheckedAbsent, OutcomeNonExistent}
	for _, anchored := range []bool{true, false} {
		for _, sovereign := range []bool{true, false} {
			for _, suspicious := range []bool{true, false} {
				for _, o := range outcomes {
					sig := Signals{Domain: "x.ng", Anchored: anchored, Sovereign: sovereign, Outcome: o}
					if suspicious {
						sig.Keywords = []string{"free"}
					}
					res := Compose(sig)
					switch res.Status {
					case model.StatusSafe, model.StatusCaution, model.StatusUnsafe:
					default:
						t.Errorf("Unexpected status %q for %+v", res.Status, sig)
					}
					if len(res.Details) == 0 || res.Registrar == "" {
						t.Errorf("Incomplete result for %+v: %+v", sig, res)
					}
				}
			}
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeUnavailable:   "unavailable",
		OutcomeAuthenticated: "authenticated",
		OutcomeCheckedAbsent: "checked_absent",
		OutcomeNonExistent:   "non_existent",
		Outcome(42):          "unavailable",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
