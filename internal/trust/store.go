// Package trust holds the offline trust anchors: domains pre-classified as
// authoritative infrastructure that bypass live checks.
package trust

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultDomains is Nigeria's critical digital infrastructure as shipped with
// the scanner.
var DefaultDomains = []string{
	// Federal ministries and agencies
	"firs.gov.ng",
	"cbn.gov.ng",
	"nimc.gov.ng",
	"immigration.gov.ng",
	"customs.gov.ng",
	"police.gov.ng",
	"jamb.gov.ng",
	"ncdc.gov.ng",
	"cac.gov.ng",
	"statehouse.gov.ng",
	"budgetoffice.gov.ng",

	// State government services
	"lagosstate.gov.ng",
	"fct.gov.ng",

	// Financial and infrastructure
	"remita.net",
	"nipost.gov.ng",
	"nira.org.ng",

	// Education
	"noun.edu.ng",
	"unilag.edu.ng",
	"abu.edu.ng",
}

// Store is an immutable set of canonical domains. It is safe for concurrent
// use because nothing writes to it after New returns.
type Store struct {
	domains map[string]struct{}
}

// New builds a store from the given domains. Entries are trimmed and
// lowercased; an entry carrying a scheme, path, whitespace or no dot is
// rejected.
func New(domains ...string) (*Store, error) {
	s := &Store{domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if err := validate(d); err != nil {
			return nil, err
		}
		s.domains[d] = struct{}{}
	}
	return s, nil
}

// Default returns a store seeded with DefaultDomains.
func Default() *Store {
	s, err := New(DefaultDomains...)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadFile reads one domain per line. Blank lines and lines starting with #
// are ignored, as is anything after an inline #.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trust anchors: %w", err)
	}
	defer func() { _ = f.Close() }()

	var domains []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trust anchors: %w", err)
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("trust anchors file %s is empty", path)
	}
	return New(domains...)
}

// IsTrusted is an exact membership test. No suffix or wildcard matching.
func (s *Store) IsTrusted(domain string) bool {
	_, ok := s.domains[domain]
	return ok
}

// Domains returns the anchors in sorted order.
func (s *Store) Domains() []string {
	out := make([]string, 0, len(s.domains))
	for d := range s.domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of anchors.
func (s *Store) Len() int {
	return len(s.domains)
}

func validate(d string) error {
	switch {
	case d == "":
		return fmt.Errorf("empty trust anchor")
	case strings.Contains(d, "://"):
		return fmt.Errorf("trust anchor %q must not carry a scheme", d)
	case strings.ContainsAny(d, "/?# \t"):
		return fmt.Errorf("trust anchor %q must be a bare host", d)
	case !strings.Contains(d, "."), strings.HasPrefix(d, "."), strings.HasSuffix(d, "."):
		return fmt.Errorf("trust anchor %q is not a fully-qualified domain", d)
	}
	return nil
}
