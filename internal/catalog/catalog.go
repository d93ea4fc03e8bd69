// Package catalog defines the weighted rule set the scoring engine
// evaluates against submitted text. A catalog is immutable once built:
// it is loaded at process start, validated fatally, and never mutated.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
)

// Category groups rules by the kind of spam indicator they detect
type Category string

const (
	FinancialScam       Category = "financial_scam"
	Urgency             Category = "urgency"
	SuspiciousLink      Category = "suspicious_link"
	PersonalInfoRequest Category = "personal_info_request"
	EmailSpamPattern    Category = "email_spam_pattern"
	Structural          Category = "structural"
)

// categoryRank fixes the evaluation and presentation order of categories
var categoryRank = map[Category]int{
	FinancialScam:       0,
	Urgency:             1,
	SuspiciousLink:      2,
	PersonalInfoRequest: 3,
	EmailSpamPattern:    4,
	Structural:          5,
}

// Valid reports whether c is a known rule category
func (c Category) Valid() bool {
	_, ok := categoryRank[c]
	return ok
}

// EmailOnly reports whether rules in this category apply solely to email
func (c Category) EmailOnly() bool {
	return c == EmailSpamPattern
}

// Probe names a structural measurement test a rule can reference instead
// of a pattern. The engine maps each name onto its configured thresholds.
const (
	ProbeAllCaps       = "all_caps"
	ProbeExclamations  = "exclamations"
	ProbeLinkFlood     = "link_flood"
	ProbeDigitFlood    = "digit_flood"
	ProbeShortText     = "short_text"
	ProbeLongText      = "long_text"
	ProbeContactScrape = "contact_scrape"
)

var knownProbes = map[string]bool{
	ProbeAllCaps:       true,
	ProbeExclamations:  true,
	ProbeLinkFlood:     true,
	ProbeDigitFlood:    true,
	ProbeShortText:     true,
	ProbeLongText:      true,
	ProbeContactScrape: true,
}

// KnownProbe reports whether name is a recognized structural probe
func KnownProbe(name string) bool {
	return knownProbes[name]
}

// Rule is a single weighted spam indicator. Exactly one of Pattern and
// Probe is set: pattern rules count case-insensitive regexp occurrences
// in the text, probe rules test a structural threshold and fire at most
// once.
type Rule struct {
	Name     string
	Category Category
	Pattern  string
	Probe    string
	Weight   float64
	Reason   string

	re *regexp.Regexp
}

// IsProbe reports whether the rule tests a structural probe
func (r *Rule) IsProbe() bool {
	return r.Probe != ""
}

// Regexp returns the compiled pattern, nil for probe rules
func (r *Rule) Regexp() *regexp.Regexp {
	return r.re
}

// Mitigation is a legitimate-phrasing pattern whose occurrences damp the
// raw spam score before normalization
type Mitigation struct {
	Name    string
	Pattern string
	Damp    float64

	re *regexp.Regexp
}

// Regexp returns the compiled mitigation pattern
func (m *Mitigation) Regexp() *regexp.Regexp {
	return m.re
}

// Catalog is an immutable, ordered rule set plus its mitigation list
type Catalog struct {
	version     string
	rules       []Rule
	mitigations []Mitigation
}

// Version returns the catalog version string
func (c *Catalog) Version() string {
	return c.version
}

// Rules returns the rules ordered by category, then definition order.
// The returned slice must not be modified.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// Mitigations returns the mitigation patterns in definition order
func (c *Catalog) Mitigations() []Mitigation {
	return c.mitigations
}

// Len returns the number of rules
func (c *Catalog) Len() int {
	return len(c.rules)
}

// MaxRaw returns the largest raw score the catalog can produce: every
// pattern rule at the occurrence cap plus every probe fired once.
func (c *Catalog) MaxRaw(cap int) float64 {
	var max float64
	for i := range c.rules {
		if c.rules[i].IsProbe() {
			max += c.rules[i].Weight
		} else {
			max += c.rules[i].Weight * float64(cap)
		}
	}
	return max
}

// build compiles and validates a catalog from raw definitions. Any
// invalid rule aborts the whole load; a partially usable catalog is
// worse than no catalog.
func build(version string, rules []RuleSpec, mitigations []MitigationSpec) (*Catalog, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("catalog contains no rules")
	}

	seen := make(map[string]bool, len(rules))
	compiled := make([]Rule, 0, len(rules))
	for i, spec := range rules {
		rule, err := compileRule(spec)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, spec.Name, err)
		}
		if seen[rule.Name] {
			return nil, fmt.Errorf("rule %d (%q): duplicate rule name", i, spec.Name)
		}
		seen[rule.Name] = true
		compiled = append(compiled, rule)
	}

	// Category order first, definition order within a category
	sort.SliceStable(compiled, func(i, j int) bool {
		return categoryRank[compiled[i].Category] < categoryRank[compiled[j].Category]
	})

	damps := make([]Mitigation, 0, len(mitigations))
	for i, spec := range mitigations {
		m, err := compileMitigation(spec)
		if err != nil {
			return nil, fmt.Errorf("mitigation %d (%q): %w", i, spec.Name, err)
		}
		damps = append(damps, m)
	}

	return &Catalog{version: version, rules: compiled, mitigations: damps}, nil
}

func compileRule(spec RuleSpec) (Rule, error) {
	if spec.Name == "" {
		return Rule{}, fmt.Errorf("rule name is required")
	}
	if !Category(spec.Category).Valid() {
		return Rule{}, fmt.Errorf("unknown category %q", spec.Category)
	}
	if spec.Weight <= 0 {
		return Rule{}, fmt.Errorf("weight must be positive, got %g", spec.Weight)
	}
	if spec.Reason == "" {
		return Rule{}, fmt.Errorf("reason text is required")
	}

	rule := Rule{
		Name:     spec.Name,
		Category: Category(spec.Category),
		Pattern:  spec.Pattern,
		Probe:    spec.Probe,
		Weight:   spec.Weight,
		Reason:   spec.Reason,
	}

	switch {
	case spec.Pattern != "" && spec.Probe != "":
		return Rule{}, fmt.Errorf("pattern and probe are mutually exclusive")
	case spec.Pattern != "":
		re, err := regexp.Compile("(?i)" + spec.Pattern)
		if err != nil {
			return Rule{}, fmt.Errorf("invalid pattern: %w", err)
		}
		rule.re = re
	case spec.Probe != "":
		if !KnownProbe(spec.Probe) {
			return Rule{}, fmt.Errorf("unknown probe %q", spec.Probe)
		}
	default:
		return Rule{}, fmt.Errorf("either pattern or probe is required")
	}

	return rule, nil
}

func compileMitigation(spec MitigationSpec) (Mitigation, error) {
	if spec.Name == "" {
		return Mitigation{}, fmt.Errorf("mitigation name is required")
	}
	if spec.Pattern == "" {
		return Mitigation{}, fmt.Errorf("pattern is required")
	}
	if spec.Damp <= 0 {
		return Mitigation{}, fmt.Errorf("damp must be positive, got %g", spec.Damp)
	}
	re, err := regexp.Compile("(?i)" + spec.Pattern)
	if err != nil {
		return Mitigation{}, fmt.Errorf("invalid pattern: %w", err)
	}
	return Mitigation{Name: spec.Name, Pattern: spec.Pattern, Damp: spec.Damp, re: re}, nil
}
