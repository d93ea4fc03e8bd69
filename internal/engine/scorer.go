package engine

import (
	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/core"
)

// Match records one triggered rule and its capped occurrence count
type Match struct {
	Rule  *catalog.Rule
	Count int
}

// Scorer evaluates the rule catalog against a text and its features,
// producing the unbounded raw score and the ordered match list
type Scorer struct {
	rules       []catalog.Rule
	mitigations []catalog.Mitigation
	cap         int
	mitigation  bool
	structural  StructuralThresholds
}

// NewScorer creates a scorer over an immutable catalog
func NewScorer(cat *catalog.Catalog, p Params) *Scorer {
	return &Scorer{
		rules:       cat.Rules(),
		mitigations: cat.Mitigations(),
		cap:         p.ScoreCap,
		mitigation:  p.Mitigation,
		structural:  p.Structural,
	}
}

// Score evaluates every applicable rule against the canonicalized text.
// Email-only rules are skipped for non-email input. Pattern occurrences
// beyond the cap do not add to the score; probe rules fire at most once.
// Matches come back in catalog order, one entry per triggered rule.
func (s *Scorer) Score(text string, f core.FeatureSet, kind core.InputKind) (float64, []Match) {
	// Pattern rules are counted up front: the short-text probe needs to
	// know whether any keyword matched at all.
	counts := make([]int, len(s.rules))
	patternHits := 0
	for i := range s.rules {
		r := &s.rules[i]
		if r.IsProbe() || s.skipForKind(r, kind) {
			continue
		}
		n := len(r.Regexp().FindAllStringIndex(text, -1))
		counts[i] = n
		patternHits += n
	}

	var raw float64
	var matches []Match
	for i := range s.rules {
		r := &s.rules[i]
		if s.skipForKind(r, kind) {
			continue
		}

		n := counts[i]
		if r.IsProbe() {
			if s.probeFires(r.Probe, f, patternHits) {
				n = 1
			}
		} else if n > s.cap {
			n = s.cap
		}
		if n == 0 {
			continue
		}

		raw += r.Weight * float64(n)
		matches = append(matches, Match{Rule: r, Count: n})
	}

	if s.mitigation {
		raw -= s.dampening(text)
		if raw < 0 {
			raw = 0
		}
	}

	return raw, matches
}

func (s *Scorer) skipForKind(r *catalog.Rule, kind core.InputKind) bool {
	return r.Category.EmailOnly() && kind != core.KindEmail
}

// dampening totals the capped contributions of legitimate-phrasing
// patterns; the caller subtracts it from the raw score
func (s *Scorer) dampening(text string) float64 {
	var damp float64
	for i := range s.mitigations {
		m := &s.mitigations[i]
		n := len(m.Regexp().FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}
		if n > s.cap {
			n = s.cap
		}
		damp += m.Damp * float64(n)
	}
	return damp
}

// probeFires tests one structural probe against the feature thresholds
func (s *Scorer) probeFires(name string, f core.FeatureSet, patternHits int) bool {
	t := s.structural
	switch name {
	case catalog.ProbeAllCaps:
		return f.UpperRatio > t.CapsRatio && f.Length > t.CapsMinLength
	case catalog.ProbeExclamations:
		return f.ExclamationCount > t.MaxExclamations
	case catalog.ProbeLinkFlood:
		return f.LinkCount > t.MaxLinks
	case catalog.ProbeDigitFlood:
		return f.NumberCount > t.MaxNumbers
	case catalog.ProbeShortText:
		// Short alone is not suspicious; short plus spam keywords is.
		return f.Length > 0 && f.Length < t.ShortTextLength && patternHits > 0
	case catalog.ProbeLongText:
		return f.Length > t.LongTextLength
	case catalog.ProbeContactScrape:
		return f.EmailCount+f.PhoneCount > t.MaxContacts
	}
	return false
}
