package engine

import (
	"testing"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/core"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		raw      float64
		k        float64
		expected float64
	}{
		{0, 1.5, 0},
		{-1, 1.5, 0},
		{1.5, 1.5, 0.5},
		{4.5, 1.5, 0.75},
		{0.5, 0.5, 0.5},
	}

	for _, tc := range testCases {
		result := normalize(tc.raw, tc.k)
		if !within(result, tc.expected, 1e-12) {
			t.Errorf("normalize(%v, %v) = %v, expected %v", tc.raw, tc.k, result, tc.expected)
		}
	}

	// Strictly increasing, asymptotically below one.
	prev := 0.0
	for _, raw := range []float64{0.1, 1, 10, 100, 1e6} {
		s := normalize(raw, 1.5)
		if s <= prev || s >= 1 {
			t.Errorf("normalize(%v, 1.5) = %v, expected strictly increasing and below 1", raw, s)
		}
		prev = s
	}
}

func TestClassifyCategoryBoundaries(t *testing.T) {
	c := NewClassifier(catalog.Builtin(), DefaultParams())

	// With k=1.5, raw scores 0.375, 1.0 and 3.5 normalize to exactly the
	// 0.2, 0.4 and 0.7 cut points; the bounds are closed.
	testCases := []struct {
		raw      float64
		expected core.RiskCategory
	}{
		{0, core.CategorySafe},
		{0.374, core.CategorySafe},
		{0.375, core.CategoryLowRisk},
		{0.999, core.CategoryLowRisk},
		{1.0, core.CategoryMediumRisk},
		{3.49, core.CategoryMediumRisk},
		{3.5, core.CategoryHighRisk},
		{100, core.CategoryHighRisk},
	}

	for _, tc := range testCases {
		_, category, _ := c.Classify(tc.raw)
		if category != tc.expected {
			t.Errorf("Classify(%v) category = %q, expected %q", tc.raw, category, tc.expected)
		}
	}
}

func TestClassifySpamCategories(t *testing.T) {
	c := NewClassifier(catalog.Builtin(), DefaultParams())

	testCases := []struct {
		raw  float64
		spam bool
	}{
		{0, false},
		{0.5, false},
		{1.0, true},
		{3.5, true},
	}

	for _, tc := range testCases {
		_, category, _ := c.Classify(tc.raw)
		if category.Spam() != tc.spam {
			t.Errorf("Classify(%v) spam = %t, expected %t", tc.raw, category.Spam(), tc.spam)
		}
	}
}

func TestConfidence(t *testing.T) {
	cat := catalog.Builtin()
	c := NewClassifier(cat, DefaultParams())

	// Zero raw score is a fully confident safe verdict.
	if _, _, conf := c.Classify(0); conf != 1 {
		t.Errorf("Classify(0) confidence = %v, expected 1", conf)
	}

	// Confidence collapses as the score approaches a category boundary.
	if _, _, conf := c.Classify(0.374); conf >= 0.05 {
		t.Errorf("confidence near boundary = %v, expected near 0", conf)
	}

	// Mid-band scores peak at the 0.95 ceiling. raw = k*s/(1-s) puts the
	// normalized score at s.
	midLow := 1.5 * 0.3 / 0.7
	if _, _, conf := c.Classify(midLow); !within(conf, 0.95, 1e-6) {
		t.Errorf("mid low band confidence = %v, expected 0.95", conf)
	}
	midMedium := 1.5 * 0.55 / 0.45
	if _, _, conf := c.Classify(midMedium); !within(conf, 0.95, 1e-6) {
		t.Errorf("mid medium band confidence = %v, expected 0.95", conf)
	}

	// The catalog saturation point anchors full confidence for high risk.
	score, category, conf := c.Classify(cat.MaxRaw(DefaultParams().ScoreCap))
	if category != core.CategoryHighRisk {
		t.Fatalf("saturation category = %q, expected high_risk", category)
	}
	if !within(score, 0.97, 1e-9) {
		t.Errorf("saturation score = %v, expected 0.97", score)
	}
	if !within(conf, 1, 1e-12) {
		t.Errorf("saturation confidence = %v, expected 1", conf)
	}

	// Beyond saturation the ratio exceeds one and is clamped.
	if _, _, conf := c.Classify(1000); conf != 1 {
		t.Errorf("over-saturated confidence = %v, expected clamped to 1", conf)
	}

	// Confidence grows monotonically inside the high band.
	_, _, lower := c.Classify(4)
	_, _, higher := c.Classify(8)
	if higher <= lower {
		t.Errorf("high band confidence not monotone: %v then %v", lower, higher)
	}
}

func TestBandConfidence(t *testing.T) {
	testCases := []struct {
		score    float64
		lo, hi   float64
		expected float64
	}{
		{0.3, 0.2, 0.4, 0.95},
		{0.25, 0.2, 0.4, 0.475},
		{0.2, 0.2, 0.4, 0},
		{0.4, 0.2, 0.4, 0},
		{0.55, 0.4, 0.7, 0.95},
	}

	for _, tc := range testCases {
		result := bandConfidence(tc.score, tc.lo, tc.hi)
		if !within(result, tc.expected, 1e-9) {
			t.Errorf("bandConfidence(%v, %v, %v) = %v, expected %v",
				tc.score, tc.lo, tc.hi, result, tc.expected)
		}
	}

	if bandConfidence(0.5, 0.5, 0.5) != 0 {
		t.Error("degenerate band should yield zero confidence")
	}
}

func TestTinyCatalogConfidence(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
version: tiny
rules:
  - name: only-rule
    category: urgency
    pattern: urgent
    weight: 0.1
    reason: Urgency phrasing
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// The catalog cannot reach the high band on its own, so any high
	// score is treated as fully confident.
	c := NewClassifier(cat, DefaultParams())
	_, category, conf := c.Classify(10)
	if category != core.CategoryHighRisk {
		t.Fatalf("category = %q, expected high_risk", category)
	}
	if conf != 1 {
		t.Errorf("confidence = %v, expected 1 when the catalog cannot saturate", conf)
	}
}
