package engine

import (
	"math"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/core"
)

// Classifier maps raw scores onto the bounded verdict: normalized spam
// score, risk category and confidence
type Classifier struct {
	k          float64
	thresholds Thresholds
	maxScore   float64
}

// NewClassifier derives the classifier for a catalog. The catalog's
// saturation point (every rule fully triggered) anchors the top of the
// confidence scale.
func NewClassifier(cat *catalog.Catalog, p Params) *Classifier {
	return &Classifier{
		k:          p.NormalizationK,
		thresholds: p.Thresholds,
		maxScore:   normalize(cat.MaxRaw(p.ScoreCap), p.NormalizationK),
	}
}

// Classify turns a raw score into (score, category, confidence)
func (c *Classifier) Classify(raw float64) (float64, core.RiskCategory, float64) {
	score := normalize(raw, c.k)
	category := c.categorize(score)
	return score, category, c.confidence(score, category)
}

// normalize applies the saturating transform raw/(raw+k): zero iff raw
// is zero, strictly increasing, asymptotically below one
func normalize(raw, k float64) float64 {
	if raw <= 0 {
		return 0
	}
	return raw / (raw + k)
}

func (c *Classifier) categorize(score float64) core.RiskCategory {
	t := c.thresholds
	switch {
	case score >= t.High:
		return core.CategoryHighRisk
	case score >= t.Medium:
		return core.CategoryMediumRisk
	case score >= t.Low:
		return core.CategoryLowRisk
	default:
		return core.CategorySafe
	}
}

// confidence measures how decisively the score sits inside its bucket.
// It reaches 1.0 only for a zero score or for a score at the catalog's
// saturation point, and falls toward zero near every category boundary.
func (c *Classifier) confidence(score float64, category core.RiskCategory) float64 {
	t := c.thresholds
	var conf float64
	switch category {
	case core.CategorySafe:
		if score <= 0 {
			conf = 1
		} else {
			conf = 1 - score/t.Low
		}
	case core.CategoryLowRisk:
		conf = bandConfidence(score, t.Low, t.Medium)
	case core.CategoryMediumRisk:
		conf = bandConfidence(score, t.Medium, t.High)
	default:
		if c.maxScore <= t.High {
			conf = 1
		} else {
			conf = (score - t.High) / (c.maxScore - t.High)
		}
	}
	return clamp01(conf)
}

// bandConfidence peaks mid-band and decays toward both cut points. The
// 0.95 ceiling keeps full confidence reserved for the extremes.
func bandConfidence(score, lo, hi float64) float64 {
	mid := (lo + hi) / 2
	half := (hi - lo) / 2
	if half <= 0 {
		return 0
	}
	return 0.95 * (1 - math.Abs(score-mid)/half)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
