// Package engine implements the classification pipeline: feature
// extraction, catalog scoring and verdict shaping. The pipeline is a
// single-pass pure function from (text, kind) to a verdict; it holds no
// per-call state and is safe for concurrent use.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/textutil"
)

// Thresholds holds the category cut points on the normalized score
type Thresholds struct {
	Low    float64
	Medium float64
	High   float64
}

// StructuralThresholds holds the trigger points for structural probes
type StructuralThresholds struct {
	CapsRatio       float64
	CapsMinLength   int
	MaxExclamations int
	MaxLinks        int
	MaxNumbers      int
	MaxContacts     int
	ShortTextLength int
	LongTextLength  int
}

// Params collects the tunable scoring policy. Weights live in the
// catalog; everything else a deployment may want to tune lives here.
type Params struct {
	ScoreCap       int
	NormalizationK float64
	MaxReasons     int
	Mitigation     bool
	Thresholds     Thresholds
	Structural     StructuralThresholds
}

// DefaultParams returns the stock scoring policy
func DefaultParams() Params {
	return Params{
		ScoreCap:       3,
		NormalizationK: 1.5,
		MaxReasons:     5,
		Mitigation:     true,
		Thresholds: Thresholds{
			Low:    0.2,
			Medium: 0.4,
			High:   0.7,
		},
		Structural: StructuralThresholds{
			CapsRatio:       0.5,
			CapsMinLength:   20,
			MaxExclamations: 3,
			MaxLinks:        2,
			MaxNumbers:      5,
			MaxContacts:     1,
			ShortTextLength: 10,
			LongTextLength:  1000,
		},
	}
}

// Engine wires the feature extractor, scorer and classifier into the
// core analyzer port
type Engine struct {
	catalog    *catalog.Catalog
	scorer     *Scorer
	classifier *Classifier
	maxReasons int
	logger     *zap.Logger
}

// New creates an engine over an immutable catalog
func New(cat *catalog.Catalog, p Params, logger *zap.Logger) *Engine {
	return &Engine{
		catalog:    cat,
		scorer:     NewScorer(cat, p),
		classifier: NewClassifier(cat, p),
		maxReasons: p.MaxReasons,
		logger:     logger,
	}
}

// Catalog returns the catalog the engine scores against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Analyze classifies a single text. It never fails for present text:
// any string, however degenerate, produces a verdict.
func (e *Engine) Analyze(ctx context.Context, text string, kind core.InputKind) (*core.Analysis, error) {
	features := ExtractFeatures(text)
	canonical := textutil.Canonicalize(text)
	raw, matches := e.scorer.Score(canonical, features, kind)
	score, category, confidence := e.classifier.Classify(raw)

	reasons := make([]string, 0, len(matches))
	for _, m := range matches {
		if e.maxReasons > 0 && len(reasons) >= e.maxReasons {
			break
		}
		reasons = append(reasons, m.Rule.Reason)
	}

	e.logger.Debug("Text analyzed",
		zap.String("kind", string(kind)),
		zap.Float64("raw_score", raw),
		zap.Float64("score", score),
		zap.String("category", string(category)),
		zap.Int("matched_rules", len(matches)))

	return &core.Analysis{
		IsSpam:     category.Spam(),
		Score:      score,
		Confidence: confidence,
		Category:   category,
		Reasons:    reasons,
		Features:   features,
		Kind:       kind,
		AnalyzedAt: time.Now(),
		Source:     core.SourceEngine,
	}, nil
}
