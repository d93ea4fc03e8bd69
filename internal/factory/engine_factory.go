package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/engine"
)

// EngineFactory creates scoring engines based on configuration
type EngineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config, logger *zap.Logger) *EngineFactory {
	return &EngineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEngine creates a scoring engine over the given catalog
func (f *EngineFactory) CreateEngine(cat *catalog.Catalog) (*engine.Engine, error) {
	params, err := engineParams(f.cfg.GetEngine())
	if err != nil {
		return nil, err
	}
	return engine.New(cat, params, f.logger), nil
}

// engineParams maps the engine configuration onto scoring parameters,
// rejecting values the classifier cannot work with
func engineParams(ec config.EngineConfig) (engine.Params, error) {
	t := ec.Thresholds
	if !(0 < t.Low && t.Low < t.Medium && t.Medium < t.High && t.High < 1) {
		return engine.Params{}, fmt.Errorf(
			"invalid thresholds: need 0 < low < medium < high < 1, got %g/%g/%g",
			t.Low, t.Medium, t.High)
	}
	if ec.ScoreCap < 1 {
		return engine.Params{}, fmt.Errorf("invalid score cap: %d", ec.ScoreCap)
	}
	if ec.NormalizationK <= 0 {
		return engine.Params{}, fmt.Errorf("invalid normalization constant: %g", ec.NormalizationK)
	}

	return engine.Params{
		ScoreCap:       ec.ScoreCap,
		NormalizationK: ec.NormalizationK,
		MaxReasons:     ec.MaxReasons,
		Mitigation:     ec.Mitigation,
		Thresholds: engine.Thresholds{
			Low:    t.Low,
			Medium: t.Medium,
			High:   t.High,
		},
		Structural: engine.StructuralThresholds{
			CapsRatio:       ec.Structural.CapsRatio,
			CapsMinLength:   ec.Structural.CapsMinLength,
			MaxExclamations: ec.Structural.MaxExclamations,
			MaxLinks:        ec.Structural.MaxLinks,
			MaxNumbers:      ec.Structural.MaxNumbers,
			MaxContacts:     ec.Structural.MaxContacts,
			ShortTextLength: ec.Structural.ShortTextLength,
			LongTextLength:  ec.Structural.LongTextLength,
		},
	}, nil
}
