package factory

import (
	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/textutil"
)

// TextProcessorFactory creates text processors
type TextProcessorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTextProcessorFactory creates a new text processor factory
func NewTextProcessorFactory(cfg *config.Config, logger *zap.Logger) *TextProcessorFactory {
	return &TextProcessorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a text processor bounded to the API text
// limit, so prepared text always passes the checker's length validation
func (f *TextProcessorFactory) CreateTextProcessor() *textutil.Processor {
	return textutil.NewProcessor(f.logger, f.cfg.GetInt("api.max_text_length"))
}
