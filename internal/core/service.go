package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckerService is the core service for spam checks. It validates the
// request, consults the verdict cache and falls through to the analyzer.
type CheckerService struct {
	analyzer      TextAnalyzer
	cache         VerdictCache
	logger        *zap.Logger
	cacheEnabled  bool
	cacheTTL      time.Duration
	minTextLength int
	maxTextLength int
}

// NewCheckerService creates a new checker service
func NewCheckerService(
	analyzer TextAnalyzer,
	cache VerdictCache,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	minTextLength int,
	maxTextLength int,
) *CheckerService {
	return &CheckerService{
		analyzer:      analyzer,
		cache:         cache,
		logger:        logger,
		cacheEnabled:  cacheEnabled,
		cacheTTL:      cacheTTL,
		minTextLength: minTextLength,
		maxTextLength: maxTextLength,
	}
}

// Check validates and classifies a single text
func (s *CheckerService) Check(ctx context.Context, text string, typeHint string) (*Analysis, error) {
	kind, err := ParseKind(typeHint)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if err := s.validateLength(text); err != nil {
		return nil, err
	}

	digest := TextDigest(kind, text)

	// Check cache if enabled
	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Verdict cache hit",
				zap.String("digest", shortDigest(digest)),
				zap.String("kind", string(kind)))
			result := entry.Analysis()
			result.ProcessingID = uuid.NewString()
			return result, nil
		}
	}

	result, err := s.analyzer.Analyze(ctx, text, kind)
	if err != nil {
		return nil, err
	}
	result.ProcessingID = uuid.NewString()

	s.logger.Debug("Text classified",
		zap.String("processing_id", result.ProcessingID),
		zap.String("kind", string(kind)),
		zap.Float64("score", result.Score),
		zap.String("category", string(result.Category)),
		zap.Bool("is_spam", result.IsSpam))

	// Update cache with result if enabled
	if s.cacheEnabled && s.cache != nil {
		entry := NewVerdictEntry(result, digest, time.Now().Add(s.cacheTTL))
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update verdict cache", zap.Error(err))
		}
	}

	return result, nil
}

// validateLength enforces the request text bounds. The text is assumed
// to be trimmed already.
func (s *CheckerService) validateLength(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	n := utf8.RuneCountInString(text)
	if s.minTextLength > 0 && n < s.minTextLength {
		return &ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("must be at least %d characters long", s.minTextLength),
		}
	}
	if s.maxTextLength > 0 && n > s.maxTextLength {
		return &ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("must not exceed %d characters", s.maxTextLength),
		}
	}
	return nil
}

// TextDigest derives the cache key for a (kind, text) pair. Only the
// digest ever reaches a cache backend, never the text itself.
func TextDigest(kind InputKind, text string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
