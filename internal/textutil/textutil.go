// Package textutil prepares raw text for the scoring pipeline.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Canonicalize folds width variants, applies compatibility normalization
// and strips invisible format runes, so pattern matching sees the text a
// reader sees. Full-width letters, ligatures and zero-width joiners are
// common keyword-obfuscation tricks.
func Canonicalize(s string) string {
	s = width.Fold.String(s)
	s = norm.NFKC.String(s)
	if !strings.ContainsFunc(s, isFormatRune) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isFormatRune(r) {
			return -1
		}
		return r
	}, s)
}

func isFormatRune(r rune) bool {
	return unicode.In(r, unicode.Cf)
}

// SanitizeUTF8 drops invalid UTF-8 sequences from a string
func SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		result = append(result, r)
	}
	return string(result)
}

// Processor bounds and sanitizes text arriving from untrusted transports
// before it is handed to the checker
type Processor struct {
	logger  *zap.Logger
	maxSize int
}

// NewProcessor creates a new text processor. maxSize bounds the byte
// length of processed text; zero or negative means unlimited.
func NewProcessor(logger *zap.Logger, maxSize int) *Processor {
	return &Processor{logger: logger, maxSize: maxSize}
}

// Prepare sanitizes and truncates text in one operation
func (p *Processor) Prepare(text string) string {
	return p.Truncate(SanitizeUTF8(text))
}

// Truncate cuts text to the configured maximum size on a rune boundary
func (p *Processor) Truncate(text string) string {
	if p.maxSize <= 0 || len(text) <= p.maxSize {
		return text
	}

	truncated := text[:p.maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	p.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", p.maxSize))

	return truncated
}
