package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/codezworl/spamshield/internal/core"
)

var (
	linkRe   = regexp.MustCompile(`https?://`)
	numberRe = regexp.MustCompile(`\d+`)
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe  = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// ExtractFeatures computes the structural feature set for a text. It is
// a pure function: one pass over the runes plus a few regexp scans, no
// state carried between calls.
func ExtractFeatures(text string) core.FeatureSet {
	f := core.FeatureSet{
		Length:    utf8.RuneCountInString(text),
		WordCount: len(strings.Fields(text)),
	}

	letters, uppers, digits := 0, 0, 0
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			uppers++
			letters++
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
		switch r {
		case '!':
			f.ExclamationCount++
		case '?':
			f.QuestionCount++
		}
	}
	// Ratios are guarded: a text with no letters has upper_ratio 0, an
	// empty text has digit_ratio 0.
	if letters > 0 {
		f.UpperRatio = float64(uppers) / float64(letters)
	}
	if f.Length > 0 {
		f.DigitRatio = float64(digits) / float64(f.Length)
	}

	f.LinkCount = len(linkRe.FindAllStringIndex(text, -1))
	f.NumberCount = len(numberRe.FindAllStringIndex(text, -1))
	f.EmailCount = len(emailRe.FindAllStringIndex(text, -1))
	f.PhoneCount = len(phoneRe.FindAllStringIndex(text, -1))

	return f
}
