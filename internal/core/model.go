package core

import (
	"fmt"
	"strings"
	"time"
)

// InputKind identifies the sort of text being classified
type InputKind string

const (
	// KindMessage is free-form short text (chat, SMS, form input)
	KindMessage InputKind = "message"
	// KindEmail is an email body; enables the email-only rule category
	KindEmail InputKind = "email"
)

// ParseKind normalizes a caller-supplied type hint. An empty hint defaults
// to KindMessage; any other unrecognized value is a validation error.
func ParseKind(hint string) (InputKind, error) {
	switch InputKind(strings.ToLower(strings.TrimSpace(hint))) {
	case "", KindMessage:
		return KindMessage, nil
	case KindEmail:
		return KindEmail, nil
	default:
		return "", &ValidationError{
			Field:  "type",
			Reason: fmt.Sprintf("must be %q or %q", KindMessage, KindEmail),
		}
	}
}

// RiskCategory buckets a spam score into a graded verdict
type RiskCategory string

const (
	CategorySafe       RiskCategory = "safe"
	CategoryLowRisk    RiskCategory = "low_risk"
	CategoryMediumRisk RiskCategory = "medium_risk"
	CategoryHighRisk   RiskCategory = "high_risk"
)

// Spam reports whether the category counts as a spam verdict
func (c RiskCategory) Spam() bool {
	return c == CategoryMediumRisk || c == CategoryHighRisk
}

// Analysis sources recorded on served verdicts
const (
	SourceEngine = "engine"
	SourceCache  = "cache"
)

// FeatureSet holds the structural measurements taken from a single text.
// It is computed fresh per call and never shared between requests.
type FeatureSet struct {
	Length           int     `json:"length"`
	WordCount        int     `json:"word_count"`
	UpperRatio       float64 `json:"upper_ratio"`
	DigitRatio       float64 `json:"digit_ratio"`
	LinkCount        int     `json:"link_count"`
	ExclamationCount int     `json:"exclamation_count"`
	QuestionCount    int     `json:"question_count"`
	NumberCount      int     `json:"number_count"`
	EmailCount       int     `json:"email_count"`
	PhoneCount       int     `json:"phone_count"`
}

// Analysis represents the verdict produced for one text
type Analysis struct {
	IsSpam       bool         `json:"is_spam"`
	Score        float64      `json:"score"`
	Confidence   float64      `json:"confidence"`
	Category     RiskCategory `json:"category"`
	Reasons      []string     `json:"reasons"`
	Features     FeatureSet   `json:"features"`
	Kind         InputKind    `json:"kind"`
	AnalyzedAt   time.Time    `json:"analyzed_at"`
	Source       string       `json:"source"`
	ProcessingID string       `json:"processing_id,omitempty"`
}

// VerdictEntry is a cached verdict keyed by text digest
type VerdictEntry struct {
	Digest     string       `json:"digest"`
	Kind       InputKind    `json:"kind"`
	IsSpam     bool         `json:"is_spam"`
	Score      float64      `json:"score"`
	Confidence float64      `json:"confidence"`
	Category   RiskCategory `json:"category"`
	Reasons    []string     `json:"reasons"`
	Features   FeatureSet   `json:"features"`
	LastSeen   time.Time    `json:"last_seen"`
	ExpiresAt  time.Time    `json:"expires_at"`
}

// NewVerdictEntry converts an analysis into a cacheable entry
func NewVerdictEntry(a *Analysis, digest string, expiresAt time.Time) *VerdictEntry {
	return &VerdictEntry{
		Digest:     digest,
		Kind:       a.Kind,
		IsSpam:     a.IsSpam,
		Score:      a.Score,
		Confidence: a.Confidence,
		Category:   a.Category,
		Reasons:    append([]string(nil), a.Reasons...),
		Features:   a.Features,
		LastSeen:   a.AnalyzedAt,
		ExpiresAt:  expiresAt,
	}
}

// Analysis reconstructs the cached verdict as a servable analysis
func (e *VerdictEntry) Analysis() *Analysis {
	return &Analysis{
		IsSpam:     e.IsSpam,
		Score:      e.Score,
		Confidence: e.Confidence,
		Category:   e.Category,
		Reasons:    append([]string(nil), e.Reasons...),
		Features:   e.Features,
		Kind:       e.Kind,
		AnalyzedAt: e.LastSeen,
		Source:     SourceCache,
	}
}
