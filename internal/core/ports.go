package core

import (
	"context"
	"errors"
)

// TextAnalyzer defines the interface for the classification pipeline
type TextAnalyzer interface {
	// Analyze classifies a single text and returns its verdict
	Analyze(ctx context.Context, text string, kind InputKind) (*Analysis, error)
}

// VerdictCache defines the interface for caching classification verdicts.
// Implementations must return ErrCacheMiss (possibly wrapped) from Get
// when no live entry exists for the digest.
type VerdictCache interface {
	// Get retrieves a cached verdict by text digest
	Get(ctx context.Context, digest string) (*VerdictEntry, error)

	// Set stores a verdict entry
	Set(ctx context.Context, entry *VerdictEntry) error

	// Delete removes a verdict entry
	Delete(ctx context.Context, digest string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// ErrCacheMiss is returned by VerdictCache.Get when no live entry exists
var ErrCacheMiss = errors.New("verdict cache miss")

// Frontend defines the interface for a serving surface
type Frontend interface {
	// Start begins accepting requests; it returns once the listener is up
	Start() error

	// Stop gracefully shuts the frontend down
	Stop() error
}
