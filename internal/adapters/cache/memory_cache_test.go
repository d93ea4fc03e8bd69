package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/core"
)

func testEntry(digest string, ttl time.Duration) *core.VerdictEntry {
	return &core.VerdictEntry{
		Digest:     digest,
		Kind:       core.KindMessage,
		IsSpam:     true,
		Score:      0.72,
		Confidence: 0.1,
		Category:   core.CategoryHighRisk,
		Reasons:    []string{"Money-offer phrasing"},
		LastSeen:   time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, core.ErrCacheMiss) {
		t.Errorf("Get on empty cache = %v, expected ErrCacheMiss", err)
	}

	entry := testEntry("digest-1", time.Hour)
	if err := c.Set(ctx, entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "digest-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != entry.Score || got.Category != entry.Category || !got.IsSpam {
		t.Errorf("Get = %+v, expected %+v", got, entry)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	expired := testEntry("digest-old", -time.Minute)
	if err := c.Set(ctx, expired); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := c.Get(ctx, "digest-old"); !errors.Is(err, core.ErrCacheMiss) {
		t.Errorf("Get on expired entry = %v, expected ErrCacheMiss", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, testEntry("digest-1", time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "digest-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "digest-1"); !errors.Is(err, core.ErrCacheMiss) {
		t.Errorf("Get after delete = %v, expected ErrCacheMiss", err)
	}

	// Deleting a missing digest is not an error.
	if err := c.Delete(ctx, "never-stored"); err != nil {
		t.Errorf("Delete of missing digest = %v, expected nil", err)
	}
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, testEntry("live", time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, testEntry("dead", -time.Minute)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	c.mu.RLock()
	remaining := len(c.entries)
	c.mu.RUnlock()
	if remaining != 1 {
		t.Errorf("entries after cleanup = %d, expected 1", remaining)
	}

	if _, err := c.Get(ctx, "live"); err != nil {
		t.Errorf("live entry evicted by cleanup: %v", err)
	}
}
