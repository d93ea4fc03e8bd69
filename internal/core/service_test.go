package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/core"
)

// stubAnalyzer records calls and returns a canned verdict.
type stubAnalyzer struct {
	result   *core.Analysis
	err      error
	calls    int
	lastText string
	lastKind core.InputKind
}

func (a *stubAnalyzer) Analyze(_ context.Context, text string, kind core.InputKind) (*core.Analysis, error) {
	a.calls++
	a.lastText = text
	a.lastKind = kind
	if a.err != nil {
		return nil, a.err
	}
	res := *a.result
	return &res, nil
}

// stubCache is a map-backed VerdictCache with injectable failures.
type stubCache struct {
	entries map[string]*core.VerdictEntry
	sets    int
	setErr  error
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*core.VerdictEntry)}
}

func (c *stubCache) Get(_ context.Context, digest string) (*core.VerdictEntry, error) {
	if e, ok := c.entries[digest]; ok {
		return e, nil
	}
	return nil, core.ErrCacheMiss
}

func (c *stubCache) Set(_ context.Context, entry *core.VerdictEntry) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[entry.Digest] = entry
	c.sets++
	return nil
}

func (c *stubCache) Delete(_ context.Context, digest string) error {
	delete(c.entries, digest)
	return nil
}

func (c *stubCache) Cleanup(_ context.Context) error {
	return nil
}

func spamVerdict() *core.Analysis {
	return &core.Analysis{
		IsSpam:     true,
		Score:      0.72,
		Confidence: 0.1,
		Category:   core.CategoryHighRisk,
		Reasons:    []string{"Money-offer phrasing"},
		Features:   core.FeatureSet{Length: 13, WordCount: 3},
		Kind:       core.KindMessage,
		AnalyzedAt: time.Now(),
		Source:     core.SourceEngine,
	}
}

func newService(analyzer core.TextAnalyzer, cache core.VerdictCache, enabled bool) *core.CheckerService {
	return core.NewCheckerService(analyzer, cache, zap.NewNop(), enabled, time.Hour, 1, 100)
}

func TestCheckValidation(t *testing.T) {
	testCases := []struct {
		name string
		text string
		kind string
	}{
		{"empty text", "", "message"},
		{"whitespace only", "   \n\t ", "message"},
		{"unknown kind", "some text", "pigeon"},
		{"text too long", string(make([]byte, 200)), "message"},
	}

	for _, tc := range testCases {
		analyzer := &stubAnalyzer{result: spamVerdict()}
		svc := newService(analyzer, nil, false)

		_, err := svc.Check(context.Background(), tc.text, tc.kind)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !core.IsValidation(err) {
			t.Errorf("%s: error %v is not a validation error", tc.name, err)
		}
		if analyzer.calls != 0 {
			t.Errorf("%s: analyzer called %d times, expected 0", tc.name, analyzer.calls)
		}
	}
}

func TestCheckMinLength(t *testing.T) {
	analyzer := &stubAnalyzer{result: spamVerdict()}
	svc := core.NewCheckerService(analyzer, nil, zap.NewNop(), false, 0, 5, 100)

	if _, err := svc.Check(context.Background(), "hi", "message"); err == nil || !core.IsValidation(err) {
		t.Errorf("expected validation error for short text, got %v", err)
	}
	if _, err := svc.Check(context.Background(), "hello", "message"); err != nil {
		t.Errorf("five characters should pass the minimum, got %v", err)
	}
}

func TestCheckEmptyTextError(t *testing.T) {
	svc := newService(&stubAnalyzer{result: spamVerdict()}, nil, false)

	_, err := svc.Check(context.Background(), "  ", "message")
	if !errors.Is(err, core.ErrEmptyText) {
		t.Errorf("error = %v, expected ErrEmptyText", err)
	}
}

func TestCheckTrimsAndResolvesKind(t *testing.T) {
	analyzer := &stubAnalyzer{result: spamVerdict()}
	svc := newService(analyzer, nil, false)

	res, err := svc.Check(context.Background(), "  free money \n", "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if analyzer.lastText != "free money" {
		t.Errorf("analyzer text = %q, expected trimmed %q", analyzer.lastText, "free money")
	}
	if analyzer.lastKind != core.KindMessage {
		t.Errorf("analyzer kind = %q, expected default %q", analyzer.lastKind, core.KindMessage)
	}
	if res.ProcessingID == "" {
		t.Error("ProcessingID not assigned")
	}

	if _, err := svc.Check(context.Background(), "free money", "email"); err != nil {
		t.Fatalf("Check email: %v", err)
	}
	if analyzer.lastKind != core.KindEmail {
		t.Errorf("analyzer kind = %q, expected %q", analyzer.lastKind, core.KindEmail)
	}
}

func TestCheckCacheMissThenHit(t *testing.T) {
	analyzer := &stubAnalyzer{result: spamVerdict()}
	cache := newStubCache()
	svc := newService(analyzer, cache, true)

	first, err := svc.Check(context.Background(), "free money", "message")
	if err != nil {
		t.Fatalf("first Check: %v", err)
	}
	if analyzer.calls != 1 {
		t.Fatalf("analyzer calls = %d, expected 1", analyzer.calls)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, expected 1", cache.sets)
	}
	digest := core.TextDigest(core.KindMessage, "free money")
	if _, ok := cache.entries[digest]; !ok {
		t.Fatal("verdict not stored under the text digest")
	}

	second, err := svc.Check(context.Background(), "free money", "message")
	if err != nil {
		t.Fatalf("second Check: %v", err)
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer calls = %d, expected the hit to skip analysis", analyzer.calls)
	}
	if second.Source != core.SourceCache {
		t.Errorf("Source = %q, expected %q", second.Source, core.SourceCache)
	}
	if second.Score != first.Score || second.Category != first.Category || second.IsSpam != first.IsSpam {
		t.Errorf("cached verdict differs: %+v vs %+v", second, first)
	}
	if second.ProcessingID == "" || second.ProcessingID == first.ProcessingID {
		t.Error("cache hit should carry a fresh processing id")
	}
}

func TestCheckCacheDisabled(t *testing.T) {
	analyzer := &stubAnalyzer{result: spamVerdict()}
	cache := newStubCache()
	svc := newService(analyzer, cache, false)

	for i := 0; i < 2; i++ {
		if _, err := svc.Check(context.Background(), "free money", "message"); err != nil {
			t.Fatalf("Check: %v", err)
		}
	}
	if analyzer.calls != 2 {
		t.Errorf("analyzer calls = %d, expected 2 with cache disabled", analyzer.calls)
	}
	if cache.sets != 0 {
		t.Errorf("cache sets = %d, expected 0", cache.sets)
	}
}

func TestCheckCacheKeyedByKind(t *testing.T) {
	analyzer := &stubAnalyzer{result: spamVerdict()}
	cache := newStubCache()
	svc := newService(analyzer, cache, true)

	if _, err := svc.Check(context.Background(), "free money", "message"); err != nil {
		t.Fatalf("Check message: %v", err)
	}
	if _, err := svc.Check(context.Background(), "free money", "email"); err != nil {
		t.Fatalf("Check email: %v", err)
	}
	if analyzer.calls != 2 {
		t.Errorf("analyzer calls = %d, expected one per kind", analyzer.calls)
	}
	if len(cache.entries) != 2 {
		t.Errorf("cache entries = %d, expected separate entries per kind", len(cache.entries))
	}
}

func TestCheckAnalyzerError(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("analyzer broken")}
	cache := newStubCache()
	svc := newService(analyzer, cache, true)

	if _, err := svc.Check(context.Background(), "free money", "message"); err == nil {
		t.Fatal("expected analyzer error to surface")
	}
	if cache.sets != 0 {
		t.Errorf("cache sets = %d, expected no caching of failures", cache.sets)
	}
}

func TestCheckCacheSetFailureIgnored(t *testing.T) {
	analyzer := &stubAnalyzer{result: spamVerdict()}
	cache := newStubCache()
	cache.setErr = errors.New("backend down")
	svc := newService(analyzer, cache, true)

	res, err := svc.Check(context.Background(), "free money", "message")
	if err != nil {
		t.Fatalf("Check should succeed despite cache failure, got %v", err)
	}
	if !res.IsSpam {
		t.Error("verdict lost on cache failure")
	}
}

func TestTextDigest(t *testing.T) {
	a := core.TextDigest(core.KindMessage, "free money")
	b := core.TextDigest(core.KindMessage, "free money")
	if a != b {
		t.Error("digest not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, expected 64 hex chars", len(a))
	}
	if core.TextDigest(core.KindEmail, "free money") == a {
		t.Error("digest should separate kinds")
	}
	if core.TextDigest(core.KindMessage, "free monet") == a {
		t.Error("digest should separate texts")
	}
}

func TestVerdictEntryRoundTrip(t *testing.T) {
	orig := spamVerdict()
	expires := time.Now().Add(time.Hour)
	entry := core.NewVerdictEntry(orig, "digest-1", expires)

	if entry.Digest != "digest-1" || !entry.ExpiresAt.Equal(expires) {
		t.Errorf("entry = %+v, expected digest and expiry preserved", entry)
	}

	back := entry.Analysis()
	if back.Source != core.SourceCache {
		t.Errorf("Source = %q, expected %q", back.Source, core.SourceCache)
	}
	if back.IsSpam != orig.IsSpam || back.Score != orig.Score || back.Category != orig.Category {
		t.Errorf("reconstructed verdict %+v differs from %+v", back, orig)
	}
	if len(back.Reasons) != len(orig.Reasons) {
		t.Fatalf("Reasons = %v, expected %v", back.Reasons, orig.Reasons)
	}

	// The entry owns its reason list; mutating it must not leak back.
	entry.Reasons[0] = "changed"
	if orig.Reasons[0] == "changed" {
		t.Error("entry shares the reasons slice with the source analysis")
	}
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		hint     string
		expected core.InputKind
		ok       bool
	}{
		{"", core.KindMessage, true},
		{"message", core.KindMessage, true},
		{"email", core.KindEmail, true},
		{"EMAIL", core.KindEmail, true},
		{" message ", core.KindMessage, true},
		{"pigeon", "", false},
		{"sms", "", false},
	}

	for _, tc := range testCases {
		kind, err := core.ParseKind(tc.hint)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseKind(%q) error: %v", tc.hint, err)
			} else if kind != tc.expected {
				t.Errorf("ParseKind(%q) = %q, expected %q", tc.hint, kind, tc.expected)
			}
		} else if err == nil || !core.IsValidation(err) {
			t.Errorf("ParseKind(%q) = (%q, %v), expected validation error", tc.hint, kind, err)
		}
	}
}
