package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tcoelho/intelpost/internal/search"
)

func testStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"), ttl, nil)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(topic string) *Record {
	return &Record{
		Topic:        topic,
		ResearchType: "company",
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		NewsArticles: []search.NewsArticle{
			{Title: "A", Description: "da", URL: "https://a.com", Source: "Wire"},
		},
		WebResults: []search.WebResult{
			{Title: "Guide", Link: "https://g.com", Snippet: "snippet"},
		},
		Summary:   "summary text",
		Insights:  "insights text",
		KeyFacts:  "facts",
		Sentiment: SentimentPositive,
	}
}

func TestKeyDeterminism(t *testing.T) {
	tests := []struct {
		t1, r1, t2, r2 string
		equal          bool
	}{
		{"Anthropic", "company", "anthropic", "Company", true},
		{"Anthropic", "company", "ANTHROPIC", "COMPANY", true},
		{"Anthropic", "company", "Anthropic", "trend", false},
		{"Anthropic", "company", "OpenAI", "company", false},
	}
	for _, tt := range tests {
		got := Key(tt.t1, tt.r1) == Key(tt.t2, tt.r2)
		if got != tt.equal {
			t.Errorf("Key(%q,%q) == Key(%q,%q): got %v, want %v",
				tt.t1, tt.r1, tt.t2, tt.r2, got, tt.equal)
		}
	}
	// Repeated calls are stable
	if Key("a", "b") != Key("a", "b") {
		t.Error("key derivation is not deterministic")
	}
}

func TestSetGetCaseInsensitive(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	rec := sampleRecord("Anthropic")

	if !s.Set("Anthropic", "company", rec) {
		t.Fatal("set failed")
	}

	got, ok := s.Get("anthropic", "Company")
	if !ok {
		t.Fatal("expected hit for case-variant key")
	}
	if got.Summary != rec.Summary || got.Topic != rec.Topic {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if len(got.NewsArticles) != 1 || got.NewsArticles[0].Title != "A" {
		t.Errorf("news articles not round-tripped: %+v", got.NewsArticles)
	}
}

func TestGetMissing(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	if _, ok := s.Get("nothing", "company"); ok {
		t.Error("expected miss for absent entry")
	}
}

func TestFreshnessBoundary(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	s.clock = func() time.Time { return base }
	if !s.Set("Anthropic", "company", sampleRecord("Anthropic")) {
		t.Fatal("set failed")
	}

	// Just inside the window
	s.clock = func() time.Time { return base.Add(24*time.Hour - time.Second) }
	if _, ok := s.Get("Anthropic", "company"); !ok {
		t.Error("expected hit just inside ttl")
	}

	// Just past the window
	s.clock = func() time.Time { return base.Add(24*time.Hour + time.Second) }
	if _, ok := s.Get("Anthropic", "company"); ok {
		t.Error("expected miss just past ttl")
	}

	// Expired read does not delete the row
	st := s.Stats()
	if st.Total != 1 || st.Expired != 1 || st.Valid != 0 {
		t.Errorf("stats after expiry = %+v, want {1 0 1}", st)
	}
}

func TestExpiredAtTwentyFiveHours(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	s.clock = func() time.Time { return base }
	s.Set("Anthropic", "company", sampleRecord("Anthropic"))

	s.clock = func() time.Time { return base.Add(25 * time.Hour) }
	if _, ok := s.Get("Anthropic", "company"); ok {
		t.Error("expected miss at T+25h with 24h ttl")
	}
	st := s.Stats()
	if st.Expired != 1 {
		t.Errorf("expected entry classified expired, got %+v", st)
	}
}

func TestIdempotentHit(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	s.Set("Anthropic", "company", sampleRecord("Anthropic"))

	first, ok := s.Get("Anthropic", "company")
	if !ok {
		t.Fatal("expected hit")
	}
	for i := 0; i < 3; i++ {
		got, ok := s.Get("Anthropic", "company")
		if !ok {
			t.Fatalf("read %d: expected hit", i)
		}
		if got.Summary != first.Summary || got.Insights != first.Insights ||
			got.Sentiment != first.Sentiment || len(got.NewsArticles) != len(first.NewsArticles) {
			t.Errorf("read %d: payload differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestSetOverwrites(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	s.Set("Anthropic", "company", sampleRecord("Anthropic"))

	updated := sampleRecord("Anthropic")
	updated.Summary = "newer summary"
	s.Set("anthropic", "COMPANY", updated)

	got, ok := s.Get("Anthropic", "company")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Summary != "newer summary" {
		t.Errorf("expected overwrite, got %q", got.Summary)
	}
	if st := s.Stats(); st.Total != 1 {
		t.Errorf("case variants fragmented into %d slots", st.Total)
	}
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	s.Set("Anthropic", "company", sampleRecord("Anthropic"))

	_, err := s.writeDB.Exec(
		"UPDATE research SET payload = ? WHERE key = ?",
		"{not valid json", Key("Anthropic", "company"),
	)
	if err != nil {
		t.Fatalf("corrupting entry: %v", err)
	}

	if _, ok := s.Get("Anthropic", "company"); ok {
		t.Error("expected corrupt entry to read as a miss")
	}

	// Corruption must not break the census or bulk ops
	if st := s.Stats(); st.Total != 1 {
		t.Errorf("stats with corrupt entry = %+v", st)
	}
	if n := s.ClearAll(); n != 1 {
		t.Errorf("clear with corrupt entry removed %d", n)
	}
}

func TestInvalidate(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	s.Set("Anthropic", "company", sampleRecord("Anthropic"))

	if !s.Invalidate("ANTHROPIC", "company") {
		t.Error("expected invalidation of existing entry")
	}
	if _, ok := s.Get("Anthropic", "company"); ok {
		t.Error("expected miss after invalidation")
	}
	if s.Invalidate("Anthropic", "company") {
		t.Error("expected false for absent entry")
	}
}

func TestClearAllAndStats(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	s.Set("Anthropic", "company", sampleRecord("Anthropic"))
	s.Set("OpenAI", "company", sampleRecord("OpenAI"))
	s.Set("Rust", "technology", sampleRecord("Rust"))

	if st := s.Stats(); st.Total != 3 || st.Valid != 3 {
		t.Errorf("stats before clear = %+v", st)
	}

	if n := s.ClearAll(); n != 3 {
		t.Errorf("cleared %d entries, want 3", n)
	}

	st := s.Stats()
	if st.Total != 0 || st.Valid != 0 || st.Expired != 0 {
		t.Errorf("stats after clear = %+v, want zeroes", st)
	}
}

func TestPrune(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	s.clock = func() time.Time { return base.Add(-48 * time.Hour) }
	s.Set("Old", "company", sampleRecord("Old"))

	s.clock = func() time.Time { return base }
	s.Set("New", "company", sampleRecord("New"))

	if n := s.Prune(24 * time.Hour); n != 1 {
		t.Errorf("pruned %d entries, want 1", n)
	}
	if _, ok := s.Get("New", "company"); !ok {
		t.Error("fresh entry should survive prune")
	}
	if st := s.Stats(); st.Total != 1 {
		t.Errorf("stats after prune = %+v", st)
	}
}

func TestOperationsAreTotalOnClosedStore(t *testing.T) {
	s := testStore(t, 24*time.Hour)
	s.Close()

	if ok := s.Set("Anthropic", "company", sampleRecord("Anthropic")); ok {
		t.Error("set on closed store should report false")
	}
	if _, ok := s.Get("Anthropic", "company"); ok {
		t.Error("get on closed store should miss")
	}
	if s.Invalidate("Anthropic", "company") {
		t.Error("invalidate on closed store should report false")
	}
	if n := s.ClearAll(); n != 0 {
		t.Errorf("clear on closed store removed %d", n)
	}
	if st := s.Stats(); st.Total != 0 {
		t.Errorf("stats on closed store = %+v", st)
	}
}

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		input string
		want  Sentiment
	}{
		{"Positive", SentimentPositive},
		{"positive.", SentimentPositive},
		{"  NEGATIVE\n", SentimentNegative},
		{"Negative. The outlook is poor.", SentimentNegative},
		{"Neutral", SentimentNeutral},
		{"mixed", SentimentNeutral},
		{"", SentimentNeutral},
	}
	for _, tt := range tests {
		if got := ParseSentiment(tt.input); got != tt.want {
			t.Errorf("ParseSentiment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
