package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/seenimoa/newsadvisor/internal/infra"
	"github.com/seenimoa/newsadvisor/pkg/models"
)

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>%s</title>
%s
</channel></rss>`

func rssItem(title, pubDate string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>https://example.com/a</link><pubDate>%s</pubDate></item>`, title, pubDate)
}

func rssServer(t *testing.T, items ...string) *httptest.Server {
	t.Helper()
	body := ""
	for _, it := range items {
		body += it + "\n"
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, rssTemplate, "Test Feed", body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := rssServer(t,
		rssItem("Maruti launches new EV lineup", "Mon, 24 Aug 2026 09:00:00 +0530"),
		rssItem("Banks rally on rate cut hopes", "Mon, 24 Aug 2026 11:00:00 +0530"),
	)

	f := NewFetcher([]Source{{Name: "Test Feed", RSSURL: srv.URL}}, infra.NewCache(time.Hour))
	res, err := f.Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if res.SourcesOK != 1 || res.SourcesFailed != 0 {
		t.Errorf("sources ok=%d failed=%d, want 1/0", res.SourcesOK, res.SourcesFailed)
	}
	if len(res.Headlines) != 2 {
		t.Fatalf("got %d headlines, want 2", len(res.Headlines))
	}
	// Newest first.
	if res.Headlines[0].Title != "Banks rally on rate cut hopes" {
		t.Errorf("first headline = %q, want newest", res.Headlines[0].Title)
	}
	if res.Headlines[0].Source != "Test Feed" {
		t.Errorf("source = %q, want Test Feed", res.Headlines[0].Source)
	}
}

func TestFetchLimit(t *testing.T) {
	srv := rssServer(t,
		rssItem("One", "Mon, 24 Aug 2026 09:00:00 +0530"),
		rssItem("Two", "Mon, 24 Aug 2026 10:00:00 +0530"),
		rssItem("Three", "Mon, 24 Aug 2026 11:00:00 +0530"),
	)

	f := NewFetcher([]Source{{Name: "Test Feed", RSSURL: srv.URL}}, infra.NewCache(time.Hour))
	res, err := f.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Headlines) != 2 {
		t.Fatalf("got %d headlines, want limit of 2", len(res.Headlines))
	}
	if res.Headlines[0].Title != "Three" {
		t.Errorf("limit must keep the newest items, got %q first", res.Headlines[0].Title)
	}
}

func TestFetchCountsFailedSources(t *testing.T) {
	good := rssServer(t, rssItem("Steel output hits record", "Mon, 24 Aug 2026 09:00:00 +0530"))
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(bad.Close)

	f := NewFetcher([]Source{
		{Name: "Good", RSSURL: good.URL},
		{Name: "Bad", RSSURL: bad.URL},
	}, infra.NewCache(time.Hour))

	res, err := f.Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.SourcesOK != 1 || res.SourcesFailed != 1 {
		t.Errorf("sources ok=%d failed=%d, want 1/1", res.SourcesOK, res.SourcesFailed)
	}
	if len(res.Headlines) != 1 {
		t.Errorf("got %d headlines from surviving source, want 1", len(res.Headlines))
	}
}

func TestFetchUsesCache(t *testing.T) {
	cache := infra.NewCache(time.Hour)
	const url = "http://unreachable.invalid/rss"
	cache.SetWithTTL("feed:"+url, []models.Headline{
		{Title: "Cached headline", Source: "Cached"},
	}, time.Hour)

	f := NewFetcher([]Source{{Name: "Cached", RSSURL: url}}, cache)
	res, err := f.Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.SourcesFailed != 0 {
		t.Errorf("cached source must not count as failed, failed=%d", res.SourcesFailed)
	}
	if len(res.Headlines) != 1 || res.Headlines[0].Title != "Cached headline" {
		t.Errorf("expected cached headline, got %+v", res.Headlines)
	}
}

func TestDefaultSourcesWhenEmpty(t *testing.T) {
	f := NewFetcher(nil, infra.NewCache(time.Hour))
	if len(f.Sources()) != len(DefaultSources()) {
		t.Errorf("empty source list must fall back to defaults")
	}
}

func TestStripSourceSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sensex ends higher - Moneycontrol", "Sensex ends higher"},
		{"Nifty slips below 24,000 - The Economic Times", "Nifty slips below 24,000"},
		{"Plain headline without suffix", "Plain headline without suffix"},
		// Long tail is part of the headline, not an attribution.
		{"Budget 2026 - what the new capital gains regime means for long-term equity investors", "Budget 2026 - what the new capital gains regime means for long-term equity investors"},
		{" - Moneycontrol", " - Moneycontrol"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripSourceSuffix(tt.in); got != tt.want {
			t.Errorf("StripSourceSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>Markets</b> close higher", "Markets close higher"},
		{"M&amp;M posts strong sales", "M&M posts strong sales"},
		{"  Plain title  ", "Plain title"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanHTML(tt.in); got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	headlines := []models.Headline{
		{Title: "oldest", PublishedAt: base},
		{Title: "newest", PublishedAt: base.Add(2 * time.Hour)},
		{Title: "middle", PublishedAt: base.Add(time.Hour)},
	}
	sortNewestFirst(headlines)

	want := []string{"newest", "middle", "oldest"}
	for i, title := range want {
		if headlines[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, headlines[i].Title, title)
		}
	}
}
