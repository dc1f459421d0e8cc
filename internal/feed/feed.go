// Package feed fetches business-news headlines from RSS sources.
// Failed sources are skipped, never fatal: the worst outcome of a fetch
// pass is an empty headline list with the failure count reported.
package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/newsadvisor/internal/infra"
	"github.com/seenimoa/newsadvisor/pkg/models"
)

// browserUserAgent is sent with feed requests; some Indian news hosts
// reject default Go client UAs.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// retryDelay is the fixed pause before the single bounded retry of a
// failed source fetch.
const retryDelay = 2 * time.Second

// Source is one configured RSS feed.
type Source struct {
	Name   string `json:"name"`
	RSSURL string `json:"rss_url"`
}

// DefaultSources lists the Indian business news feeds fetched when no
// sources are configured.
func DefaultSources() []Source {
	return []Source{
		{Name: "Moneycontrol Business", RSSURL: "https://www.moneycontrol.com/rss/business.xml"},
		{Name: "Economic Times Markets", RSSURL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms"},
		{Name: "LiveMint Markets", RSSURL: "https://www.livemint.com/rss/markets"},
	}
}

// Result is the outcome of one fetch pass across all sources.
type Result struct {
	Headlines     []models.Headline
	SourcesOK     int
	SourcesFailed int
}

// Fetcher fetches and caches headlines from the configured sources.
type Fetcher struct {
	sources []Source
	parser  *gofeed.Parser
	cache   *infra.Cache
	limiter *infra.RateLimiter
}

// NewFetcher creates a fetcher. The cache is the shared pipeline cache;
// entries are keyed "feed:<rss-url>" with a one-hour TTL.
func NewFetcher(sources []Source, cache *infra.Cache) *Fetcher {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	parser := gofeed.NewParser()
	parser.UserAgent = browserUserAgent
	return &Fetcher{
		sources: sources,
		parser:  parser,
		cache:   cache,
		limiter: infra.NewRateLimiter(2, time.Second),
	}
}

// Sources returns the configured sources.
func (f *Fetcher) Sources() []Source { return f.sources }

// Fetch returns up to limit headlines across all sources, newest first.
// Sources are fetched concurrently; a failing source is counted and
// skipped. limit <= 0 means no cap.
func (f *Fetcher) Fetch(ctx context.Context, limit int) (Result, error) {
	var (
		mu     sync.Mutex
		all    []models.Headline
		ok     int
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range f.sources {
		g.Go(func() error {
			headlines, err := f.fetchSource(gctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return nil // non-critical: skip failed sources
			}
			ok++
			all = append(all, headlines...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	sortNewestFirst(all)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	return Result{Headlines: all, SourcesOK: ok, SourcesFailed: failed}, nil
}

// fetchSource fetches one source with a single bounded retry, consulting
// the cache first.
func (f *Fetcher) fetchSource(ctx context.Context, src Source) ([]models.Headline, error) {
	cacheKey := "feed:" + src.RSSURL
	if cached, hit := f.cache.Get(cacheKey); hit {
		return cached.([]models.Headline), nil
	}

	headlines, err := f.parseOnce(ctx, src)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
		headlines, err = f.parseOnce(ctx, src)
		if err != nil {
			return nil, err
		}
	}

	f.cache.SetWithTTL(cacheKey, headlines, time.Hour)
	return headlines, nil
}

func (f *Fetcher) parseOnce(ctx context.Context, src Source) ([]models.Headline, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parsed, err := f.parser.ParseURLWithContext(src.RSSURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	headlines := make([]models.Headline, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		title := StripSourceSuffix(CleanHTML(item.Title))
		if title == "" {
			continue
		}
		h := models.Headline{
			Title:  title,
			Link:   item.Link,
			Source: src.Name,
		}
		if item.PublishedParsed != nil {
			h.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			h.PublishedAt = *item.UpdatedParsed
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}

// StripSourceSuffix removes a trailing " - Source Name" attribution that
// some aggregated feeds append to titles. The suffix is only stripped
// when it is short and the remaining title is non-empty, so hyphenated
// headlines survive.
func StripSourceSuffix(title string) string {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title
	}
	suffix := title[idx+3:]
	if len(suffix) == 0 || len(suffix) > 40 || strings.Contains(suffix, ". ") {
		return title
	}
	return strings.TrimSpace(title[:idx])
}

// CleanHTML strips HTML tags and entities from a string using goquery.
func CleanHTML(s string) string {
	if s == "" || !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// sortNewestFirst sorts headlines by published date, newest first.
// Simple insertion sort — fine for small slices.
func sortNewestFirst(headlines []models.Headline) {
	for i := 1; i < len(headlines); i++ {
		key := headlines[i]
		j := i - 1
		for j >= 0 && headlines[j].PublishedAt.Before(key.PublishedAt) {
			headlines[j+1] = headlines[j]
			j--
		}
		headlines[j+1] = key
	}
}
