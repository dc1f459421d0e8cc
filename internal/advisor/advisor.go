// Package advisor orchestrates the full pipeline: headlines in,
// sentiment, sector mapping, per-symbol performance analysis, and
// sentiment-conditioned recommendations out.
package advisor

import (
	"context"
	"time"

	"github.com/seenimoa/newsadvisor/internal/feed"
	"github.com/seenimoa/newsadvisor/internal/infra"
	"github.com/seenimoa/newsadvisor/internal/market"
	"github.com/seenimoa/newsadvisor/internal/recommend"
	"github.com/seenimoa/newsadvisor/internal/sector"
	"github.com/seenimoa/newsadvisor/internal/sentiment"
	"github.com/seenimoa/newsadvisor/pkg/models"
)

// ProgressFunc receives scan progress events for streaming to clients.
// Events: "scan_started", "headlines_fetched", "headline_analyzed",
// "scan_complete".
type ProgressFunc func(event string, data any)

// Options configures an Advisor.
type Options struct {
	Sources       []feed.Source
	Catalog       sector.Catalog
	Symbols       market.SymbolMap
	Thresholds    recommend.Thresholds
	WindowDays    int
	HeadlineLimit int // max headlines per scan, default 15
	TopN          int // recommendations kept per headline, default 3
}

// headlineFetcher is the ingestion boundary. *feed.Fetcher satisfies
// it; tests substitute a canned implementation.
type headlineFetcher interface {
	Fetch(ctx context.Context, limit int) (feed.Result, error)
	Sources() []feed.Source
}

// performanceAnalyzer is the per-symbol statistics boundary.
// *market.Analyzer satisfies it.
type performanceAnalyzer interface {
	AvgDailyReturn(ctx context.Context, symbol string) (models.TickerStats, bool)
}

// Advisor runs scans. Each scan is a fresh synchronous pass over the
// pipeline; the only state shared between scans is the injected cache.
type Advisor struct {
	fetcher  headlineFetcher
	catalog  sector.Catalog
	symbols  market.SymbolMap
	analyzer performanceAnalyzer
	engine   *recommend.Engine
	cache    *infra.Cache

	headlineLimit int
	topN          int
	progress      ProgressFunc
}

// New creates an advisor with its cache and collaborators wired up.
func New(opts Options) *Advisor {
	if opts.Catalog.Len() == 0 {
		opts.Catalog = sector.DefaultCatalog()
	}
	if len(opts.Symbols) == 0 {
		opts.Symbols = market.DefaultSymbolMap()
	}
	if opts.Thresholds == (recommend.Thresholds{}) {
		opts.Thresholds = recommend.DefaultThresholds()
	}
	if opts.HeadlineLimit <= 0 {
		opts.HeadlineLimit = 15
	}
	if opts.TopN <= 0 {
		opts.TopN = 3
	}

	cache := infra.NewCache(5 * time.Minute)
	return &Advisor{
		fetcher:       feed.NewFetcher(opts.Sources, cache),
		catalog:       opts.Catalog,
		symbols:       opts.Symbols,
		analyzer:      market.NewAnalyzer(market.NewHistory(cache), opts.WindowDays),
		engine:        recommend.NewEngine(opts.Thresholds),
		cache:         cache,
		headlineLimit: opts.HeadlineLimit,
		topN:          opts.TopN,
		progress:      func(string, any) {},
	}
}

// SetProgress installs a progress callback. Pass nil to disable.
func (a *Advisor) SetProgress(fn ProgressFunc) {
	if fn == nil {
		fn = func(string, any) {}
	}
	a.progress = fn
}

// Catalog returns the sector catalog in use.
func (a *Advisor) Catalog() sector.Catalog { return a.catalog }

// Symbols returns the sector-to-symbols map in use.
func (a *Advisor) Symbols() market.SymbolMap { return a.symbols }

// Sources returns the configured feed sources.
func (a *Advisor) Sources() []feed.Source { return a.fetcher.Sources() }

// Thresholds returns the recommendation thresholds in use.
func (a *Advisor) Thresholds() recommend.Thresholds { return a.engine.Thresholds() }

// AnalyzeSymbol exposes the per-symbol performance statistic.
func (a *Advisor) AnalyzeSymbol(ctx context.Context, symbol string) (models.TickerStats, bool) {
	return a.analyzer.AvgDailyReturn(ctx, symbol)
}

// FlushCaches drops all cached feed and price data atomically, so the
// next scan starts cold.
func (a *Advisor) FlushCaches() {
	a.cache.Flush()
}

// Scan runs one full pipeline pass. Ingestion failure is non-fatal: an
// unreachable feed yields a report with zero headlines rather than an
// error. The only error returned is context cancellation.
func (a *Advisor) Scan(ctx context.Context) (*models.ScanReport, error) {
	started := time.Now()
	a.progress("scan_started", nil)

	fetched, err := a.fetcher.Fetch(ctx, a.headlineLimit)
	if err != nil {
		return nil, err
	}
	a.progress("headlines_fetched", map[string]any{
		"count":          len(fetched.Headlines),
		"sources_ok":     fetched.SourcesOK,
		"sources_failed": fetched.SourcesFailed,
	})

	report := &models.ScanReport{
		GeneratedAt:   started,
		Headlines:     fetched.Headlines,
		SourcesOK:     fetched.SourcesOK,
		SourcesFailed: fetched.SourcesFailed,
	}

	// Symbols are analyzed one at a time, so scan latency grows linearly
	// with the number of candidates behind each non-neutral headline.
	for _, h := range fetched.Headlines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		analysis := a.analyzeHeadline(ctx, h)
		report.Analyses = append(report.Analyses, analysis)
		a.progress("headline_analyzed", analysis)
	}

	report.DurationMS = time.Since(started).Milliseconds()
	a.progress("scan_complete", map[string]any{
		"analyses":   len(report.Analyses),
		"actionable": len(report.Actionable()),
	})
	return report, nil
}

// analyzeHeadline runs the per-headline stages and records why the
// recommendation list ended up the way it did.
func (a *Advisor) analyzeHeadline(ctx context.Context, h models.Headline) models.HeadlineAnalysis {
	analysis := models.HeadlineAnalysis{
		Headline:  h,
		Sentiment: sentiment.Analyze(h.Title),
	}

	if analysis.Sentiment.Label == models.SentimentNeutral {
		analysis.Outcome = models.OutcomeNeutral
		return analysis
	}

	sec, matched := a.catalog.Match(h.Title)
	if !matched {
		analysis.Outcome = models.OutcomeNoSector
		return analysis
	}
	analysis.Sector = sec.Name

	symbols, ok := a.symbols.Symbols(sec.Name)
	if !ok {
		analysis.Outcome = models.OutcomeNoSymbols
		return analysis
	}

	var candidates []models.TickerStats
	for _, sym := range symbols {
		stats, available := a.analyzer.AvgDailyReturn(ctx, sym)
		if !available {
			// Unavailable data drops the symbol silently; it neither
			// blocks nor errors the scan.
			analysis.Unavailable++
			continue
		}
		candidates = append(candidates, stats)
	}
	analysis.Candidates = len(candidates)

	if len(candidates) == 0 {
		analysis.Outcome = models.OutcomeNoData
		return analysis
	}

	recs := a.engine.Recommend(analysis.Sentiment.Label, candidates)
	if len(recs) == 0 {
		analysis.Outcome = models.OutcomeNoneQualified
		return analysis
	}

	analysis.Outcome = models.OutcomeRecommended
	analysis.Recommendations = recommend.Top(recs, a.topN)
	return analysis
}
