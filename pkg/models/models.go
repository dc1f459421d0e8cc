// Package models defines the core data structures used throughout the
// news advisor: headlines, sentiment results, ticker statistics, and
// the scan report assembled by the pipeline.
package models

import "time"

// Headline represents a single news item fetched from an RSS feed.
type Headline struct {
	Title       string    `json:"title"`
	Link        string    `json:"link,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// SentimentLabel classifies the polarity of a headline.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// SentimentResult is the outcome of scoring a single headline.
// Label is a total function of Score: score > 0.1 is POSITIVE,
// score < -0.1 is NEGATIVE, everything else (both boundaries
// included) is NEUTRAL.
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// TickerStats holds the historical performance statistic for one symbol.
// AvgReturn is the arithmetic mean of simple day-over-day fractional
// close change over the analyzer's lookback window.
type TickerStats struct {
	Symbol    string  `json:"symbol"`
	AvgReturn float64 `json:"avg_return"`
	Days      int     `json:"days"` // number of daily returns averaged
}

// Action is the direction of a recommendation.
type Action string

const (
	ActionBuy   Action = "BUY"
	ActionAvoid Action = "AVOID"
)

// Recommendation is a ranked ticker selected by the recommendation engine.
type Recommendation struct {
	TickerStats
	Action Action `json:"action"`
}

// CandidateOutcome explains why a headline analysis ended with the
// recommendation list it has. An empty list is a normal terminal state,
// but the reason for emptiness is kept explicit so callers (and tests)
// can distinguish "no data" from "computed zero-length result".
type CandidateOutcome string

const (
	// OutcomeNeutral: sentiment was neutral, recommendation skipped.
	OutcomeNeutral CandidateOutcome = "neutral_sentiment"
	// OutcomeNoSector: no sector keyword matched the headline.
	OutcomeNoSector CandidateOutcome = "no_sector_match"
	// OutcomeNoSymbols: the matched sector has no entry in the symbol map.
	OutcomeNoSymbols CandidateOutcome = "no_symbols_for_sector"
	// OutcomeNoData: price history was unavailable for every candidate.
	OutcomeNoData CandidateOutcome = "no_price_data"
	// OutcomeNoneQualified: candidates were analyzed but none passed the
	// return threshold.
	OutcomeNoneQualified CandidateOutcome = "none_qualified"
	// OutcomeRecommended: at least one recommendation was produced.
	OutcomeRecommended CandidateOutcome = "recommended"
)

// HeadlineAnalysis is the full pipeline result for a single headline.
type HeadlineAnalysis struct {
	Headline        Headline         `json:"headline"`
	Sentiment       SentimentResult  `json:"sentiment"`
	Sector          string           `json:"sector,omitempty"`
	Candidates      int              `json:"candidates"` // symbols analyzed
	Unavailable     int              `json:"unavailable"` // symbols with no price data
	Outcome         CandidateOutcome `json:"outcome"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// ScanReport is the result of one full pipeline pass.
type ScanReport struct {
	GeneratedAt   time.Time          `json:"generated_at"`
	Headlines     []Headline         `json:"headlines"`
	Analyses      []HeadlineAnalysis `json:"analyses"`
	SourcesOK     int                `json:"sources_ok"`
	SourcesFailed int                `json:"sources_failed"`
	DurationMS    int64              `json:"duration_ms"`
}

// Actionable returns the analyses that produced at least one recommendation.
func (r *ScanReport) Actionable() []HeadlineAnalysis {
	var out []HeadlineAnalysis
	for _, a := range r.Analyses {
		if a.Outcome == OutcomeRecommended {
			out = append(out, a)
		}
	}
	return out
}
