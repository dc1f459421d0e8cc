// Package recommend ranks candidate tickers by historical average daily
// return conditioned on headline sentiment.
package recommend

import (
	"sort"

	"github.com/seenimoa/newsadvisor/pkg/models"
)

// Thresholds are the average-daily-return cutoffs for inclusion.
// Buy keeps candidates strictly above the cutoff on positive sentiment;
// Avoid keeps candidates strictly below on negative sentiment.
type Thresholds struct {
	Buy   float64 `json:"buy"`
	Avoid float64 `json:"avoid"`
}

// DefaultThresholds returns the standard ±0.1% per-day cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Buy: 0.001, Avoid: -0.001}
}

// Engine filters and orders candidates. It holds no mutable state: the
// thresholds are fixed at construction and every call is a pure function
// of its inputs.
type Engine struct {
	th Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(th Thresholds) *Engine {
	return &Engine{th: th}
}

// Thresholds returns the engine's configured cutoffs.
func (e *Engine) Thresholds() Thresholds { return e.th }

// Recommend selects and orders candidates for the given sentiment label.
//
//   - POSITIVE: candidates with AvgReturn > Buy, best performer first.
//   - NEGATIVE: candidates with AvgReturn < Avoid, worst performer first.
//   - NEUTRAL (or any other label): nil — neutral sentiment is filtered
//     upstream and never produces recommendations.
//
// Equal AvgReturn values are ordered alphabetically by symbol, so the
// output is independent of input iteration order. The full filtered
// list is returned; truncation to a display count is the caller's job.
func (e *Engine) Recommend(label models.SentimentLabel, candidates []models.TickerStats) []models.Recommendation {
	var (
		action models.Action
		keep   func(float64) bool
		less   func(a, b float64) bool
	)

	switch label {
	case models.SentimentPositive:
		action = models.ActionBuy
		keep = func(r float64) bool { return r > e.th.Buy }
		less = func(a, b float64) bool { return a > b } // descending
	case models.SentimentNegative:
		action = models.ActionAvoid
		keep = func(r float64) bool { return r < e.th.Avoid }
		less = func(a, b float64) bool { return a < b } // ascending
	default:
		return nil
	}

	var out []models.Recommendation
	for _, c := range candidates {
		if keep(c.AvgReturn) {
			out = append(out, models.Recommendation{TickerStats: c, Action: action})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgReturn != out[j].AvgReturn {
			return less(out[i].AvgReturn, out[j].AvgReturn)
		}
		return out[i].Symbol < out[j].Symbol
	})

	return out
}

// Top returns at most n leading recommendations.
func Top(recs []models.Recommendation, n int) []models.Recommendation {
	if n <= 0 || len(recs) <= n {
		return recs
	}
	return recs[:n]
}
