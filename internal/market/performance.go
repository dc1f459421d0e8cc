package market

import (
	"context"
	"time"

	"github.com/seenimoa/newsadvisor/pkg/models"
	"github.com/seenimoa/newsadvisor/pkg/utils"
)

// DefaultWindowDays is the trailing lookback for average daily return,
// roughly six months of calendar days.
const DefaultWindowDays = 182

// Analyzer computes the average daily return statistic per symbol.
// The window is fixed at construction and held constant across a run so
// the averages of different candidates stay comparable.
type Analyzer struct {
	history    HistoryProvider
	windowDays int
	now        func() time.Time // injectable clock for tests
}

// NewAnalyzer creates an analyzer over the given history provider.
// windowDays <= 0 selects DefaultWindowDays.
func NewAnalyzer(history HistoryProvider, windowDays int) *Analyzer {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Analyzer{
		history:    history,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// WindowDays returns the configured lookback window in calendar days.
func (a *Analyzer) WindowDays() int { return a.windowDays }

// AvgDailyReturn computes the arithmetic mean of simple day-over-day
// fractional close change for a symbol over the trailing window.
//
// The boolean result is false when the price series could not be
// fetched or holds fewer than two closes; that is an ordinary "data
// unavailable" outcome, never an error, and the caller drops the symbol
// from its candidate set.
func (a *Analyzer) AvgDailyReturn(ctx context.Context, symbol string) (models.TickerStats, bool) {
	symbol = utils.NormalizeTicker(symbol)

	// Window endpoints are truncated to the day: the history cache keys
	// on (symbol, from, to), so second-resolution endpoints would give
	// every call a fresh key and defeat the cache entirely.
	to := a.now().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -a.windowDays)

	closes, err := a.history.DailyCloses(ctx, symbol, from, to)
	if err != nil || len(closes) < 2 {
		return models.TickerStats{Symbol: symbol}, false
	}

	sum := 0.0
	n := 0
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue // avoid dividing by a zero close
		}
		sum += (closes[i] - prev) / prev
		n++
	}
	if n == 0 {
		return models.TickerStats{Symbol: symbol}, false
	}

	return models.TickerStats{
		Symbol:    symbol,
		AvgReturn: sum / float64(n),
		Days:      n,
	}, true
}
