package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/seenimoa/newsadvisor/internal/infra"
	"github.com/seenimoa/newsadvisor/pkg/utils"
)

// HistoryProvider supplies daily closing prices for a symbol. The
// returned series is ordered oldest to newest.
type HistoryProvider interface {
	DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error)
}

// History fetches daily closes from the Yahoo Finance v8 chart API.
type History struct {
	cache   *infra.Cache
	limiter *infra.RateLimiter
}

// NewHistory creates a history client. Price series are cached in the
// shared cache under "hist:<symbol>:<from>:<to>" for 15 minutes.
func NewHistory(cache *infra.Cache) *History {
	return &History{
		cache:   cache,
		limiter: infra.NewRateLimiter(5, time.Second), // 5 req/s
	}
}

// --- Yahoo Finance v8 chart API types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfIndicators struct {
	Quote []yfQuoteBlock `json:"quote"`
}

type yfQuoteBlock struct {
	Close []*float64 `json:"close"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DailyCloses returns the daily closing prices for an NSE symbol in the
// given range, oldest first. Null entries (holidays, halted sessions)
// are dropped.
func (h *History) DailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]float64, error) {
	yfTicker := utils.ToYFinanceTicker(symbol)

	cacheKey := fmt.Sprintf("hist:%s:%d:%d", yfTicker, from.Unix(), to.Unix())
	if cached, ok := h.cache.Get(cacheKey); ok {
		return cached.([]float64), nil
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		yfTicker, from.Unix(), to.Unix(),
	)

	body, err := doGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", yfTicker, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse chart response: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	closes := make([]float64, 0, len(resp.Chart.Result[0].Indicators.Quote[0].Close))
	for _, c := range resp.Chart.Result[0].Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPriceData, symbol)
	}

	h.cache.SetWithTTL(cacheKey, closes, 15*time.Minute)
	return closes, nil
}
