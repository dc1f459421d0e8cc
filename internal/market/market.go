// Package market provides the market-data side of the pipeline: the
// sector-to-symbols mapping, a Yahoo Finance daily-close history client,
// and the average-daily-return performance analyzer.
package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Sentinel errors ---

// ErrSymbolNotFound is returned when a ticker cannot be resolved.
var ErrSymbolNotFound = fmt.Errorf("symbol not found")

// ErrNoPriceData is returned when a price series is empty or too short
// to compute a return.
var ErrNoPriceData = fmt.Errorf("no price data")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// --- Shared HTTP client helpers ---

// defaultUserAgent is the user agent string used for HTTP requests.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// httpClient is a pre-configured HTTP client with a bounded timeout;
// this per-request timeout is the only cancellation applied to a slow
// market-data host beyond the caller's context.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// doGet performs a GET request, returning the response body. The caller
// is responsible for closing the returned ReadCloser.
func doGet(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return resp.Body, nil
}
