// Package sentiment scores headline polarity with a weighted keyword
// lexicon. It is fully offline and deterministic: the same headline
// always yields the same score and label.
package sentiment

import (
	"strings"

	"github.com/seenimoa/newsadvisor/pkg/models"
)

// Classification thresholds. Scores strictly above PositiveThreshold are
// POSITIVE, strictly below NegativeThreshold are NEGATIVE, everything in
// between (both boundaries included) is NEUTRAL.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// bullish / bearish keyword dictionaries (lowercase).
var bullishWords = map[string]float64{
	"rally": 0.6, "surge": 0.7, "surges": 0.7, "soar": 0.7, "jump": 0.5,
	"gain": 0.4, "gains": 0.4, "upbeat": 0.5, "positive": 0.4,
	"growth": 0.4, "upgrade": 0.6, "outperform": 0.6, "strong": 0.4,
	"recovery": 0.5, "record high": 0.7, "all-time high": 0.7,
	"beat": 0.5, "beats": 0.5, "exceeds": 0.5, "expansion": 0.4,
	"profit": 0.3, "dividend": 0.4, "launches": 0.3, "wins": 0.5,
	"approval": 0.4, "boost": 0.5, "bullish": 0.7,
}

var bearishWords = map[string]float64{
	"crash": 0.8, "plunge": 0.7, "plunges": 0.7, "slump": 0.6,
	"tumble": 0.6, "negative": 0.4, "downgrade": 0.6,
	"underperform": 0.6, "weak": 0.4, "decline": 0.5, "declines": 0.5,
	"loss": 0.4, "losses": 0.4, "selloff": 0.7, "fall": 0.4,
	"falls": 0.4, "correction": 0.5, "default": 0.7, "fraud": 0.8,
	"scam": 0.8, "probe": 0.5, "investigation": 0.5, "cut": 0.3,
	"miss": 0.5, "misses": 0.5, "warning": 0.5, "concern": 0.3,
	"bearish": 0.7, "recall": 0.5, "penalty": 0.5,
}

// Score returns the polarity of a headline in [-1, +1]: negative values
// are bearish, positive bullish, zero means no lexical signal.
func Score(headline string) float64 {
	lower := strings.ToLower(headline)

	bull := 0.0
	bear := 0.0
	matches := 0

	for word, weight := range bullishWords {
		if strings.Contains(lower, word) {
			bull += weight
			matches++
		}
	}
	for word, weight := range bearishWords {
		if strings.Contains(lower, word) {
			bear += weight
			matches++
		}
	}

	if matches == 0 || bull+bear == 0 {
		return 0
	}

	// Net score normalized to -1..+1.
	return (bull - bear) / (bull + bear)
}

// Classify maps a polarity score to its label. The partition is total:
// no gap and no overlap, with both boundary values landing on NEUTRAL.
func Classify(score float64) models.SentimentLabel {
	switch {
	case score > PositiveThreshold:
		return models.SentimentPositive
	case score < NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Analyze scores and classifies a headline in one step.
func Analyze(headline string) models.SentimentResult {
	score := Score(headline)
	return models.SentimentResult{
		Label: Classify(score),
		Score: score,
	}
}
