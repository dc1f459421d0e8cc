// Package utils provides small shared helpers for NSE ticker handling
// and Indian market time formatting.
package utils

import "strings"

// Common NSE ticker aliases. Keys are upper-cased user input, values
// are the canonical NSE symbol.
var tickerAliases = map[string]string{
	"RIL":          "RELIANCE",
	"INFOSYS":      "INFY",
	"HDFC BANK":    "HDFCBANK",
	"ICICI BANK":   "ICICIBANK",
	"SBI":          "SBIN",
	"AIRTEL":       "BHARTIARTL",
	"L&T":          "LT",
	"TATA MOTORS":  "TATAMOTORS",
	"TATA STEEL":   "TATASTEEL",
	"HCL TECH":     "HCLTECH",
	"KOTAK":        "KOTAKBANK",
	"AXIS BANK":    "AXISBANK",
	"SUN PHARMA":   "SUNPHARMA",
	"MAHINDRA":     "M&M",
	"HUL":          "HINDUNILVR",
	"COAL INDIA":   "COALINDIA",
	"BAJAJ FIN":    "BAJFINANCE",
	"TECH MAHINDRA": "TECHM",
}

// NormalizeTicker converts user input into a canonical NSE symbol.
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.TrimSuffix(t, ".NS")
	t = strings.TrimSuffix(t, ".BO")
	if canonical, ok := tickerAliases[t]; ok {
		return canonical
	}
	return t
}

// ToYFinanceTicker converts an NSE symbol to its Yahoo Finance form,
// e.g. "RELIANCE" -> "RELIANCE.NS".
func ToYFinanceTicker(ticker string) string {
	t := NormalizeTicker(ticker)
	if strings.HasSuffix(t, ".NS") {
		return t
	}
	return t + ".NS"
}

// FromYFinanceTicker strips the Yahoo Finance exchange suffix.
func FromYFinanceTicker(yfTicker string) string {
	return strings.TrimSuffix(strings.TrimSuffix(yfTicker, ".NS"), ".BO")
}

// NormalizeSector canonicalizes a sector identifier for joining the
// keyword catalog with the sector-to-symbols map. Both sides must go
// through this; a drift between the two catalogs silently produces
// empty candidate sets.
func NormalizeSector(sector string) string {
	return strings.ToUpper(strings.TrimSpace(sector))
}
