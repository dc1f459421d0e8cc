package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/seenimoa/newsadvisor/pkg/utils"
)

// SymbolMap maps a normalized sector identifier to its member NSE
// symbols. Sector identifiers must round-trip through
// utils.NormalizeSector on both the catalog side and this side; when
// the two catalogs drift the lookup silently yields no candidates,
// which is the most common cause of an empty recommendation list.
type SymbolMap map[string][]string

// Symbols returns the member symbols for a sector, and false when the
// sector has no entry. The sector name is normalized before lookup.
func (m SymbolMap) Symbols(sector string) ([]string, bool) {
	syms, ok := m[utils.NormalizeSector(sector)]
	if !ok || len(syms) == 0 {
		return nil, false
	}
	return syms, true
}

// Sectors returns the sector identifiers present in the map.
func (m SymbolMap) Sectors() []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	return out
}

// DefaultSymbolMap returns a built-in sector membership table covering
// the default catalog, used when no stock-list CSV is configured.
func DefaultSymbolMap() SymbolMap {
	return SymbolMap{
		"AUTOMOBILE":        {"MARUTI", "TATAMOTORS", "M&M", "HEROMOTOCO", "BAJAJ-AUTO", "EICHERMOT"},
		"PHARMA":            {"SUNPHARMA", "CIPLA", "DRREDDY", "LUPIN", "AUROPHARMA"},
		"TECH":              {"TCS", "INFY", "WIPRO", "HCLTECH", "TECHM"},
		"BANKING & FINANCE": {"HDFCBANK", "ICICIBANK", "SBIN", "AXISBANK", "KOTAKBANK", "BAJFINANCE"},
		"OIL & GAS":         {"RELIANCE", "ONGC", "BPCL", "IOC", "GAIL"},
		"METALS":            {"TATASTEEL", "JSWSTEEL", "HINDALCO", "COALINDIA", "VEDL"},
	}
}

// LoadSymbolMap reads a nifty500-style stock list CSV. The header must
// contain a symbol column and a sector/industry column; column order is
// free and header matching is case-insensitive. Rows missing either
// field are skipped.
func LoadSymbolMap(r io.Reader) (SymbolMap, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	symCol, secCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "symbol", "ticker":
			symCol = i
		case "sector", "industry":
			secCol = i
		}
	}
	if symCol < 0 || secCol < 0 {
		return nil, fmt.Errorf("CSV header missing symbol or sector column: %v", header)
	}

	m := make(SymbolMap)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if symCol >= len(rec) || secCol >= len(rec) {
			continue
		}
		symbol := utils.NormalizeTicker(rec[symCol])
		sector := utils.NormalizeSector(rec[secCol])
		if symbol == "" || sector == "" {
			continue
		}
		m[sector] = append(m[sector], symbol)
	}

	if len(m) == 0 {
		return nil, fmt.Errorf("CSV contained no usable rows")
	}
	return m, nil
}
