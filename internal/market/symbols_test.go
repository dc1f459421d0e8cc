package market

import (
	"reflect"
	"strings"
	"testing"

	"github.com/seenimoa/newsadvisor/internal/sector"
)

func TestSymbolsLookup(t *testing.T) {
	m := DefaultSymbolMap()

	syms, ok := m.Symbols("AUTOMOBILE")
	if !ok {
		t.Fatal("expected AUTOMOBILE to be mapped")
	}
	if syms[0] != "MARUTI" {
		t.Errorf("first AUTOMOBILE symbol = %s, want MARUTI", syms[0])
	}

	// Lookup normalizes the sector name.
	if _, ok := m.Symbols("  automobile "); !ok {
		t.Error("expected normalized lookup to succeed")
	}

	if _, ok := m.Symbols("SHIPPING"); ok {
		t.Error("expected unmapped sector to report false")
	}
}

func TestDefaultSymbolMapCoversCatalog(t *testing.T) {
	m := DefaultSymbolMap()
	for _, sec := range sector.DefaultCatalog().Sectors() {
		if _, ok := m.Symbols(sec.Name); !ok {
			t.Errorf("catalog sector %q has no symbol mapping", sec.Name)
		}
	}
}

func TestLoadSymbolMap(t *testing.T) {
	csvData := `Company Name,Industry,Symbol
Maruti Suzuki India Ltd.,Automobile,MARUTI
Tata Motors Ltd.,Automobile,TATAMOTORS
Sun Pharmaceutical Industries Ltd.,Pharma,SUNPHARMA
`
	m, err := LoadSymbolMap(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadSymbolMap: %v", err)
	}

	syms, ok := m.Symbols("AUTOMOBILE")
	if !ok {
		t.Fatal("expected AUTOMOBILE from CSV")
	}
	if want := []string{"MARUTI", "TATAMOTORS"}; !reflect.DeepEqual(syms, want) {
		t.Errorf("AUTOMOBILE = %v, want %v", syms, want)
	}

	if syms, _ := m.Symbols("PHARMA"); len(syms) != 1 || syms[0] != "SUNPHARMA" {
		t.Errorf("PHARMA = %v, want [SUNPHARMA]", syms)
	}
}

func TestLoadSymbolMapHeaderVariants(t *testing.T) {
	// "ticker"/"sector" header names and different column order.
	csvData := "sector,ticker\nTech,INFY\nTech,TCS\n"
	m, err := LoadSymbolMap(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadSymbolMap: %v", err)
	}
	if syms, _ := m.Symbols("TECH"); len(syms) != 2 {
		t.Errorf("TECH = %v, want 2 symbols", syms)
	}
}

func TestLoadSymbolMapSkipsBadRows(t *testing.T) {
	csvData := `Symbol,Sector
MARUTI,Automobile
,Automobile
TCS,
SHORTROW
INFY,Tech
`
	m, err := LoadSymbolMap(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("LoadSymbolMap: %v", err)
	}
	if syms, _ := m.Symbols("AUTOMOBILE"); len(syms) != 1 {
		t.Errorf("AUTOMOBILE = %v, want only MARUTI", syms)
	}
	if syms, _ := m.Symbols("TECH"); len(syms) != 1 {
		t.Errorf("TECH = %v, want only INFY", syms)
	}
}

func TestLoadSymbolMapErrors(t *testing.T) {
	if _, err := LoadSymbolMap(strings.NewReader("name,price\nfoo,1\n")); err == nil {
		t.Error("expected error for missing symbol/sector columns")
	}
	if _, err := LoadSymbolMap(strings.NewReader("Symbol,Sector\n")); err == nil {
		t.Error("expected error for CSV with no usable rows")
	}
	if _, err := LoadSymbolMap(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}
