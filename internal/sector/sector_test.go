package sector

import (
	"testing"
)

func TestMatchBasic(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		headline string
		want     string
	}{
		{"Maruti launches new EV lineup", "AUTOMOBILE"},
		{"Sun Pharma gets USFDA nod for new drug", "PHARMA"},
		{"Infosys wins large European deal", "TECH"},
		{"HDFC Bank raises lending rates", "BANKING & FINANCE"},
		{"ONGC reports record crude output", "OIL & GAS"},
		{"JSW Steel expands Dolvi plant", "METALS"},
	}

	for _, tt := range tests {
		sec, ok := catalog.Match(tt.headline)
		if !ok {
			t.Errorf("Match(%q): no sector matched, want %s", tt.headline, tt.want)
			continue
		}
		if sec.Name != tt.want {
			t.Errorf("Match(%q) = %s, want %s", tt.headline, sec.Name, tt.want)
		}
	}
}

func TestMatchFirstWins(t *testing.T) {
	catalog := NewCatalog([]Sector{
		{Name: "AUTO", Keywords: []string{"auto"}},
		{Name: "BANKING", Keywords: []string{"bank"}},
	})

	// Headline matches both sectors; the earlier catalog entry wins.
	sec, ok := catalog.Match("Auto loans from top bank see record demand")
	if !ok {
		t.Fatal("expected a match")
	}
	if sec.Name != "AUTO" {
		t.Errorf("expected first-declared sector AUTO, got %s", sec.Name)
	}
}

func TestMatchOrderIsSignificant(t *testing.T) {
	reversed := NewCatalog([]Sector{
		{Name: "BANKING", Keywords: []string{"bank"}},
		{Name: "AUTO", Keywords: []string{"auto"}},
	})

	sec, _ := reversed.Match("Auto loans from top bank see record demand")
	if sec.Name != "BANKING" {
		t.Errorf("reversed catalog should match BANKING first, got %s", sec.Name)
	}
}

func TestMatchSubstringSemantics(t *testing.T) {
	catalog := DefaultCatalog()

	// "it" is a TECH keyword and matches inside "hospitality" — the
	// known false positive of plain substring containment.
	sec, ok := catalog.Match("Hospitality stocks shine in Q2")
	if !ok {
		t.Fatal("expected substring keyword to match")
	}
	if sec.Name != "TECH" {
		t.Errorf("expected TECH via substring match on 'it', got %s", sec.Name)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	catalog := DefaultCatalog()
	sec, ok := catalog.Match("MARUTI POSTS RECORD SALES")
	if !ok || sec.Name != "AUTOMOBILE" {
		t.Errorf("expected AUTOMOBILE for upper-case headline, got %v ok=%v", sec.Name, ok)
	}
}

func TestMatchNone(t *testing.T) {
	catalog := NewCatalog([]Sector{
		{Name: "METALS", Keywords: []string{"steel"}},
	})
	if _, ok := catalog.Match("Monsoon arrives early in Kerala"); ok {
		t.Error("expected no match for unrelated headline")
	}
}

func TestNewCatalogNormalizes(t *testing.T) {
	catalog := NewCatalog([]Sector{
		{Name: "  pharma ", Keywords: []string{" Health ", "", "CIPLA"}},
	})

	sectors := catalog.Sectors()
	if len(sectors) != 1 {
		t.Fatalf("expected 1 sector, got %d", len(sectors))
	}
	if sectors[0].Name != "PHARMA" {
		t.Errorf("expected normalized name PHARMA, got %q", sectors[0].Name)
	}
	if len(sectors[0].Keywords) != 2 {
		t.Fatalf("expected empty keywords dropped, got %v", sectors[0].Keywords)
	}
	if sectors[0].Keywords[0] != "health" || sectors[0].Keywords[1] != "cipla" {
		t.Errorf("expected lower-cased keywords, got %v", sectors[0].Keywords)
	}
}

func TestSectorsReturnsCopy(t *testing.T) {
	catalog := DefaultCatalog()
	sectors := catalog.Sectors()
	sectors[0].Name = "TAMPERED"

	if got := catalog.Sectors()[0].Name; got == "TAMPERED" {
		t.Error("Sectors() must not expose internal state")
	}
}

func TestDefaultCatalogOrder(t *testing.T) {
	want := []string{"AUTOMOBILE", "PHARMA", "TECH", "BANKING & FINANCE", "OIL & GAS", "METALS"}
	got := DefaultCatalog().Sectors()
	if len(got) != len(want) {
		t.Fatalf("expected %d sectors, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("sector %d: got %s, want %s", i, got[i].Name, name)
		}
	}
}
