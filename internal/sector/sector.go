// Package sector maps headlines to industry sectors by keyword matching.
//
// The catalog is an ordered list: matching walks sectors in declaration
// order and returns the first whose keywords hit, so order is part of
// the catalog's meaning and must be preserved when editing it.
package sector

import (
	"strings"

	"github.com/seenimoa/newsadvisor/pkg/utils"
)

// Sector is one catalog entry: an identifier plus the lowercase keyword
// substrings that select it.
type Sector struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Catalog is an immutable, ordered keyword catalog. Construct it with
// NewCatalog or DefaultCatalog and pass it in explicitly; there is no
// package-level catalog state.
type Catalog struct {
	sectors []Sector
}

// NewCatalog builds a catalog from the given sectors, normalizing names
// and lower-casing keywords. The input order is kept.
func NewCatalog(sectors []Sector) Catalog {
	out := make([]Sector, 0, len(sectors))
	for _, s := range sectors {
		kws := make([]string, 0, len(s.Keywords))
		for _, kw := range s.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		out = append(out, Sector{
			Name:     utils.NormalizeSector(s.Name),
			Keywords: kws,
		})
	}
	return Catalog{sectors: out}
}

// DefaultCatalog returns the stock sector catalog for Indian business
// news. Broad sectors (AUTOMOBILE, PHARMA) come before narrower ones so
// first-match-wins resolves overlaps predictably.
func DefaultCatalog() Catalog {
	return NewCatalog([]Sector{
		{Name: "AUTOMOBILE", Keywords: []string{"auto", "maruti", "mahindra", "tata motors", "hero", "bajaj", "ev"}},
		{Name: "PHARMA", Keywords: []string{"pharma", "health", "cipla", "sun pharma", "lupin", "dr reddy", "healthcare"}},
		{Name: "TECH", Keywords: []string{"it", "tech", "tcs", "infosys", "wipro", "hcl", "software"}},
		{Name: "BANKING & FINANCE", Keywords: []string{"bank", "hdfc", "icici", "sbi", "axis", "finance", "rbi", "nbfc"}},
		{Name: "OIL & GAS", Keywords: []string{"oil", "gas", "ongc", "reliance", "bpcl", "crude", "energy"}},
		{Name: "METALS", Keywords: []string{"metal", "steel", "tata steel", "jsw", "hindalco", "coal", "mining"}},
	})
}

// Match returns the first sector any of whose keywords occurs in the
// lower-cased headline, and false when nothing matches.
//
// Matching is plain substring containment, not word-boundary aware:
// a short keyword like "it" also hits inside unrelated words. That is a
// known false-positive source kept for parity with the keyword tables;
// fixing it would change which sector many headlines land in.
func (c Catalog) Match(headline string) (Sector, bool) {
	lower := strings.ToLower(headline)
	for _, s := range c.sectors {
		for _, kw := range s.Keywords {
			if strings.Contains(lower, kw) {
				return s, true
			}
		}
	}
	return Sector{}, false
}

// Sectors returns a copy of the catalog entries in declaration order.
func (c Catalog) Sectors() []Sector {
	out := make([]Sector, len(c.sectors))
	copy(out, c.sectors)
	return out
}

// Len returns the number of sectors in the catalog.
func (c Catalog) Len() int { return len(c.sectors) }
