package query

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
)

// SortKey selects the ordering of a result list.
type SortKey string

const (
	SortRank           SortKey = "rank"
	SortRating         SortKey = "rating"
	SortComplexityAsc  SortKey = "complexity_asc"
	SortComplexityDesc SortKey = "complexity_desc"
	SortName           SortKey = "name"
	SortYear           SortKey = "year"
	SortPlayersAsc     SortKey = "players_asc"
	SortPlayersDesc    SortKey = "players_desc"
	SortPlaytimeAsc    SortKey = "playtime_asc"
	SortPlaytimeDesc   SortKey = "playtime_desc"
)

var sortKeys = []SortKey{
	SortRank,
	SortRating,
	SortComplexityAsc,
	SortComplexityDesc,
	SortName,
	SortYear,
	SortPlayersAsc,
	SortPlayersDesc,
	SortPlaytimeAsc,
	SortPlaytimeDesc,
}

var sortLabels = map[SortKey]string{
	SortRank:           "Rank",
	SortRating:         "Rating",
	SortComplexityAsc:  "Complexity (low-high)",
	SortComplexityDesc: "Complexity (high-low)",
	SortName:           "Name",
	SortYear:           "Year (newest)",
	SortPlayersAsc:     "Players (fewest)",
	SortPlayersDesc:    "Players (most)",
	SortPlaytimeAsc:    "Play time (shortest)",
	SortPlaytimeDesc:   "Play time (longest)",
}

// SortKeys returns every recognized key in display order.
func SortKeys() []SortKey {
	return slices.Clone(sortKeys)
}

// ParseSortKey validates s as a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if _, ok := sortLabels[k]; !ok {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

// Label returns a short human-readable name for the key.
func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return string(k)
}

// Next returns the key following k in display order, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

// rankValue places unranked entries after every ranked one.
func rankValue(e bgg.CatalogEntry) int {
	if e.Rank <= 0 {
		return math.MaxInt
	}
	return e.Rank
}

// Sort returns a stably sorted copy of entries. Names are compared with col;
// a nil collator falls back to byte order. Unknown keys keep input order.
func Sort(entries []bgg.CatalogEntry, key SortKey, col *collate.Collator) []bgg.CatalogEntry {
	out := slices.Clone(entries)
	cmpFn := comparator(key, col)
	if cmpFn == nil {
		return out
	}
	slices.SortStableFunc(out, cmpFn)
	return out
}

func comparator(key SortKey, col *collate.Collator) func(a, b bgg.CatalogEntry) int {
	switch key {
	case SortRank:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(rankValue(a), rankValue(b)) }
	case SortRating:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(b.AverageRating, a.AverageRating) }
	case SortComplexityAsc:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(a.ComplexityWeight, b.ComplexityWeight) }
	case SortComplexityDesc:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(b.ComplexityWeight, a.ComplexityWeight) }
	case SortName:
		if col == nil {
			return func(a, b bgg.CatalogEntry) int { return cmp.Compare(a.Name, b.Name) }
		}
		return func(a, b bgg.CatalogEntry) int { return col.CompareString(a.Name, b.Name) }
	case SortYear:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(b.YearPublished, a.YearPublished) }
	case SortPlayersAsc:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(a.MinPlayers, b.MinPlayers) }
	case SortPlayersDesc:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(b.MaxPlayers, a.MaxPlayers) }
	case SortPlaytimeAsc:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(a.PlayingTimeMinutes, b.PlayingTimeMinutes) }
	case SortPlaytimeDesc:
		return func(a, b bgg.CatalogEntry) int { return cmp.Compare(b.PlayingTimeMinutes, a.PlayingTimeMinutes) }
	}
	return nil
}

// newCollator builds a collator for locale, falling back to English when the
// tag cannot be parsed.
func newCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag)
}
