package query

import (
	"math"
	"slices"
	"sync"

	"golang.org/x/text/collate"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
)

// PageSize is the number of entries added by each "load more".
const PageSize = 12

// DefaultLocale is used for name ordering when none is configured.
const DefaultLocale = "en"

// Apply filters and then stably sorts entries. Names are compared in byte
// order; use an Engine for locale-aware ordering.
func Apply(entries []bgg.CatalogEntry, spec FilterSpec, key SortKey) []bgg.CatalogEntry {
	return Sort(Filter(entries, spec), key, nil)
}

// Page returns the cumulative window for a 0-based page index: the first
// (pageIndex+1)*PageSize entries of list.
func Page(list []bgg.CatalogEntry, pageIndex int) []bgg.CatalogEntry {
	n := windowSize(pageIndex)
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}

// HasMore reports whether a list of total entries extends past the window of
// pageIndex.
func HasMore(total, pageIndex int) bool {
	return windowSize(pageIndex) < total
}

func windowSize(pageIndex int) int {
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex >= math.MaxInt/PageSize {
		return math.MaxInt
	}
	return (pageIndex + 1) * PageSize
}

// Engine applies queries with locale-aware name ordering.
// It is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex // collate.Collator keeps scratch buffers
	collator *collate.Collator
	locale   string
}

// NewEngine creates an Engine ordering names for locale. An empty or
// unparsable locale falls back to English.
func NewEngine(locale string) *Engine {
	if locale == "" {
		locale = DefaultLocale
	}
	return &Engine{collator: newCollator(locale), locale: locale}
}

// Locale returns the configured locale.
func (e *Engine) Locale() string {
	return e.locale
}

// Apply filters and stably sorts entries.
func (e *Engine) Apply(entries []bgg.CatalogEntry, spec FilterSpec, key SortKey) []bgg.CatalogEntry {
	filtered := Filter(entries, spec)
	e.mu.Lock()
	defer e.mu.Unlock()
	return Sort(filtered, key, e.collator)
}

// Entries returns the visible window for pageIndex after filtering and sorting.
func (e *Engine) Entries(entries []bgg.CatalogEntry, spec FilterSpec, key SortKey, pageIndex int) []bgg.CatalogEntry {
	return Page(e.Apply(entries, spec, key), pageIndex)
}

// HasMore reports whether the filtered list extends past pageIndex.
func (e *Engine) HasMore(entries []bgg.CatalogEntry, spec FilterSpec, pageIndex int) bool {
	return HasMore(len(Filter(entries, spec)), pageIndex)
}

// Facets lists the distinct values available for the list filters.
type Facets struct {
	Categories []string
	Mechanics  []string
	Designers  []string
}

// BuildFacets collects the sorted distinct categories, mechanics and
// designers present in entries.
func BuildFacets(entries []bgg.CatalogEntry) Facets {
	var f Facets
	for _, e := range entries {
		f.Categories = append(f.Categories, e.Categories...)
		f.Mechanics = append(f.Mechanics, e.Mechanics...)
		f.Designers = append(f.Designers, e.Designers...)
	}
	return Facets{
		Categories: distinct(f.Categories),
		Mechanics:  distinct(f.Mechanics),
		Designers:  distinct(f.Designers),
	}
}

func distinct(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}
