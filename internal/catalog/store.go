// Package catalog holds the working set of games the UI browses: the
// trending list and the active collection produced by the latest load,
// search or refresh.
package catalog

import (
	"log/slog"
	"slices"
	"sync"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/query"
)

// Token identifies one issued request. Only the most recently issued token
// for a slot may write to that slot.
type Token uint64

// Store is the in-memory working set. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	engine   *query.Engine
	logger   *slog.Logger
	trending []bgg.TrendingSummary
	active   []bgg.CatalogEntry

	activeGen   Token
	trendingGen Token
}

// NewStore creates an empty Store answering queries with engine. A nil engine
// uses the default locale.
func NewStore(engine *query.Engine, logger *slog.Logger) *Store {
	if engine == nil {
		engine = query.NewEngine("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		engine:   engine,
		logger:   logger,
		trending: []bgg.TrendingSummary{},
		active:   []bgg.CatalogEntry{},
	}
}

// Begin issues a token for a new active-set request, superseding every
// earlier one.
func (s *Store) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGen++
	return s.activeGen
}

// BeginTrending issues a token for a new trending request.
func (s *Store) BeginTrending() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trendingGen++
	return s.trendingGen
}

// ApplyActive replaces the active set when token is still current and
// reports whether it did. Duplicate ids keep the last fetched record at the
// position of the first.
func (s *Store) ApplyActive(token Token, entries []bgg.CatalogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.activeGen {
		s.logger.Debug("discarding stale catalog result",
			slog.Uint64("token", uint64(token)),
			slog.Uint64("current", uint64(s.activeGen)),
		)
		return false
	}
	s.active = dedupe(entries)
	return true
}

// ApplyTrending replaces the trending list when token is still current.
func (s *Store) ApplyTrending(token Token, list []bgg.TrendingSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.trendingGen {
		s.logger.Debug("discarding stale trending result",
			slog.Uint64("token", uint64(token)),
			slog.Uint64("current", uint64(s.trendingGen)),
		)
		return false
	}
	s.trending = slices.Clone(list)
	if s.trending == nil {
		s.trending = []bgg.TrendingSummary{}
	}
	return true
}

// Trending returns a copy of the trending list.
func (s *Store) Trending() []bgg.TrendingSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trending)
}

// Active returns a copy of the active set in fetch order.
func (s *Store) Active() []bgg.CatalogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.active)
}

// Lookup returns the active entry with id.
func (s *Store) Lookup(id int) (bgg.CatalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.active, func(e bgg.CatalogEntry) bool { return e.ID == id })
	if i < 0 {
		return bgg.CatalogEntry{}, false
	}
	return s.active[i], true
}

// Entries returns the visible window of the filtered, sorted active set.
func (s *Store) Entries(spec query.FilterSpec, key query.SortKey, pageIndex int) []bgg.CatalogEntry {
	return s.engine.Entries(s.Active(), spec, key, pageIndex)
}

// HasMore reports whether another page is available for spec.
func (s *Store) HasMore(spec query.FilterSpec, pageIndex int) bool {
	return s.engine.HasMore(s.Active(), spec, pageIndex)
}

// Facets lists the filter values present in the active set.
func (s *Store) Facets() query.Facets {
	return query.BuildFacets(s.Active())
}

func dedupe(entries []bgg.CatalogEntry) []bgg.CatalogEntry {
	out := make([]bgg.CatalogEntry, 0, len(entries))
	pos := make(map[int]int, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.ID]; ok {
			out[i] = e
			continue
		}
		pos[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}
