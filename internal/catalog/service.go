package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
)

// DebounceInterval is how long search input must be stable before a search
// is issued.
const DebounceInterval = 500 * time.Millisecond

// ErrNotFound is returned by Game when the catalog has no such id.
var ErrNotFound = errors.New("game not found")

// Source is the subset of bgg.API the service needs.
type Source interface {
	Hot(ctx context.Context) ([]bgg.TrendingSummary, error)
	SearchIDs(ctx context.Context, query string, limit int) ([]int, error)
	Things(ctx context.Context, ids []int) ([]bgg.CatalogEntry, error)
}

// Service loads catalog data from a Source into a Store.
type Service struct {
	source Source
	store  *Store
	topIDs []int
	logger *slog.Logger
}

// NewService creates a Service. topIDs is the curated list shown when no
// search is active; nil uses bgg.TopGameIDs.
func NewService(source Source, store *Store, topIDs []int, logger *slog.Logger) *Service {
	if topIDs == nil {
		topIDs = bgg.TopGameIDs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, store: store, topIDs: topIDs, logger: logger}
}

// Store returns the backing store.
func (s *Service) Store() *Store {
	return s.store
}

// LoadInitial fetches the trending list and the top games concurrently.
// Each half is applied as soon as it succeeds; the first failure is returned.
func (s *Service) LoadInitial(ctx context.Context) error {
	trendingTok := s.store.BeginTrending()
	activeTok := s.store.Begin()

	var g errgroup.Group
	g.Go(func() error {
		list, err := s.source.Hot(ctx)
		if err != nil {
			return fmt.Errorf("load trending: %w", err)
		}
		s.store.ApplyTrending(trendingTok, list)
		return nil
	})
	g.Go(func() error {
		entries, err := s.source.Things(ctx, s.topIDs)
		if err != nil {
			return fmt.Errorf("load top games: %w", err)
		}
		s.store.ApplyActive(activeTok, entries)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("initial load failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Search replaces the active set with the details of the games matching
// query. A blank query resets to the top games. The bool result is false
// when a newer request superseded this one and its result was discarded.
func (s *Service) Search(ctx context.Context, query string) (bool, error) {
	tok := s.store.Begin()
	query = strings.TrimSpace(query)
	if query == "" {
		return s.fetchActive(ctx, tok, s.topIDs, "reset to top games")
	}

	ids, err := s.source.SearchIDs(ctx, query, bgg.SearchDetailLimit)
	if err != nil {
		s.logger.Warn("search failed", slog.String("query", query), slog.String("error", err.Error()))
		return false, fmt.Errorf("search %q: %w", query, err)
	}
	s.logger.Debug("search hits", slog.String("query", query), slog.Int("ids", len(ids)))
	return s.fetchActive(ctx, tok, ids, "search details")
}

// Refresh fetches the top games again.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	return s.fetchActive(ctx, s.store.Begin(), s.topIDs, "refresh")
}

// RefreshTrending fetches the trending list again.
func (s *Service) RefreshTrending(ctx context.Context) (bool, error) {
	tok := s.store.BeginTrending()
	list, err := s.source.Hot(ctx)
	if err != nil {
		s.logger.Warn("trending refresh failed", slog.String("error", err.Error()))
		return false, fmt.Errorf("refresh trending: %w", err)
	}
	return s.store.ApplyTrending(tok, list), nil
}

func (s *Service) fetchActive(ctx context.Context, tok Token, ids []int, what string) (bool, error) {
	entries, err := s.source.Things(ctx, ids)
	if err != nil {
		s.logger.Warn("catalog fetch failed", slog.String("op", what), slog.String("error", err.Error()))
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return s.store.ApplyActive(tok, entries), nil
}

// Game returns one entry, from the active set when present and otherwise
// fetched from the source. A fetched entry does not join the active set.
func (s *Service) Game(ctx context.Context, id int) (bgg.CatalogEntry, error) {
	if e, ok := s.store.Lookup(id); ok {
		return e, nil
	}
	entries, err := s.source.Things(ctx, []int{id})
	if err != nil {
		return bgg.CatalogEntry{}, fmt.Errorf("game %d: %w", id, err)
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return bgg.CatalogEntry{}, fmt.Errorf("game %d: %w", id, ErrNotFound)
}
