// Package watchlist keeps the user's persisted list of saved games.
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/storage"
)

// StorageKey is the fixed key the list is persisted under.
const StorageKey = "game-watchlist"

// ErrNotLoaded is returned by mutations attempted before Load succeeded.
var ErrNotLoaded = errors.New("watchlist not loaded")

// Item is a saved game: a snapshot of the catalog fields needed to render the
// list, plus the user's flags.
type Item struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	ThumbnailURL       string    `json:"thumbnail"`
	YearPublished      int       `json:"yearPublished"`
	MinPlayers         int       `json:"minPlayers"`
	MaxPlayers         int       `json:"maxPlayers"`
	PlayingTimeMinutes int       `json:"playingTime"`
	ComplexityWeight   float64   `json:"complexity"`
	AverageRating      float64   `json:"rating"`
	AddedAt            time.Time `json:"addedAt"`
	Owned              bool      `json:"owned"`
	WantToPlay         bool      `json:"wantToPlay"`
}

// Store is the watchlist. Mutations are serialized and each one persists the
// whole list before returning.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	items  []Item
	loaded bool
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an unloaded Store persisting to kv.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted list. A missing key is an empty list. An
// undecodable value leaves the store unloaded so it is never overwritten.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read watchlist: %w", err)
	}

	items := []Item{}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("failed to decode watchlist: %w", err)
		}
	}

	s.items = items
	s.loaded = true
	s.logger.Debug("watchlist loaded", slog.Int("items", len(items)))
	return nil
}

// Loaded reports whether Load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Add saves a snapshot of e. Adding an id that is already present is a no-op.
func (s *Store) Add(ctx context.Context, e bgg.CatalogEntry) error {
	return s.mutate(ctx, func(items []Item) ([]Item, bool) {
		if indexOf(items, e.ID) >= 0 {
			return items, false
		}
		return append(items, Item{
			ID:                 e.ID,
			Name:               e.Name,
			ThumbnailURL:       e.ThumbnailURL,
			YearPublished:      e.YearPublished,
			MinPlayers:         e.MinPlayers,
			MaxPlayers:         e.MaxPlayers,
			PlayingTimeMinutes: e.PlayingTimeMinutes,
			ComplexityWeight:   e.ComplexityWeight,
			AverageRating:      e.AverageRating,
			AddedAt:            s.now().UTC().Round(0),
			WantToPlay:         true,
		}), true
	})
}

// Remove deletes the item with id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id int) error {
	return s.mutate(ctx, func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		return slices.Delete(items, i, i+1), true
	})
}

// ToggleOwned flips the owned flag of id. Absent ids are ignored.
func (s *Store) ToggleOwned(ctx context.Context, id int) error {
	return s.mutate(ctx, func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		items[i].Owned = !items[i].Owned
		return items, true
	})
}

// ToggleWantToPlay flips the want-to-play flag of id. Absent ids are ignored.
func (s *Store) ToggleWantToPlay(ctx context.Context, id int) error {
	return s.mutate(ctx, func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		items[i].WantToPlay = !items[i].WantToPlay
		return items, true
	})
}

// mutate applies fn to a copy of the list and persists the result. The
// in-memory list is only replaced once the write succeeded.
func (s *Store) mutate(ctx context.Context, fn func([]Item) ([]Item, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	next, changed := fn(slices.Clone(s.items))
	if !changed {
		return nil
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, raw); err != nil {
		s.logger.Warn("watchlist persist failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.items = next
	return nil
}

// Contains reports whether id is on the list.
func (s *Store) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.items, id) >= 0
}

// Get returns the item with id.
func (s *Store) Get(id int) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.items, id)
	if i < 0 {
		return Item{}, false
	}
	return s.items[i], true
}

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of saved games.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Counts returns the total, owned and want-to-play tallies.
func (s *Store) Counts() (total, owned, wantToPlay int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Owned {
			owned++
		}
		if it.WantToPlay {
			wantToPlay++
		}
	}
	return len(s.items), owned, wantToPlay
}

func indexOf(items []Item, id int) int {
	return slices.IndexFunc(items, func(it Item) bool { return it.ID == id })
}
