package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)

// flakyKV wraps a MemoryKV and fails Put while failPut is set.
type flakyKV struct {
	*storage.MemoryKV
	failPut bool
	puts    int
}

func (f *flakyKV) Put(ctx context.Context, key string, value []byte) error {
	f.puts++
	if f.failPut {
		return errors.New("disk full")
	}
	return f.MemoryKV.Put(ctx, key, value)
}

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	s := New(kv,
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func game(id int) bgg.CatalogEntry {
	return bgg.CatalogEntry{
		ID:                 id,
		Name:               "Brass: Birmingham",
		ThumbnailURL:       "https://cf.geekdo-images.com/thumb/brass.jpg",
		YearPublished:      2018,
		MinPlayers:         2,
		MaxPlayers:         4,
		PlayingTimeMinutes: 120,
		ComplexityWeight:   3.87,
		AverageRating:      8.59,
		Rank:               1,
	}
}

func TestAdd_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryKV())

	require.NoError(t, s.Add(ctx, game(224517)))
	require.NoError(t, s.Add(ctx, game(224517)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 224517, items[0].ID)
	assert.False(t, items[0].Owned)
	assert.True(t, items[0].WantToPlay)
	assert.Equal(t, fixedNow, items[0].AddedAt)
	assert.True(t, s.Contains(224517))
}

func TestAdd_KeepsOriginalAddedAt(t *testing.T) {
	ctx := context.Background()
	now := fixedNow
	s := New(storage.NewMemoryKV(), WithClock(func() time.Time { return now }))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Add(ctx, game(1)))
	now = now.Add(time.Hour)
	require.NoError(t, s.Add(ctx, game(1)))

	item, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, fixedNow, item.AddedAt)
}

func TestToggleOwned_TwiceRestores(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Add(ctx, game(7)))

	require.NoError(t, s.ToggleOwned(ctx, 7))
	item, _ := s.Get(7)
	assert.True(t, item.Owned)

	require.NoError(t, s.ToggleOwned(ctx, 7))
	item, _ = s.Get(7)
	assert.False(t, item.Owned)
}

func TestToggleWantToPlay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Add(ctx, game(7)))

	require.NoError(t, s.ToggleWantToPlay(ctx, 7))
	item, _ := s.Get(7)
	assert.False(t, item.WantToPlay)
}

func TestRemoveThenToggleIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	s := newTestStore(t, kv)
	require.NoError(t, s.Add(ctx, game(7)))
	require.NoError(t, s.Remove(ctx, 7))
	putsAfterRemove := kv.puts

	require.NoError(t, s.ToggleOwned(ctx, 7))
	require.NoError(t, s.ToggleWantToPlay(ctx, 7))
	require.NoError(t, s.Remove(ctx, 7))

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(7))
	assert.Equal(t, putsAfterRemove, kv.puts, "no-op mutations must not persist")
}

func TestMutationsPersistWholeList(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)

	require.NoError(t, s.Add(ctx, game(1)))
	require.NoError(t, s.Add(ctx, game(2)))
	require.NoError(t, s.ToggleOwned(ctx, 2))

	raw, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)

	var persisted []Item
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, s.Items(), persisted)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)

	require.NoError(t, s.Add(ctx, game(1)))
	require.NoError(t, s.Add(ctx, game(2)))
	require.NoError(t, s.ToggleOwned(ctx, 1))
	require.NoError(t, s.ToggleWantToPlay(ctx, 2))

	reloaded := New(kv)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, s.Items(), reloaded.Items())
}

func TestPersistedFieldNames(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	require.NoError(t, s.Add(ctx, game(1)))

	raw, _, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic, 1)
	for _, field := range []string{
		"id", "name", "thumbnail", "yearPublished", "minPlayers", "maxPlayers",
		"playingTime", "complexity", "rating", "addedAt", "owned", "wantToPlay",
	} {
		assert.Contains(t, generic[0], field)
	}
}

func TestMutationBeforeLoad(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	s := New(kv)

	assert.ErrorIs(t, s.Add(ctx, game(1)), ErrNotLoaded)
	assert.ErrorIs(t, s.Remove(ctx, 1), ErrNotLoaded)
	assert.ErrorIs(t, s.ToggleOwned(ctx, 1), ErrNotLoaded)
	assert.ErrorIs(t, s.ToggleWantToPlay(ctx, 1), ErrNotLoaded)
	assert.Zero(t, kv.puts)
	assert.False(t, s.Loaded())
}

func TestLoad_CorruptDataIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	require.NoError(t, kv.MemoryKV.Put(ctx, StorageKey, []byte("{not json")))

	s := New(kv)
	require.Error(t, s.Load(ctx))
	assert.ErrorIs(t, s.Add(ctx, game(1)), ErrNotLoaded)

	raw, _, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	s := newTestStore(t, kv)
	require.NoError(t, s.Add(ctx, game(1)))

	kv.failPut = true
	assert.Error(t, s.Add(ctx, game(2)))
	assert.Error(t, s.ToggleOwned(ctx, 1))
	assert.Error(t, s.Remove(ctx, 1))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
	assert.False(t, items[0].Owned)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Add(ctx, game(1)))
	require.NoError(t, s.Add(ctx, game(2)))
	require.NoError(t, s.Add(ctx, game(3)))
	require.NoError(t, s.ToggleOwned(ctx, 1))
	require.NoError(t, s.ToggleWantToPlay(ctx, 3))

	total, owned, want := s.Counts()
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, owned)
	assert.Equal(t, 2, want)
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemoryKV())
	require.NoError(t, s.Add(ctx, game(1)))

	items := s.Items()
	items[0].Owned = true

	item, _ := s.Get(1)
	assert.False(t, item.Owned)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	const n = 200
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)

	var g errgroup.Group
	for i := 1; i <= n; i++ {
		g.Go(func() error {
			if err := s.Add(ctx, game(i)); err != nil {
				return err
			}
			return s.ToggleOwned(ctx, i)
		})
	}
	require.NoError(t, g.Wait())

	total, owned, _ := s.Counts()
	assert.Equal(t, n, s.Len())
	assert.Equal(t, n, total)
	assert.Equal(t, n, owned)

	raw, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)

	var persisted []Item
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, n)
	for _, it := range persisted {
		assert.True(t, it.Owned, "item %d lost its owned toggle", it.ID)
	}
}
