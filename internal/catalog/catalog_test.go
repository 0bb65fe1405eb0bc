package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
	"github.com/hiroaqii/bgg-shelf/internal/query"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

// fakeSource answers from fixed tables. A query listed in gates blocks
// until its channel is closed.
type fakeSource struct {
	mu         sync.Mutex
	hot        []bgg.TrendingSummary
	hotErr     error
	searchHits map[string][]int
	searchErr  error
	thingsErr  error
	gates      map[string]chan struct{}
	thingCalls [][]int
}

func (f *fakeSource) Hot(ctx context.Context) ([]bgg.TrendingSummary, error) {
	return f.hot, f.hotErr
}

func (f *fakeSource) SearchIDs(ctx context.Context, q string, limit int) ([]int, error) {
	f.mu.Lock()
	gate := f.gates[q]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	ids := f.searchHits[q]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeSource) Things(ctx context.Context, ids []int) ([]bgg.CatalogEntry, error) {
	f.mu.Lock()
	f.thingCalls = append(f.thingCalls, ids)
	f.mu.Unlock()
	if f.thingsErr != nil {
		return nil, f.thingsErr
	}
	out := make([]bgg.CatalogEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, bgg.CatalogEntry{ID: id, MinPlayers: 1, MaxPlayers: 4, Rank: id})
	}
	return out, nil
}

func activeIDs(s *Store) []int {
	var out []int
	for _, e := range s.Active() {
		out = append(out, e.ID)
	}
	return out
}

func newService(src Source) *Service {
	return NewService(src, NewStore(query.NewEngine("en"), discard), []int{1, 2, 3}, discard)
}

func TestStore_StaleTokenDiscarded(t *testing.T) {
	s := NewStore(nil, discard)

	first := s.Begin()
	second := s.Begin()

	assert.True(t, s.ApplyActive(second, []bgg.CatalogEntry{{ID: 2}}))
	assert.False(t, s.ApplyActive(first, []bgg.CatalogEntry{{ID: 1}}))
	assert.Equal(t, []int{2}, activeIDs(s))
}

func TestStore_TrendingSlotIsIndependent(t *testing.T) {
	s := NewStore(nil, discard)

	trendTok := s.BeginTrending()
	_ = s.Begin()

	assert.True(t, s.ApplyTrending(trendTok, []bgg.TrendingSummary{{ID: 9, Rank: 1}}))
	require.Len(t, s.Trending(), 1)
}

func TestStore_DedupeKeepsFirstPosition(t *testing.T) {
	s := NewStore(nil, discard)
	tok := s.Begin()

	s.ApplyActive(tok, []bgg.CatalogEntry{
		{ID: 1, Name: "old"},
		{ID: 2},
		{ID: 1, Name: "new"},
	})

	active := s.Active()
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, "new", active[0].Name)

	e, ok := s.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "new", e.Name)
}

func TestStore_EntriesAndHasMore(t *testing.T) {
	s := NewStore(nil, discard)
	tok := s.Begin()

	entries := make([]bgg.CatalogEntry, 20)
	for i := range entries {
		entries[i] = bgg.CatalogEntry{ID: i + 1, Rank: 20 - i, MinPlayers: 1, MaxPlayers: 2 + i%3}
	}
	s.ApplyActive(tok, entries)

	page0 := s.Entries(query.FilterSpec{}, query.SortRank, 0)
	require.Len(t, page0, query.PageSize)
	assert.Equal(t, 20, page0[0].ID)
	assert.True(t, s.HasMore(query.FilterSpec{}, 0))
	assert.False(t, s.HasMore(query.FilterSpec{}, 1))

	spec := query.FilterSpec{MinPlayers: query.Int(4)}
	assert.Len(t, s.Entries(spec, query.SortRank, 0), 6)
	assert.False(t, s.HasMore(spec, 0))
}

func TestService_LoadInitial(t *testing.T) {
	src := &fakeSource{hot: []bgg.TrendingSummary{{ID: 5, Rank: 1}}}
	svc := newService(src)

	require.NoError(t, svc.LoadInitial(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, activeIDs(svc.Store()))
	assert.Len(t, svc.Store().Trending(), 1)
}

func TestService_LoadInitialPartialFailure(t *testing.T) {
	src := &fakeSource{hotErr: errors.New("boom")}
	svc := newService(src)

	err := svc.LoadInitial(context.Background())
	require.Error(t, err)
	assert.Equal(t, []int{1, 2, 3}, activeIDs(svc.Store()), "top games still applied")
	assert.Empty(t, svc.Store().Trending())
}

func TestService_Search(t *testing.T) {
	src := &fakeSource{searchHits: map[string][]int{"catan": {13, 27710}}}
	svc := newService(src)

	applied, err := svc.Search(context.Background(), "  catan ")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []int{13, 27710}, activeIDs(svc.Store()))
}

func TestService_SearchNoHitsEmptiesActive(t *testing.T) {
	src := &fakeSource{searchHits: map[string][]int{}}
	svc := newService(src)
	require.NoError(t, svc.LoadInitial(context.Background()))

	applied, err := svc.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Empty(t, svc.Store().Active())
}

func TestService_SearchLimitsDetails(t *testing.T) {
	hits := make([]int, 45)
	for i := range hits {
		hits[i] = i + 100
	}
	src := &fakeSource{searchHits: map[string][]int{"big": hits}}
	svc := newService(src)

	_, err := svc.Search(context.Background(), "big")
	require.NoError(t, err)
	assert.Len(t, svc.Store().Active(), bgg.SearchDetailLimit)
}

func TestService_BlankSearchResetsToTop(t *testing.T) {
	src := &fakeSource{searchHits: map[string][]int{"catan": {13}}}
	svc := newService(src)

	_, err := svc.Search(context.Background(), "catan")
	require.NoError(t, err)

	applied, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []int{1, 2, 3}, activeIDs(svc.Store()))
}

func TestService_StaleSearchAfterResetIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{
		searchHits: map[string][]int{"slow": {42}},
		gates:      map[string]chan struct{}{"slow": gate},
	}
	svc := newService(src)

	type result struct {
		applied bool
		err     error
	}
	done := make(chan result, 1)
	go func() {
		applied, err := svc.Search(context.Background(), "slow")
		done <- result{applied, err}
	}()

	// Wait until the slow search has taken its token.
	require.Eventually(t, func() bool {
		svc.store.mu.RLock()
		defer svc.store.mu.RUnlock()
		return svc.store.activeGen == 1
	}, timeout, tick)

	applied, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.True(t, applied)

	close(gate)
	res := <-done
	require.NoError(t, res.err)
	assert.False(t, res.applied)
	assert.Equal(t, []int{1, 2, 3}, activeIDs(svc.Store()))
}

func TestService_ErrorKeepsPreviousState(t *testing.T) {
	src := &fakeSource{searchHits: map[string][]int{"catan": {13}}}
	svc := newService(src)
	_, err := svc.Search(context.Background(), "catan")
	require.NoError(t, err)

	src.thingsErr = &bgg.NetworkError{Message: "unexpected status code: 503", StatusCode: 503}
	_, err = svc.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, bgg.IsTransport(err))
	assert.Equal(t, "BoardGameGeek request failed (HTTP 503).", bgg.Describe(err))
	assert.Equal(t, []int{13}, activeIDs(svc.Store()))

	src.thingsErr = nil
	src.searchErr = &bgg.AuthRejectedError{Message: "invalid or expired token", StatusCode: 401}
	_, err = svc.Search(context.Background(), "other")
	require.Error(t, err)
	assert.True(t, bgg.IsAuthRejected(err))
	assert.Equal(t, []int{13}, activeIDs(svc.Store()))
}

func TestService_RefreshTrending(t *testing.T) {
	src := &fakeSource{hot: []bgg.TrendingSummary{{ID: 1, Rank: 1}, {ID: 2, Rank: 2}}}
	svc := newService(src)

	applied, err := svc.RefreshTrending(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, svc.Store().Trending(), 2)
}

func TestService_GameUsesActiveSetFirst(t *testing.T) {
	src := &fakeSource{}
	svc := newService(src)
	require.NoError(t, svc.LoadInitial(context.Background()))
	calls := len(src.thingCalls)

	e, err := svc.Game(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, e.ID)
	assert.Len(t, src.thingCalls, calls)

	e, err = svc.Game(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, 77, e.ID)
	assert.Equal(t, []int{77}, src.thingCalls[len(src.thingCalls)-1])
	assert.NotContains(t, activeIDs(svc.Store()), 77)
}

func TestService_GameNotFound(t *testing.T) {
	src := &emptySource{}
	svc := newService(src)

	_, err := svc.Game(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GameFetchError(t *testing.T) {
	svc := newService(&fakeSource{thingsErr: errors.New("offline")})

	_, err := svc.Game(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type emptySource struct{ fakeSource }

func (*emptySource) Things(context.Context, []int) ([]bgg.CatalogEntry, error) {
	return nil, nil
}
