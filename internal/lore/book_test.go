package lore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/model"
)

type fakeRepo struct {
	mu      sync.Mutex
	stored  map[int32]flags.Set
	merges  int
	loads   int
	failFor int32
	loadErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: make(map[int32]flags.Set)}
}

func (r *fakeRepo) Load(_ context.Context, raceID int32) (flags.Set, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.loadErr != nil {
		return flags.Set{}, false, r.loadErr
	}
	f, ok := r.stored[raceID]
	return f, ok, nil
}

func (r *fakeRepo) Delete(_ context.Context, raceID int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stored, raceID)
	return nil
}

func (r *fakeRepo) has(raceID int32, f flags.Flag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored[raceID].Has(f)
}

func (r *fakeRepo) Merge(_ context.Context, raceID int32, f flags.Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if raceID == r.failFor {
		return errors.New("boom")
	}
	cur := r.stored[raceID]
	cur.Union(f)
	r.stored[raceID] = cur
	r.merges++
	return nil
}

func race(id int32) *model.Race {
	return &model.Race{ID: id, Name: "r", Base: &model.MonsterBase{Name: "b"}}
}

func TestRecord_Learn(t *testing.T) {
	t.Parallel()

	rec := NewRecord(3)
	assert.False(t, rec.Dirty())
	assert.True(t, rec.Learn(model.RFImFire))
	assert.False(t, rec.Learn(model.RFImFire), "second learn is not new")
	assert.False(t, rec.Learn(flags.None))
	assert.True(t, rec.Knows(model.RFImFire))
	assert.True(t, rec.Dirty())
	assert.Equal(t, flags.Of(model.RFImFire), rec.Flags())
}

func TestBook_SameRecordPerRace(t *testing.T) {
	t.Parallel()

	b, err := NewBook(nil, 4)
	require.NoError(t, err)

	r1 := b.Lore(race(1))
	r1.Learn(model.RFOrc)
	assert.Same(t, r1, b.Lore(race(1)))
	assert.NotSame(t, r1, b.Lore(race(2)))
	assert.Equal(t, int32(0), b.Lore(nil).RaceID())
}

func TestBook_MemoryOnlyKeepsEvicted(t *testing.T) {
	t.Parallel()

	b, err := NewBook(nil, 1)
	require.NoError(t, err)

	r1 := b.Lore(race(1))
	r1.Learn(model.RFOrc)
	_ = b.Lore(race(2)) // pushes race 1 out of the hot set

	got := b.Lore(race(1))
	assert.Same(t, r1, got)
	assert.True(t, got.Knows(model.RFOrc))
}

func TestBook_FlushWritesDirtyOnly(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	b, err := NewBook(repo, 8)
	require.NoError(t, err)

	b.Lore(race(1)).Learn(model.RFImFire)
	_ = b.Lore(race(2))

	require.NoError(t, b.Flush(context.Background()))
	assert.Equal(t, 1, repo.merges)
	assert.Equal(t, flags.Of(model.RFImFire), repo.stored[1])
	assert.False(t, b.Lore(race(1)).Dirty())

	require.NoError(t, b.Flush(context.Background()))
	assert.Equal(t, 1, repo.merges, "nothing new to write")
}

func TestBook_FlushParkedRecords(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	b, err := NewBook(repo, 1)
	require.NoError(t, err)

	b.Lore(race(1)).Learn(model.RFEvil)
	b.Lore(race(2)).Learn(model.RFOrc) // race 1 parked while dirty

	require.NoError(t, b.Flush(context.Background()))
	assert.Equal(t, flags.Of(model.RFEvil), repo.stored[1])
	assert.Equal(t, flags.Of(model.RFOrc), repo.stored[2])
}

func TestBook_FlushFailureKeepsDirty(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.failFor = 1
	b, err := NewBook(repo, 8)
	require.NoError(t, err)

	rec := b.Lore(race(1))
	rec.Learn(model.RFDragon)

	assert.Error(t, b.Flush(context.Background()))
	assert.True(t, rec.Dirty())

	repo.failFor = 0
	require.NoError(t, b.Flush(context.Background()))
	assert.Equal(t, flags.Of(model.RFDragon), repo.stored[1])
}

func TestBook_Warm(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.stored[5] = flags.Of(model.RFImCold)
	b, err := NewBook(repo, 8)
	require.NoError(t, err)

	require.NoError(t, b.Warm(context.Background(), []*model.Race{race(5), race(6)}))
	rec := b.Lore(race(5))
	assert.True(t, rec.Knows(model.RFImCold))
	assert.False(t, rec.Dirty(), "warmed flags are already stored")
}

func TestBook_EvictedRecordReloadsAfterFlush(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	b, err := NewBook(repo, 1)
	require.NoError(t, err)

	b.Lore(race(1)).Learn(model.RFOrc)
	_ = b.Lore(race(2)) // race 1 parked while dirty

	require.NoError(t, b.Flush(context.Background()))
	require.True(t, repo.has(1, model.RFOrc))

	rec := b.Lore(race(1))
	assert.True(t, rec.Knows(model.RFOrc), "flushed lore is read back")
	assert.False(t, rec.Dirty())
}

func TestBook_CleanEvictedRecordReloads(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.stored[1] = flags.Of(model.RFEvil)
	b, err := NewBook(repo, 1)
	require.NoError(t, err)

	assert.True(t, b.Lore(race(1)).Knows(model.RFEvil))
	_ = b.Lore(race(2)) // clean race 1 dropped

	assert.True(t, b.Lore(race(1)).Knows(model.RFEvil))
	assert.Equal(t, 3, repo.loads)
}

func TestBook_WarmBeyondHotSet(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	races := []*model.Race{race(1), race(2), race(3)}
	for _, r := range races {
		repo.stored[r.ID] = flags.Of(model.RFImAcid)
	}
	b, err := NewBook(repo, 1)
	require.NoError(t, err)

	require.NoError(t, b.Warm(context.Background(), races))
	for _, r := range races {
		assert.True(t, b.Lore(r).Knows(model.RFImAcid), "race %d", r.ID)
	}
}

func TestBook_LoadRecordError(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.loadErr = errors.New("db down")
	b, err := NewBook(repo, 4)
	require.NoError(t, err)

	rec, err := b.LoadRecord(context.Background(), race(1))
	assert.Error(t, err)
	require.NotNil(t, rec)
	rec.Learn(model.RFTroll)

	// Once in memory the record no longer needs the repository.
	got, err := b.LoadRecord(context.Background(), race(1))
	require.NoError(t, err)
	assert.Same(t, rec, got)
	assert.Same(t, rec, b.Lore(race(1)))
}

func TestBook_LoadRecordNilRace(t *testing.T) {
	t.Parallel()

	b, err := NewBook(newFakeRepo(), 4)
	require.NoError(t, err)

	rec, err := b.LoadRecord(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(0), rec.RaceID())
}

func TestBook_Forget(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	b, err := NewBook(repo, 1)
	require.NoError(t, err)

	b.Lore(race(1)).Learn(model.RFGiant)
	require.NoError(t, b.Flush(context.Background()))
	b.Lore(race(1)).Learn(model.RFEvil)
	_ = b.Lore(race(2)) // race 1 parked while dirty

	require.NoError(t, b.Forget(context.Background(), 1))
	assert.False(t, repo.has(1, model.RFGiant))

	rec := b.Lore(race(1))
	assert.False(t, rec.Knows(model.RFGiant))
	assert.False(t, rec.Knows(model.RFEvil), "parked record is gone too")

	require.NoError(t, b.Flush(context.Background()))
	assert.False(t, repo.has(1, model.RFEvil))
}

func TestBook_ForgetMemoryOnly(t *testing.T) {
	t.Parallel()

	b, err := NewBook(nil, 4)
	require.NoError(t, err)

	b.Lore(race(1)).Learn(model.RFDemon)
	require.NoError(t, b.Forget(context.Background(), 1))
	assert.False(t, b.Lore(race(1)).Knows(model.RFDemon))
}
