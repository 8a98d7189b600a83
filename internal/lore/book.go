package lore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/metrics"
	"github.com/udisondev/slays/internal/model"
)

// LoadTimeout bounds the repository read Lore does when a race is not in memory.
const LoadTimeout = 2 * time.Second

// Repository stores lore between runs.
type Repository interface {
	// Load returns the stored flags of a race; ok is false when nothing is stored.
	Load(ctx context.Context, raceID int32) (f flags.Set, ok bool, err error)
	// Merge ORs f into the stored flags of a race.
	Merge(ctx context.Context, raceID int32, f flags.Set) error
	// Delete removes the stored flags of a race.
	Delete(ctx context.Context, raceID int32) error
}

// Book выдаёт изменяемые записи lore по расам.
//
// Recently used records live in an LRU; records pushed out while still dirty
// are parked until Flush has written them. With no repository every record is
// kept in memory. With one, a clean record that falls out of the hot set is
// dropped and read back from the repository the next time it is asked for.
type Book struct {
	repo Repository

	mu     sync.Mutex
	hot    *lru.Cache[int32, *Record]
	parked map[int32]*Record
}

// NewBook creates a Book with room for size hot records. repo may be nil.
func NewBook(repo Repository, size int) (*Book, error) {
	b := &Book{
		repo:   repo,
		parked: make(map[int32]*Record),
	}
	hot, err := lru.NewWithEvict[int32, *Record](size, b.onEvict)
	if err != nil {
		return nil, fmt.Errorf("creating lore cache: %w", err)
	}
	b.hot = hot
	return b, nil
}

// onEvict runs synchronously inside hot.Add, which is only called with b.mu held.
func (b *Book) onEvict(raceID int32, rec *Record) {
	if b.repo == nil || rec.Dirty() {
		b.parked[raceID] = rec
	}
}

// lookup finds a record held in memory, moving a parked one back into the
// hot set. b.mu must be held.
func (b *Book) lookup(raceID int32) (*Record, bool) {
	if rec, ok := b.hot.Get(raceID); ok {
		return rec, true
	}
	if rec, ok := b.parked[raceID]; ok {
		delete(b.parked, raceID)
		b.hot.Add(raceID, rec)
		return rec, true
	}
	return nil, false
}

// adopt returns the in-memory record of a race, creating an empty one.
func (b *Book) adopt(raceID int32) *Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	if rec, ok := b.lookup(raceID); ok {
		return rec
	}
	rec := NewRecord(raceID)
	b.hot.Add(raceID, rec)
	return rec
}

// Lore returns the record of a race. A nil race gets a throwaway record.
// A read error is logged and the record holds only what is in memory.
func (b *Book) Lore(race *model.Race) *Record {
	if race == nil {
		return NewRecord(0)
	}
	ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
	defer cancel()

	rec, err := b.LoadRecord(ctx, race)
	if err != nil {
		slog.Warn("lore read failed, using memory only", "race", race.ID, "err", err)
	}
	return rec
}

// LoadRecord returns the record of a race, reading stored lore from the
// repository when the race is not held in memory. The record is returned
// even when the read fails.
func (b *Book) LoadRecord(ctx context.Context, race *model.Race) (*Record, error) {
	if race == nil {
		return NewRecord(0), nil
	}

	b.mu.Lock()
	rec, ok := b.lookup(race.ID)
	b.mu.Unlock()
	if ok {
		return rec, nil
	}
	if b.repo == nil {
		return b.adopt(race.ID), nil
	}

	// Чтение из БД без удержания b.mu; adopt перепроверяет память.
	stored, found, err := b.repo.Load(ctx, race.ID)
	rec = b.adopt(race.ID)
	if err != nil {
		return rec, fmt.Errorf("loading lore for race %d: %w", race.ID, err)
	}
	if found {
		rec.merge(stored)
	}
	return rec, nil
}

// Warm reads stored lore for races ahead of use. Races beyond the hot set
// size are read again on demand.
func (b *Book) Warm(ctx context.Context, races []*model.Race) error {
	if b.repo == nil {
		return nil
	}
	loaded := 0
	for _, race := range races {
		f, ok, err := b.repo.Load(ctx, race.ID)
		if err != nil {
			return fmt.Errorf("loading lore for race %d: %w", race.ID, err)
		}
		if !ok {
			continue
		}
		b.adopt(race.ID).merge(f)
		loaded++
	}
	slog.Info("lore warmed", "races", len(races), "stored", loaded)
	return nil
}

// Forget drops everything learned about a race, in memory and in the repository.
func (b *Book) Forget(ctx context.Context, raceID int32) error {
	b.mu.Lock()
	// Remove fires onEvict, which may park the record; clear parked after it.
	b.hot.Remove(raceID)
	delete(b.parked, raceID)
	b.mu.Unlock()

	if b.repo == nil {
		return nil
	}
	if err := b.repo.Delete(ctx, raceID); err != nil {
		return fmt.Errorf("forgetting lore for race %d: %w", raceID, err)
	}
	return nil
}

// Flush writes every dirty record to the repository.
// Records that fail to write stay dirty and are retried next time.
func (b *Book) Flush(ctx context.Context) error {
	if b.repo == nil {
		return nil
	}

	b.mu.Lock()
	pending := make([]*Record, 0, b.hot.Len()+len(b.parked))
	pending = append(pending, b.hot.Values()...)
	for _, rec := range b.parked {
		pending = append(pending, rec)
	}
	b.mu.Unlock()

	written := 0
	for i, rec := range pending {
		f, dirty := rec.takeDirty()
		if !dirty {
			continue
		}
		if err := b.repo.Merge(ctx, rec.RaceID(), f); err != nil {
			rec.markDirty()
			b.settle(pending[i:])
			metrics.LoreRecordsFlushed.Add(float64(written))
			return fmt.Errorf("flushing lore for race %d: %w", rec.RaceID(), err)
		}
		written++
	}
	b.settle(nil)

	metrics.LoreRecordsFlushed.Add(float64(written))
	slog.Debug("lore flushed", "records", written)
	return nil
}

// settle parks unwritten dirty records that left the hot set meanwhile and
// drops parked records that are now stored.
func (b *Book) settle(unwritten []*Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range unwritten {
		if !rec.Dirty() || b.hot.Contains(rec.RaceID()) {
			continue
		}
		b.parked[rec.RaceID()] = rec
	}
	for id, rec := range b.parked {
		if !rec.Dirty() {
			delete(b.parked, id)
		}
	}
}
