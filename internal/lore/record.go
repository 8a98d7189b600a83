// Package lore keeps what the player has learned about monster races.
package lore

import (
	"sync"

	"github.com/udisondev/slays/internal/flags"
)

// Record is the lore of one monster race: the race flags the player has
// learned about it through combat.
type Record struct {
	raceID int32

	mu    sync.Mutex
	flags flags.Set
	dirty bool
}

// NewRecord создаёт пустую запись для расы.
func NewRecord(raceID int32) *Record {
	return &Record{raceID: raceID}
}

// RaceID returns the race the record describes.
func (r *Record) RaceID() int32 { return r.raceID }

// Learn records flag f as learned. Returns true if it was new.
func (r *Record) Learn(f flags.Flag) bool {
	if f == flags.None {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flags.Has(f) {
		return false
	}
	r.flags.On(f)
	r.dirty = true
	return true
}

// Knows reports whether flag f has been learned.
func (r *Record) Knows(f flags.Flag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flags.Has(f)
}

// Flags returns a copy of the learned flags.
func (r *Record) Flags() flags.Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flags
}

// Dirty reports whether the record has flags not yet flushed.
func (r *Record) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

// merge adds stored flags without marking the record dirty.
func (r *Record) merge(f flags.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags.Union(f)
}

// takeDirty returns the flags to write and clears the dirty mark.
func (r *Record) takeDirty() (flags.Set, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.dirty {
		return flags.Set{}, false
	}
	r.dirty = false
	return r.flags, true
}

func (r *Record) markDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirty = true
}
