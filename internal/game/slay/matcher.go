// Package slay resolves slays and brands: which catalog entries a flag-set
// carries, which property of an item wins against a monster, and what the
// player learns from it.
package slay

import (
	"errors"
	"math/rand/v2"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/flags"
)

// ErrNoEligibleSlay is returned by Random when the mask selects no catalog entry.
var ErrNoEligibleSlay = errors.New("no eligible slay in mask")

// RNG источник равномерных случайных чисел для Random.
// *rand.Rand from math/rand/v2 satisfies it.
type RNG interface {
	IntN(n int) int
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// Info is the display information of one catalog slay.
type Info struct {
	Desc  string
	Brand string
	Mult  int
}

// Matcher отвечает на вопросы к каталогу по наборам объектных флагов.
type Matcher struct {
	cat *data.SlayCatalog
	rng RNG
}

// NewMatcher creates a Matcher over cat. A nil rng uses the math/rand/v2 global source.
func NewMatcher(cat *data.SlayCatalog, rng RNG) *Matcher {
	if rng == nil {
		rng = globalRNG{}
	}
	return &Matcher{cat: cat, rng: rng}
}

// Catalog returns the catalog the matcher reads.
func (m *Matcher) Catalog() *data.SlayCatalog { return m.cat }

// Dedup clears, for every pair of present slays sharing monster flag and
// resist flag but not multiplier, the bit of the lower multiplier.
// Equal multipliers are left alone. Returns how many bits were cleared.
// Dedup(Dedup(f)) == Dedup(f).
func (m *Matcher) Dedup(f *flags.Set) int {
	all := m.cat.All()
	count := 0

	for i := 1; i < len(all); i++ {
		s := &all[i]
		for j := i + 1; j < len(all) && f.Has(s.ObjectFlag); j++ {
			t := &all[j]
			if !f.Has(t.ObjectFlag) ||
				t.MonsterFlag != s.MonsterFlag ||
				t.ResistFlag != s.ResistFlag ||
				t.Mult == s.Mult {
				continue
			}
			count++
			if t.Mult > s.Mult {
				f.Off(s.ObjectFlag)
			} else {
				f.Off(t.ObjectFlag)
			}
		}
	}

	return count
}

// List returns, ascending by catalog ID, the slays present in both of and
// mask. With dedup set, redundant slays are removed first.
func (m *Matcher) List(of, mask flags.Set, dedup bool) []int {
	f := of.Intersect(mask)
	if dedup {
		m.Dedup(&f)
	}

	all := m.cat.All()
	ids := make([]int, 0, f.Count())
	for i := 1; i < len(all); i++ {
		if f.Has(all[i].ObjectFlag) {
			ids = append(ids, i)
		}
	}
	return ids
}

// CollectInfo returns display info for ids as produced by List.
// Zero and unknown IDs are skipped, so the result may be shorter than ids.
func (m *Matcher) CollectInfo(ids []int) []Info {
	out := make([]Info, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		s := m.cat.Slay(id)
		if s == nil {
			continue
		}
		out = append(out, Info{Desc: s.Desc, Brand: s.Brand, Mult: s.Mult})
	}
	return out
}

// Random picks uniformly one catalog slay whose object flag is in mask.
// The null entry is never picked.
func (m *Matcher) Random(mask flags.Set) (*data.SlayDef, error) {
	all := m.cat.All()
	eligible := make([]int, 0, len(all))
	for i := 1; i < len(all); i++ {
		if mask.Has(all[i].ObjectFlag) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleSlay
	}
	return m.cat.Slay(eligible[m.rng.IntN(len(eligible))]), nil
}

// FromObjectFlag returns the catalog slay carried by object flag f, or nil.
func (m *Matcher) FromObjectFlag(f flags.Flag) *data.SlayDef {
	all := m.cat.All()
	for i := 1; i < len(all); i++ {
		if all[i].ObjectFlag == f {
			return &all[i]
		}
	}
	return nil
}
