package slay

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/model"
)

// subsets yields every combination of the test catalog's object flags.
func subsets() []flags.Set {
	ofs := testObjectFlags()
	out := make([]flags.Set, 0, 1<<len(ofs))
	for mask := 0; mask < 1<<len(ofs); mask++ {
		var s flags.Set
		for i, f := range ofs {
			if mask&(1<<i) != 0 {
				s.On(f)
			}
		}
		out = append(out, s)
	}
	return out
}

func TestDedup_TwoOrcSlays(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	f := flags.Of(model.OFSlayOrc, model.OFKillDemon) // ORC x2 and ORC x5
	n := m.Dedup(&f)

	assert.Equal(t, 1, n)
	assert.Equal(t, flags.Of(model.OFKillDemon), f)
}

func TestDedup_ThreeOfAGroup(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	f := flags.Of(model.OFSlayOrc, model.OFSlayTroll, model.OFKillDemon)
	n := m.Dedup(&f)

	assert.Equal(t, 2, n)
	assert.Equal(t, flags.Of(model.OFKillDemon), f)
}

func TestDedup_TiesSurvive(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	f := flags.Of(model.OFSlayEvil, model.OFSlayAnimal)
	assert.Equal(t, 0, m.Dedup(&f))
	assert.Equal(t, flags.Of(model.OFSlayEvil, model.OFSlayAnimal), f)
}

func TestDedup_Idempotent(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	for _, f := range subsets() {
		once := f
		m.Dedup(&once)
		twice := once
		assert.Equal(t, 0, m.Dedup(&twice), "second pass cleared bits for %s", f)
		assert.Equal(t, once, twice)
	}
}

func TestDedup_ClearsAllButBestOfEachGroup(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	type group struct{ mf, rf flags.Flag }

	for _, f := range subsets() {
		present := make(map[group][]data.SlayDef)
		for _, s := range testSlays {
			if f.Has(s.ObjectFlag) {
				g := group{s.MonsterFlag, s.ResistFlag}
				present[g] = append(present[g], s)
			}
		}

		want := 0
		wantSet := f
		for _, defs := range present {
			best := 0
			for _, d := range defs {
				best = max(best, d.Mult)
			}
			for _, d := range defs {
				if d.Mult < best {
					want++
					wantSet.Off(d.ObjectFlag)
				}
			}
		}

		got := f
		assert.Equal(t, want, m.Dedup(&got), "count for %s", f)
		assert.Equal(t, wantSet, got, "survivors for %s", f)
	}
}

func TestList(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	of := flags.Of(model.OFSlayOrc, model.OFBrandFire, model.OFKillDemon, model.OFLight)
	mask := model.SlayMask()

	assert.Equal(t, []int{1, 3, 7}, m.List(of, mask, false))
	assert.Equal(t, []int{3, 7}, m.List(of, mask, true))
	assert.Equal(t, []int{3}, m.List(of, flags.Of(model.OFBrandFire), false))
	assert.Empty(t, m.List(flags.Set{}, mask, false))
}

func TestList_DedupIsSubset(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)
	mask := flags.Of(model.OFSlayOrc, model.OFSlayTroll, model.OFKillDemon, model.OFSlayEvil, model.OFSlayAnimal)

	for _, f := range subsets() {
		plain := m.List(f, mask, false)
		for _, id := range plain {
			assert.True(t, f.Has(testSlays[id-1].ObjectFlag))
			assert.True(t, mask.Has(testSlays[id-1].ObjectFlag))
		}
		assert.True(t, slices.IsSorted(plain))

		for _, id := range m.List(f, mask, true) {
			assert.Contains(t, plain, id)
		}
	}
}

func TestCollectInfo_SkipsNull(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	info := m.CollectInfo([]int{0, 3, 0, 8, 42})
	require.Len(t, info, 2)
	assert.Equal(t, Info{Desc: "creatures not resistant to fire", Brand: "flames", Mult: 3}, info[0])
	assert.Equal(t, Info{Desc: "dragons", Mult: 5}, info[1])
}

type lastRNG struct{}

func (lastRNG) IntN(n int) int { return n - 1 }

func TestRandom(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t, lastRNG{})
	s, err := m.Random(flags.Of(model.OFSlayOrc, model.OFKillDragon, model.OFLight))
	require.NoError(t, err)
	assert.Equal(t, 8, s.ID)

	seeded := newTestMatcher(t, rand.New(rand.NewPCG(1, 2)))
	mask := flags.Of(model.OFBrandFire, model.OFBrandWarm)
	seen := make(map[int]bool)
	for range 200 {
		s, err := seeded.Random(mask)
		require.NoError(t, err)
		require.NotZero(t, s.ID)
		require.True(t, mask.Has(s.ObjectFlag))
		seen[s.ID] = true
	}
	assert.Len(t, seen, 2, "both eligible entries get picked")
}

func TestRandom_NoEligible(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	_, err := m.Random(flags.Of(model.OFLight))
	assert.ErrorIs(t, err, ErrNoEligibleSlay)

	_, err = m.Random(flags.Set{})
	assert.ErrorIs(t, err, ErrNoEligibleSlay)
}

func TestFromObjectFlag(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	s := m.FromObjectFlag(model.OFKillDragon)
	require.NotNil(t, s)
	assert.Equal(t, "DRAGON_5", s.Name)
	assert.Nil(t, m.FromObjectFlag(model.OFLight))
	assert.Nil(t, m.FromObjectFlag(model.OFNone))
}

func TestPower(t *testing.T) {
	t.Parallel()
	m := newTestMatcher(t, nil)

	races := []*model.Race{
		{ID: 1, Base: orcBase, Flags: flags.Of(model.RFOrc)},
		{ID: 2, Base: dragonBase, Flags: flags.Of(model.RFDragon, model.RFImFire)},
		{ID: 3, Base: personBase},
	}

	combo := flags.Of(model.OFKillDemon, model.OFBrandFire, model.OFSlayOrc)
	// orc: x5, dragon resists fire: x1, person: fire x3
	assert.Equal(t, int32(300), m.Power(combo, races))
	assert.Equal(t, int32(100), m.Power(flags.Of(model.OFLight), races))
	assert.Equal(t, int32(0), m.Power(combo, nil))
}
