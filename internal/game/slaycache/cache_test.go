package slaycache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/model"
)

func ego(id int32, fs ...flags.Flag) *model.EgoItem {
	return &model.EgoItem{ID: id, Name: "ego", Flags: flags.Of(fs...)}
}

func testTemplates() []*model.EgoItem {
	return []*model.EgoItem{
		ego(1, model.OFBrandFire),
		ego(2, model.OFSlayOrc, model.OFLight),
		// no slay bits
		ego(3, model.OFLight),
		// 4 repeats 2 and 6 repeats 5 once masked
		ego(4, model.OFSlayOrc),
		ego(5, model.OFSlayEvil, model.OFSlayUndead),
		ego(6, model.OFSlayUndead, model.OFSlayEvil, model.OFBlessed),
	}
}

func TestBuild_DistinctCombinations(t *testing.T) {
	t.Parallel()

	c := Build(testTemplates(), model.SlayMask())

	require.Equal(t, 3, c.Len())
	entries := c.Entries()
	assert.Equal(t, flags.Of(model.OFBrandFire), entries[0].Flags)
	assert.Equal(t, flags.Of(model.OFSlayOrc), entries[1].Flags)
	assert.Equal(t, flags.Of(model.OFSlayEvil, model.OFSlayUndead), entries[2].Flags)

	for _, e := range entries {
		v, ok := c.Lookup(e.Flags)
		assert.True(t, ok)
		assert.Zero(t, v)
	}
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	c := Build(nil, model.SlayMask())
	assert.Zero(t, c.Len())
	v, ok := c.Lookup(flags.Of(model.OFSlayOrc))
	assert.False(t, ok)
	assert.Zero(t, v)
	_, ok = c.Lookup(flags.Set{})
	assert.False(t, ok)
}

func TestFill(t *testing.T) {
	t.Parallel()

	c := Build(testTemplates(), model.SlayMask())
	orc := flags.Of(model.OFSlayOrc)

	assert.True(t, c.Fill(orc, 250))
	v, ok := c.Lookup(orc)
	assert.True(t, ok)
	assert.Equal(t, int32(250), v)

	before := c.Entries()
	assert.False(t, c.Fill(flags.Of(model.OFKillDragon), 999), "absent combo")
	assert.False(t, c.Fill(flags.Of(model.OFSlayOrc, model.OFLight), 999), "unmasked combo is a different key")
	assert.Equal(t, before, c.Entries(), "failed fill changes nothing")
	assert.Equal(t, 3, c.Len())
}

func TestLookup_NotFound(t *testing.T) {
	t.Parallel()

	c := Build(testTemplates(), model.SlayMask())
	v, ok := c.Lookup(flags.Of(model.OFSlayDragon))
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestCompute(t *testing.T) {
	t.Parallel()

	c := Build(testTemplates(), model.SlayMask())
	var calls atomic.Int32

	err := c.Compute(context.Background(), 2, func(_ context.Context, combo flags.Set) (int32, error) {
		calls.Add(1)
		return int32(combo.Count() * 100), nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	v, _ := c.Lookup(flags.Of(model.OFSlayEvil, model.OFSlayUndead))
	assert.Equal(t, int32(200), v)
	v, _ = c.Lookup(flags.Of(model.OFBrandFire))
	assert.Equal(t, int32(100), v)
}

func TestCompute_Error(t *testing.T) {
	t.Parallel()

	c := Build(testTemplates(), model.SlayMask())
	boom := errors.New("boom")

	err := c.Compute(context.Background(), 0, func(_ context.Context, combo flags.Set) (int32, error) {
		if combo.Has(model.OFSlayOrc) {
			return 0, boom
		}
		return 1, nil
	})
	assert.ErrorIs(t, err, boom)
}
