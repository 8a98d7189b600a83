package slay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/lore"
	"github.com/udisondev/slays/internal/model"
)

// testSlays has two ORC groups of different multipliers, an EVIL tie and a
// FIRE brand pair, so every dedup branch is reachable.
var testSlays = []data.SlayDef{
	{ID: 1, Name: "ORC_2", ObjectFlag: model.OFSlayOrc, MonsterFlag: model.RFOrc, Mult: 2, Desc: "orcs"},
	{ID: 2, Name: "EVIL_2", ObjectFlag: model.OFSlayEvil, MonsterFlag: model.RFEvil, Mult: 2, Desc: "evil creatures"},
	{ID: 3, Name: "FIRE_3", ObjectFlag: model.OFBrandFire, ResistFlag: model.RFImFire, Mult: 3, Desc: "creatures not resistant to fire", Brand: "flames"},
	{ID: 4, Name: "ORC_3", ObjectFlag: model.OFSlayTroll, MonsterFlag: model.RFOrc, Mult: 3, Desc: "orcs"},
	{ID: 5, Name: "DRAGON_3", ObjectFlag: model.OFSlayDragon, MonsterFlag: model.RFDragon, Mult: 3, Desc: "dragons"},
	{ID: 6, Name: "FIRE_2", ObjectFlag: model.OFBrandWarm, ResistFlag: model.RFImFire, Mult: 2, Desc: "creatures not resistant to fire", Brand: "weak flames"},
	{ID: 7, Name: "ORC_5", ObjectFlag: model.OFKillDemon, MonsterFlag: model.RFOrc, Mult: 5, Desc: "orcs"},
	{ID: 8, Name: "DRAGON_5", ObjectFlag: model.OFKillDragon, MonsterFlag: model.RFDragon, Mult: 5, Desc: "dragons"},
	{ID: 9, Name: "EVIL_2B", ObjectFlag: model.OFSlayAnimal, MonsterFlag: model.RFEvil, Mult: 2, Desc: "evil creatures"},
}

func newTestMatcher(t *testing.T, rng RNG) *Matcher {
	t.Helper()
	return NewMatcher(data.MustSlayCatalog(testSlays), rng)
}

func testObjectFlags() []flags.Flag {
	out := make([]flags.Flag, 0, len(testSlays))
	for _, s := range testSlays {
		out = append(out, s.ObjectFlag)
	}
	return out
}

type fakeIdent struct {
	noticed  int
	messages []string
}

func (f *fakeIdent) NoticeEgo(item *model.Item) { f.noticed++; item.SetEgoKnown() }
func (f *fakeIdent) Describe(item *model.Item) string { return item.Name() }
func (f *fakeIdent) Message(text string) { f.messages = append(f.messages, text) }

type fixture struct {
	resolver *Resolver
	ident    *fakeIdent
	book     *lore.Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	book, err := lore.NewBook(nil, 16)
	require.NoError(t, err)
	ident := &fakeIdent{}
	return &fixture{
		resolver: NewResolver(data.MustSlayCatalog(testSlays), ident, book),
		ident:    ident,
		book:     book,
	}
}

var (
	orcBase    = &model.MonsterBase{Name: "orc"}
	dragonBase = &model.MonsterBase{Name: "dragon"}
	personBase = &model.MonsterBase{Name: "person"}
)

func newMonster(id int32, base *model.MonsterBase, rf ...flags.Flag) *model.Monster {
	return model.NewMonster(&model.Race{ID: id, Name: base.Name, Base: base, Flags: flags.Of(rf...)})
}

func itemWith(brands []*model.Brand, slays []*model.Slay) *model.Item {
	it := model.NewItem("Dagger", flags.Set{})
	it.AddBrands(brands)
	it.AddSlays(slays)
	return it
}
