package slay

import (
	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/model"
)

// CatalogApplies reports whether a catalog slay hurts race: the race carries
// its monster flag, or it is a brand the race does not resist.
func CatalogApplies(def *data.SlayDef, race *model.Race) bool {
	if race.Flags.Has(def.MonsterFlag) {
		return true
	}
	return def.ResistFlag != flags.None && !race.Flags.Has(def.ResistFlag)
}

// Power scores a slay combination for item valuation: the best catalog
// multiplier against each race, averaged over races and scaled by 100.
// A combination that helps against nothing scores 100.
func (m *Matcher) Power(combo flags.Set, races []*model.Race) int32 {
	if len(races) == 0 {
		return 0
	}

	ids := m.List(combo, model.SlayMask(), true)
	total := 0
	for _, race := range races {
		best := 1
		for _, id := range ids {
			def := m.cat.Slay(id)
			if def.Mult > best && CatalogApplies(def, race) {
				best = def.Mult
			}
		}
		total += best * 100
	}
	return int32(total / len(races))
}
