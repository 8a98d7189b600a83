package data

import (
	"fmt"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/slays/internal/model"
)

// RaceTable хранит все расы монстров по ID.
var RaceTable map[int32]*model.Race

type raceYAML struct {
	ID    int32    `yaml:"id" validate:"min=1"`
	Name  string   `yaml:"name" validate:"required"`
	Base  string   `yaml:"base" validate:"required"`
	Flags []string `yaml:"flags"`
}

type monstersYAML struct {
	Bases []string   `yaml:"bases"`
	Races []raceYAML `yaml:"races"`
}

// ParseMonsterRaces decodes a monsters.yaml document.
func ParseMonsterRaces(raw []byte) (map[string]*model.MonsterBase, map[int32]*model.Race, error) {
	var doc monstersYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decoding monster races: %w", err)
	}

	bases := make(map[string]*model.MonsterBase, len(doc.Bases))
	for _, name := range doc.Bases {
		bases[name] = &model.MonsterBase{Name: name}
	}

	races := make(map[int32]*model.Race, len(doc.Races))
	for _, r := range doc.Races {
		if err := validate.Struct(r); err != nil {
			return nil, nil, fmt.Errorf("race %q: %w", r.Name, err)
		}
		base, ok := bases[r.Base]
		if !ok {
			return nil, nil, fmt.Errorf("race %q: unknown monster base %q", r.Name, r.Base)
		}
		if _, dup := races[r.ID]; dup {
			return nil, nil, fmt.Errorf("race %q: duplicate id %d", r.Name, r.ID)
		}
		race := &model.Race{ID: r.ID, Name: r.Name, Base: base}
		for _, fn := range r.Flags {
			f, ok := model.RaceFlagByName(fn)
			if !ok {
				return nil, nil, fmt.Errorf("race %q: flag %q: %w", r.Name, fn, ErrUnknownFlag)
			}
			race.Flags.On(f)
		}
		races[r.ID] = race
	}

	return bases, races, nil
}

// LoadMonsterRaces loads monsters.yaml into RaceTable. Races keep pointers
// to their bases, so no separate base table is kept.
func LoadMonsterRaces() error {
	raw, err := readGameData("monsters.yaml")
	if err != nil {
		return err
	}
	bases, races, err := ParseMonsterRaces(raw)
	if err != nil {
		return fmt.Errorf("loading monster races: %w", err)
	}
	RaceTable = races

	slog.Info("loaded monster races", "bases", len(bases), "races", len(races))
	return nil
}

// GetRace returns a race by ID, or nil.
func GetRace(id int32) *model.Race {
	if RaceTable == nil {
		return nil
	}
	return RaceTable[id]
}

// AllRaces returns every loaded race ordered by ID.
func AllRaces() []*model.Race {
	out := make([]*model.Race, 0, len(RaceTable))
	for _, r := range RaceTable {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *model.Race) int { return int(a.ID - b.ID) })
	return out
}
