package model

import "github.com/udisondev/slays/internal/flags"

// MonsterBase is the broad family a race belongs to ("orc", "dragon").
type MonsterBase struct {
	Name string
}

// Race is a monster race template shared by every monster of that kind.
type Race struct {
	ID    int32
	Name  string
	Base  *MonsterBase
	Flags flags.Set
}

// BaseName returns the race's monster-base name, or "" if it has none.
func (r *Race) BaseName() string {
	if r == nil || r.Base == nil {
		return ""
	}
	return r.Base.Name
}

// Monster живой монстр, которого атакуют.
type Monster struct {
	Race *Race

	// Visible reports whether the player currently sees the monster.
	// Lore is only learned about visible monsters.
	Visible bool
}

// NewMonster creates a visible monster of the given race.
func NewMonster(race *Race) *Monster {
	return &Monster{Race: race, Visible: true}
}

// HasRaceFlag reports whether the monster's race carries f.
func (m *Monster) HasRaceFlag(f flags.Flag) bool {
	return m.Race != nil && m.Race.Flags.Has(f)
}
