package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/game/slay"
	"github.com/udisondev/slays/internal/lore"
	"github.com/udisondev/slays/internal/model"
	"github.com/udisondev/slays/internal/notify"
)

// Scenario is a list of attacks played in order. Weapons are made once per
// ego, so what one attack teaches is known to the next.
type Scenario struct {
	Attacks []Attack `yaml:"attacks" validate:"required,min=1,dive"`
}

// Attack is one line of a scenario.
type Attack struct {
	Ego       int32 `yaml:"ego" validate:"required,gt=0"`
	Race      int32 `yaml:"race" validate:"required,gt=0"`
	Visible   *bool `yaml:"visible"`
	Real      bool  `yaml:"real"`
	KnownOnly bool  `yaml:"known_only"`
	Repeat    int   `yaml:"repeat" validate:"gte=0"`
}

var validate = validator.New()

// ParseScenario decodes and validates a scenario.
func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := validate.Struct(&sc); err != nil {
		return nil, fmt.Errorf("validating scenario: %w", err)
	}
	return &sc, nil
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return ParseScenario(raw)
}

// Player проигрывает сценарии на загруженных игровых данных.
type Player struct {
	cat     *data.SlayCatalog
	book    *lore.Book
	journal *notify.Journal
	weapons map[int32]*model.Item

	race func(int32) *model.Race
	ego  func(int32) *model.EgoItem
}

// NewPlayer creates a Player with an in-memory lore book.
func NewPlayer(cat *data.SlayCatalog, race func(int32) *model.Race, ego func(int32) *model.EgoItem) (*Player, error) {
	book, err := lore.NewBook(nil, 64)
	if err != nil {
		return nil, err
	}
	return &Player{
		cat:     cat,
		book:    book,
		journal: notify.NewJournal(notify.DefaultCapacity),
		weapons: make(map[int32]*model.Item),
		race:    race,
		ego:     ego,
	}, nil
}

func (p *Player) weapon(egoID int32) (*model.Item, error) {
	if it, ok := p.weapons[egoID]; ok {
		return it, nil
	}
	ego := p.ego(egoID)
	if ego == nil {
		return nil, fmt.Errorf("ego %d not found", egoID)
	}
	it := model.NewEgoItem("Sword", ego)
	p.weapons[egoID] = it
	return it, nil
}

// Play runs every attack and writes one line per blow to w.
func (p *Player) Play(sc *Scenario, w io.Writer) error {
	res := slay.NewResolver(p.cat, p.journal, p.book)

	for i, a := range sc.Attacks {
		item, err := p.weapon(a.Ego)
		if err != nil {
			return fmt.Errorf("attack %d: %w", i+1, err)
		}
		race := p.race(a.Race)
		if race == nil {
			return fmt.Errorf("attack %d: race %d not found", i+1, a.Race)
		}
		mon := model.NewMonster(race)
		if a.Visible != nil {
			mon.Visible = *a.Visible
		}

		for range max(a.Repeat, 1) {
			seen := p.journal.Total()
			r := res.Resolve(item, mon, a.Real, a.KnownOnly)

			verb := r.Verb
			if verb == "" {
				verb = "hit"
			}
			fmt.Fprintf(w, "%-28s vs %-26s %-6s x%d  %s\n",
				item.Name()+" "+item.Ego().Name, race.Name, r.Source(), r.Multiplier(), verb)
			for _, m := range p.journal.Since(seen) {
				fmt.Fprintf(w, "    %s\n", m)
			}
		}
	}
	return nil
}

// Lore returns what has been learned about a race.
func (p *Player) Lore(race *model.Race) *lore.Record {
	return p.book.Lore(race)
}
