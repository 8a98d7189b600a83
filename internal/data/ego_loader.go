package data

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/slays/internal/model"
)

// EgoTable holds ego templates in file order.
var EgoTable []*model.EgoItem

type egoBrandYAML struct {
	Name       string `yaml:"name" validate:"required"`
	Element    string `yaml:"element" validate:"required,oneof=acid elec fire cold pois"`
	Multiplier int    `yaml:"multiplier" validate:"min=1"`
}

type egoSlayYAML struct {
	Base       string `yaml:"base" validate:"required"`
	RaceFlag   string `yaml:"race_flag" validate:"required"`
	Multiplier int    `yaml:"multiplier" validate:"min=1"`
}

type egoYAML struct {
	ID     int32          `yaml:"id" validate:"min=1"`
	Name   string         `yaml:"name" validate:"required"`
	Flags  []string       `yaml:"flags"`
	Brands []egoBrandYAML `yaml:"brands" validate:"dive"`
	Slays  []egoSlayYAML  `yaml:"slays" validate:"dive"`
}

type egosYAML struct {
	Egos []egoYAML `yaml:"egos"`
}

// ParseEgoItems decodes an egos.yaml document.
func ParseEgoItems(raw []byte) ([]*model.EgoItem, error) {
	var doc egosYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding ego items: %w", err)
	}

	out := make([]*model.EgoItem, 0, len(doc.Egos))
	for _, e := range doc.Egos {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("ego %q: %w", e.Name, err)
		}
		ego := &model.EgoItem{ID: e.ID, Name: e.Name}
		for _, fn := range e.Flags {
			f, ok := model.ObjectFlagByName(fn)
			if !ok {
				return nil, fmt.Errorf("ego %q: flag %q: %w", e.Name, fn, ErrUnknownFlag)
			}
			ego.Flags.On(f)
		}
		for _, b := range e.Brands {
			el, _ := model.ElementByName(b.Element)
			ego.Brands = append(ego.Brands, &model.Brand{
				Name:       b.Name,
				Element:    el,
				Multiplier: b.Multiplier,
			})
		}
		for _, s := range e.Slays {
			rf, ok := model.RaceFlagByName(s.RaceFlag)
			if !ok {
				return nil, fmt.Errorf("ego %q: race flag %q: %w", e.Name, s.RaceFlag, ErrUnknownFlag)
			}
			ego.Slays = append(ego.Slays, &model.Slay{
				Base:       s.Base,
				RaceFlag:   rf,
				Multiplier: s.Multiplier,
			})
		}
		out = append(out, ego)
	}
	return out, nil
}

// LoadEgoItems loads egos.yaml into EgoTable.
func LoadEgoItems() error {
	raw, err := readGameData("egos.yaml")
	if err != nil {
		return err
	}
	egos, err := ParseEgoItems(raw)
	if err != nil {
		return fmt.Errorf("loading ego items: %w", err)
	}
	EgoTable = egos

	slog.Info("loaded ego items", "count", len(egos))
	return nil
}

// GetEgoItem returns an ego template by ID, or nil.
func GetEgoItem(id int32) *model.EgoItem {
	for _, e := range EgoTable {
		if e.ID == id {
			return e
		}
	}
	return nil
}
