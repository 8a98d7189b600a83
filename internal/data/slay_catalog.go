package data

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/slays/internal/flags"
	"github.com/udisondev/slays/internal/model"
)

// ErrUnknownFlag is returned when game data names a flag that does not exist.
var ErrUnknownFlag = errors.New("unknown flag")

var validate = validator.New()

// SlayDef is an immutable catalog entry: one kind of slay or brand.
// ID 0 is the null slay: it has no object flag and is never matched.
type SlayDef struct {
	ID          int
	Name        string
	ObjectFlag  flags.Flag
	MonsterFlag flags.Flag
	ResistFlag  flags.Flag
	Mult        int
	Desc        string
	Brand       string
}

// BrandDef holds the verbs and resistance for one element.
type BrandDef struct {
	Element       model.Element
	ActiveVerb    string
	MeleeVerb     string
	MeleeVerbWeak string
	ResistFlag    flags.Flag
}

// SlayCatalog is the immutable slay/brand registry. Built once, shared freely.
type SlayCatalog struct {
	slays  []SlayDef
	brands [model.ElementCount]BrandDef
}

// Slays глобальный каталог, заполняется LoadSlayCatalog.
var Slays *SlayCatalog

type slayDefYAML struct {
	ID          int    `yaml:"id" validate:"min=1"`
	Name        string `yaml:"name" validate:"required"`
	ObjectFlag  string `yaml:"object_flag" validate:"required"`
	MonsterFlag string `yaml:"monster_flag" validate:"required"`
	ResistFlag  string `yaml:"resist_flag" validate:"required"`
	Multiplier  int    `yaml:"multiplier" validate:"min=1"`
	Desc        string `yaml:"desc" validate:"required"`
	Brand       string `yaml:"brand"`
}

type brandDefYAML struct {
	Element       string `yaml:"element" validate:"required,oneof=acid elec fire cold pois"`
	ActiveVerb    string `yaml:"active_verb" validate:"required"`
	MeleeVerb     string `yaml:"melee_verb" validate:"required"`
	MeleeVerbWeak string `yaml:"melee_verb_weak" validate:"required"`
	ResistFlag    string `yaml:"resist_flag" validate:"required"`
}

type slayCatalogYAML struct {
	Slays  []slayDefYAML  `yaml:"slays"`
	Brands []brandDefYAML `yaml:"brands"`
}

// NewSlayCatalog builds a catalog from definitions. slays must not contain the
// null entry: it is prepended here, and slays[i] must carry ID i+1.
func NewSlayCatalog(slays []SlayDef, brands []BrandDef) (*SlayCatalog, error) {
	c := &SlayCatalog{slays: make([]SlayDef, 0, len(slays)+1)}
	c.slays = append(c.slays, SlayDef{Name: "NONE"})

	seen := make(map[flags.Flag]string, len(slays))
	for i, s := range slays {
		if s.ID != i+1 {
			return nil, fmt.Errorf("slay %q: id %d out of sequence, want %d", s.Name, s.ID, i+1)
		}
		if s.ObjectFlag == flags.None {
			return nil, fmt.Errorf("slay %q: object flag is required", s.Name)
		}
		if s.Mult < 1 {
			return nil, fmt.Errorf("slay %q: multiplier %d < 1", s.Name, s.Mult)
		}
		if prev, dup := seen[s.ObjectFlag]; dup {
			return nil, fmt.Errorf("slay %q: object flag %s already used by %q",
				s.Name, model.ObjectFlagName(s.ObjectFlag), prev)
		}
		seen[s.ObjectFlag] = s.Name
		c.slays = append(c.slays, s)
	}

	var have [model.ElementCount]bool
	for _, b := range brands {
		if b.Element >= model.ElementCount {
			return nil, fmt.Errorf("brand: element %d out of range", b.Element)
		}
		if have[b.Element] {
			return nil, fmt.Errorf("brand %s: defined twice", b.Element)
		}
		have[b.Element] = true
		c.brands[b.Element] = b
	}
	for e, ok := range have {
		if !ok {
			return nil, fmt.Errorf("brand %s: missing definition", model.Element(e))
		}
	}

	return c, nil
}

// ParseSlayCatalog decodes and validates a slays.yaml document.
func ParseSlayCatalog(raw []byte) (*SlayCatalog, error) {
	var doc slayCatalogYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding slay catalog: %w", err)
	}

	slays := make([]SlayDef, 0, len(doc.Slays))
	for _, s := range doc.Slays {
		if err := validate.Struct(s); err != nil {
			return nil, fmt.Errorf("slay %q: %w", s.Name, err)
		}
		of, ok := model.ObjectFlagByName(s.ObjectFlag)
		if !ok {
			return nil, fmt.Errorf("slay %q: object flag %q: %w", s.Name, s.ObjectFlag, ErrUnknownFlag)
		}
		mf, ok := model.RaceFlagByName(s.MonsterFlag)
		if !ok {
			return nil, fmt.Errorf("slay %q: monster flag %q: %w", s.Name, s.MonsterFlag, ErrUnknownFlag)
		}
		rf, ok := model.RaceFlagByName(s.ResistFlag)
		if !ok {
			return nil, fmt.Errorf("slay %q: resist flag %q: %w", s.Name, s.ResistFlag, ErrUnknownFlag)
		}
		slays = append(slays, SlayDef{
			ID:          s.ID,
			Name:        s.Name,
			ObjectFlag:  of,
			MonsterFlag: mf,
			ResistFlag:  rf,
			Mult:        s.Multiplier,
			Desc:        s.Desc,
			Brand:       s.Brand,
		})
	}

	brands := make([]BrandDef, 0, len(doc.Brands))
	for _, b := range doc.Brands {
		if err := validate.Struct(b); err != nil {
			return nil, fmt.Errorf("brand %q: %w", b.Element, err)
		}
		el, _ := model.ElementByName(b.Element)
		rf, ok := model.RaceFlagByName(b.ResistFlag)
		if !ok || rf == model.RFNone {
			return nil, fmt.Errorf("brand %q: resist flag %q: %w", b.Element, b.ResistFlag, ErrUnknownFlag)
		}
		brands = append(brands, BrandDef{
			Element:       el,
			ActiveVerb:    b.ActiveVerb,
			MeleeVerb:     b.MeleeVerb,
			MeleeVerbWeak: b.MeleeVerbWeak,
			ResistFlag:    rf,
		})
	}

	return NewSlayCatalog(slays, brands)
}

// LoadSlayCatalog loads slays.yaml from the game data source into Slays.
func LoadSlayCatalog() error {
	raw, err := readGameData("slays.yaml")
	if err != nil {
		return err
	}
	c, err := ParseSlayCatalog(raw)
	if err != nil {
		return fmt.Errorf("loading slay catalog: %w", err)
	}
	Slays = c

	slog.Info("loaded slay catalog", "slays", c.Len()-1, "brands", len(c.brands))
	return nil
}

// Len returns the number of catalog entries including the null entry.
func (c *SlayCatalog) Len() int { return len(c.slays) }

// Slay returns the definition with the given ID, or nil when out of range.
func (c *SlayCatalog) Slay(id int) *SlayDef {
	if id < 0 || id >= len(c.slays) {
		return nil
	}
	return &c.slays[id]
}

// All returns every definition, null entry first. The slice must not be modified.
func (c *SlayCatalog) All() []SlayDef { return c.slays }

// Brand returns the brand metadata of an element.
func (c *SlayCatalog) Brand(e model.Element) *BrandDef {
	if e >= model.ElementCount {
		return nil
	}
	return &c.brands[e]
}
