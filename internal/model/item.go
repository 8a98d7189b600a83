package model

import (
	"github.com/google/uuid"

	"github.com/udisondev/slays/internal/flags"
)

// Brand описывает элементальное свойство конкретного предмета.
// Owned by exactly one Item; Known flips to true once the player has seen it work.
type Brand struct {
	Name       string
	Element    Element
	Multiplier int
	Known      bool
}

// Slay описывает свойство предмета против расы или базы монстров.
// Base is the monster-base name filter, RaceFlag the race flag it keys on.
type Slay struct {
	Base       string
	RaceFlag   flags.Flag
	Multiplier int
	Known      bool
}

// Item is a concrete weapon instance carrying its own brand and slay chains.
// Chains are never shared between items: AddBrands/AddSlays always copy.
type Item struct {
	id     uuid.UUID
	name   string
	flags  flags.Set
	ego    *EgoItem
	brands []*Brand
	slays  []*Slay

	egoKnown bool
}

// NewItem creates an item with a fresh instance ID.
func NewItem(name string, of flags.Set) *Item {
	return &Item{
		id:    uuid.New(),
		name:  name,
		flags: of,
	}
}

// NewEgoItem creates an item from a base name and an ego template.
// The template's flags are merged in and its chains copied onto the item.
func NewEgoItem(name string, ego *EgoItem) *Item {
	it := NewItem(name, flags.Set{})
	if ego == nil {
		return it
	}
	it.ego = ego
	it.flags.Union(ego.Flags)
	it.AddBrands(ego.Brands)
	it.AddSlays(ego.Slays)
	return it
}

// ID returns the instance ID.
func (i *Item) ID() uuid.UUID { return i.id }

// Name returns the base display name.
func (i *Item) Name() string { return i.name }

// Flags returns the object flags of the item.
func (i *Item) Flags() flags.Set { return i.flags }

// Ego returns the ego template the item was made from, or nil.
func (i *Item) Ego() *EgoItem { return i.ego }

// EgoKnown reports whether the player has noticed the ego.
func (i *Item) EgoKnown() bool { return i.egoKnown }

// SetEgoKnown marks the ego as noticed.
func (i *Item) SetEgoKnown() { i.egoKnown = true }

// Brands returns the item's brand chain. Callers may flip Known on entries.
func (i *Item) Brands() []*Brand { return i.brands }

// Slays returns the item's slay chain. Callers may flip Known on entries.
func (i *Item) Slays() []*Slay { return i.slays }

// AddBrands appends unknown copies of src to the item's brand chain.
func (i *Item) AddBrands(src []*Brand) {
	for _, b := range src {
		i.brands = append(i.brands, &Brand{
			Name:       b.Name,
			Element:    b.Element,
			Multiplier: b.Multiplier,
		})
	}
}

// AddSlays appends unknown copies of src to the item's slay chain.
func (i *Item) AddSlays(src []*Slay) {
	for _, s := range src {
		i.slays = append(i.slays, &Slay{
			Base:       s.Base,
			RaceFlag:   s.RaceFlag,
			Multiplier: s.Multiplier,
		})
	}
}

// AllKnown reports whether every brand and slay on the item is known.
func (i *Item) AllKnown() bool {
	for _, b := range i.brands {
		if !b.Known {
			return false
		}
	}
	for _, s := range i.slays {
		if !s.Known {
			return false
		}
	}
	return true
}

// EgoItem is a predefined pattern of bonus properties (ego template).
type EgoItem struct {
	ID     int32
	Name   string
	Flags  flags.Set
	Brands []*Brand
	Slays  []*Slay
}
