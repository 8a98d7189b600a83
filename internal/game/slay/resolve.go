package slay

import (
	"log/slog"
	"strconv"

	"github.com/udisondev/slays/internal/data"
	"github.com/udisondev/slays/internal/lore"
	"github.com/udisondev/slays/internal/metrics"
	"github.com/udisondev/slays/internal/model"
)

// Identifier is the object identification collaborator. It is only called
// for real attacks that teach the player something new.
type Identifier interface {
	// NoticeEgo tells the identification system the item's ego has shown itself.
	NoticeEgo(item *model.Item)
	// Describe returns the short display name of the item.
	Describe(item *model.Item) string
	// Message shows a line of text to the player.
	Message(text string)
}

// LoreBook выдаёт изменяемую запись lore для расы.
type LoreBook interface {
	Lore(race *model.Race) *lore.Record
}

// Source tells which kind of property won a resolution.
type Source uint8

const (
	SourceNone Source = iota
	SourceBrand
	SourceSlay
)

// String returns "none", "brand" or "slay".
func (s Source) String() string {
	switch s {
	case SourceBrand:
		return "brand"
	case SourceSlay:
		return "slay"
	default:
		return "none"
	}
}

// Result is the outcome of Resolve. At most one of Brand and Slay is set.
type Result struct {
	Brand *model.Brand
	Slay  *model.Slay
	Verb  string
}

// Source returns the kind of the winning property.
func (r Result) Source() Source {
	switch {
	case r.Slay != nil:
		return SourceSlay
	case r.Brand != nil:
		return SourceBrand
	default:
		return SourceNone
	}
}

// Multiplier returns the winning multiplier, 1 when nothing applies.
func (r Result) Multiplier() int {
	switch {
	case r.Slay != nil:
		return r.Slay.Multiplier
	case r.Brand != nil:
		return r.Brand.Multiplier
	default:
		return 1
	}
}

// Глаголы для slay. Бренды берут свои из каталога.
const (
	VerbSmite         = "smite"
	VerbFiercelySmite = "fiercely smite"
)

// Resolver picks the best brand or slay of an item against a monster and,
// for real attacks, teaches the player about the item and the monster.
type Resolver struct {
	cat   *data.SlayCatalog
	ident Identifier
	book  LoreBook
}

// NewResolver creates a Resolver.
func NewResolver(cat *data.SlayCatalog, ident Identifier, book LoreBook) *Resolver {
	return &Resolver{cat: cat, ident: ident, book: book}
}

func (r *Resolver) loreFor(mon *model.Monster) *lore.Record {
	if r.book == nil {
		return lore.NewRecord(0)
	}
	return r.book.Lore(mon.Race)
}

// Applies reports whether a slay hits the monster: its base filter does not
// name the monster's base, or the monster's race carries its race flag.
func Applies(s *model.Slay, mon *model.Monster) bool {
	return s.Base != mon.Race.BaseName() || mon.HasRaceFlag(s.RaceFlag)
}

// Resolve returns the property of item with the best multiplier against mon.
//
// Brands and slays share one winner slot; a strictly better slay replaces a
// brand. With knownOnly set, unknown properties are ignored. With real set,
// applicable properties become known and lore is learned about visible
// monsters; otherwise nothing is mutated. mon must not be nil.
func (r *Resolver) Resolve(item *model.Item, mon *model.Monster, real, knownOnly bool) Result {
	var (
		res  Result
		best = 1
		rec  *lore.Record
	)
	if real {
		rec = r.loreFor(mon)
	}

	for _, b := range item.Brands() {
		if knownOnly && !b.Known {
			continue
		}
		def := r.cat.Brand(b.Element)
		if def == nil {
			continue
		}

		if !mon.HasRaceFlag(def.ResistFlag) {
			if b.Multiplier > best {
				best = b.Multiplier
				res.Brand = b
				if b.Multiplier < 3 {
					res.Verb = def.MeleeVerbWeak
				} else {
					res.Verb = def.MeleeVerb
				}
			}
			if real {
				r.NoticeBrands(item, mon)
				if mon.Visible {
					rec.Learn(def.ResistFlag)
				}
			}
		}

		// Known brand on a real hit still tells us about the monster.
		if b.Known && mon.Visible && real {
			rec.Learn(def.ResistFlag)
		}
	}

	for _, s := range item.Slays() {
		if knownOnly && !s.Known {
			continue
		}

		if Applies(s, mon) {
			if s.Multiplier > best {
				best = s.Multiplier
				res.Brand = nil
				res.Slay = s
				if s.Multiplier <= 3 {
					res.Verb = VerbSmite
				} else {
					res.Verb = VerbFiercelySmite
				}
			}
			if real {
				r.NoticeSlays(item, mon)
				if mon.Visible {
					rec.Learn(s.RaceFlag)
				}
			}
		}

		if s.Known && mon.Visible && real {
			rec.Learn(s.RaceFlag)
		}
	}

	metrics.AttackResolutions.WithLabelValues(res.Source().String(), strconv.FormatBool(real)).Inc()
	slog.Debug("attack resolved",
		"item", item.ID(),
		"race", raceName(mon),
		"source", res.Source(),
		"mult", res.Multiplier(),
		"real", real)

	return res
}
