package slay

import (
	"fmt"

	"github.com/udisondev/slays/internal/metrics"
	"github.com/udisondev/slays/internal/model"
)

// NoticeBrands makes every unknown brand of item that mon does not resist
// known, and tells the player. A nil mon resists nothing.
func (r *Resolver) NoticeBrands(item *model.Item, mon *model.Monster) {
	for _, b := range item.Brands() {
		if b.Known {
			continue
		}
		def := r.cat.Brand(b.Element)
		if def == nil {
			continue
		}
		if mon != nil && mon.HasRaceFlag(def.ResistFlag) {
			continue
		}

		b.Known = true
		metrics.PropertiesLearned.WithLabelValues(metrics.KindBrand).Inc()
		if r.ident == nil {
			continue
		}
		r.ident.NoticeEgo(item)
		r.ident.Message(fmt.Sprintf("Your %s %s!", r.ident.Describe(item), def.ActiveVerb))
	}
}

// NoticeSlays makes every unknown slay of item that applies to mon known,
// and tells the player. With a nil mon every slay applies.
func (r *Resolver) NoticeSlays(item *model.Item, mon *model.Monster) {
	for _, s := range item.Slays() {
		if s.Known {
			continue
		}
		if mon != nil && !Applies(s, mon) {
			continue
		}

		s.Known = true
		metrics.PropertiesLearned.WithLabelValues(metrics.KindSlay).Inc()
		if r.ident == nil {
			continue
		}
		r.ident.NoticeEgo(item)
		brightly := ""
		if s.Multiplier > 3 {
			brightly = " brightly"
		}
		r.ident.Message(fmt.Sprintf("Your %s glows%s!", r.ident.Describe(item), brightly))
	}
}
