package slay

import "github.com/udisondev/slays/internal/model"

// ReactToSlay reports whether any slay on item applies to mon, using the same
// test as Resolve. Monster AI uses it to fear slaying weapons.
func ReactToSlay(item *model.Item, mon *model.Monster) bool {
	for _, s := range item.Slays() {
		if Applies(s, mon) {
			return true
		}
	}
	return false
}

func raceName(mon *model.Monster) string {
	if mon.Race == nil {
		return ""
	}
	return mon.Race.Name
}
