package model

import (
	"fmt"

	"github.com/udisondev/slays/internal/flags"
)

// Object flags carried by item kinds, ego templates and item instances.
// Only the slay/kill/brand groups matter to the slay engine; the rest exist so
// that ego flag-sets loaded from game data keep their non-slay bits and the
// slay mask has something to filter out.
const (
	OFNone flags.Flag = iota

	// Slays (x2/x3)
	OFSlayAnimal
	OFSlayEvil
	OFSlayUndead
	OFSlayDemon
	OFSlayOrc
	OFSlayTroll
	OFSlayGiant
	OFSlayDragon

	// Kills (x5)
	OFKillDragon
	OFKillDemon
	OFKillUndead

	// Brands (x3)
	OFBrandPois
	OFBrandAcid
	OFBrandElec
	OFBrandFire
	OFBrandCold

	// Weak brands (x2)
	OFBrandSick
	OFBrandFizz
	OFBrandBuzz
	OFBrandWarm
	OFBrandIcy

	// Misc
	OFBlessed
	OFImpactQuake
	OFSeeInvis
	OFFreeAct
	OFRegen
	OFLight
	OFTelepathy
	OFSustStr

	ofMax
)

// ObjectFlagKind groups object flags the way masks are built from them.
type ObjectFlagKind uint8

const (
	OFKindMisc ObjectFlagKind = iota
	OFKindSlay
	OFKindKill
	OFKindBrand
)

type objectFlagInfo struct {
	name string
	kind ObjectFlagKind
}

var objectFlagInfos = [ofMax]objectFlagInfo{
	OFNone:        {"NONE", OFKindMisc},
	OFSlayAnimal:  {"SLAY_ANIMAL", OFKindSlay},
	OFSlayEvil:    {"SLAY_EVIL", OFKindSlay},
	OFSlayUndead:  {"SLAY_UNDEAD", OFKindSlay},
	OFSlayDemon:   {"SLAY_DEMON", OFKindSlay},
	OFSlayOrc:     {"SLAY_ORC", OFKindSlay},
	OFSlayTroll:   {"SLAY_TROLL", OFKindSlay},
	OFSlayGiant:   {"SLAY_GIANT", OFKindSlay},
	OFSlayDragon:  {"SLAY_DRAGON", OFKindSlay},
	OFKillDragon:  {"KILL_DRAGON", OFKindKill},
	OFKillDemon:   {"KILL_DEMON", OFKindKill},
	OFKillUndead:  {"KILL_UNDEAD", OFKindKill},
	OFBrandPois:   {"BRAND_POIS", OFKindBrand},
	OFBrandAcid:   {"BRAND_ACID", OFKindBrand},
	OFBrandElec:   {"BRAND_ELEC", OFKindBrand},
	OFBrandFire:   {"BRAND_FIRE", OFKindBrand},
	OFBrandCold:   {"BRAND_COLD", OFKindBrand},
	OFBrandSick:   {"BRAND_SICK", OFKindBrand},
	OFBrandFizz:   {"BRAND_FIZZ", OFKindBrand},
	OFBrandBuzz:   {"BRAND_BUZZ", OFKindBrand},
	OFBrandWarm:   {"BRAND_WARM", OFKindBrand},
	OFBrandIcy:    {"BRAND_ICY", OFKindBrand},
	OFBlessed:     {"BLESSED", OFKindMisc},
	OFImpactQuake: {"IMPACT", OFKindMisc},
	OFSeeInvis:    {"SEE_INVIS", OFKindMisc},
	OFFreeAct:     {"FREE_ACT", OFKindMisc},
	OFRegen:       {"REGEN", OFKindMisc},
	OFLight:       {"LIGHT", OFKindMisc},
	OFTelepathy:   {"TELEPATHY", OFKindMisc},
	OFSustStr:     {"SUST_STR", OFKindMisc},
}

var objectFlagsByName = func() map[string]flags.Flag {
	m := make(map[string]flags.Flag, ofMax)
	for i := range objectFlagInfos {
		m[objectFlagInfos[i].name] = flags.Flag(i)
	}
	return m
}()

// ObjectFlagName returns the game-data name of an object flag.
func ObjectFlagName(f flags.Flag) string {
	if int(f) >= len(objectFlagInfos) {
		return fmt.Sprintf("OF(%d)", f)
	}
	return objectFlagInfos[f].name
}

// ObjectFlagByName resolves a game-data name ("SLAY_ORC") to its flag.
func ObjectFlagByName(name string) (flags.Flag, bool) {
	f, ok := objectFlagsByName[name]
	if !ok || f == OFNone {
		return OFNone, false
	}
	return f, true
}

func (k ObjectFlagKind) String() string {
	switch k {
	case OFKindSlay:
		return "slay"
	case OFKindKill:
		return "kill"
	case OFKindBrand:
		return "brand"
	default:
		return "misc"
	}
}

// ObjectFlagKindOf returns the group an object flag belongs to.
func ObjectFlagKindOf(f flags.Flag) ObjectFlagKind {
	if int(f) >= len(objectFlagInfos) {
		return OFKindMisc
	}
	return objectFlagInfos[f].kind
}

// ObjectFlagMask builds a mask of every object flag whose kind is listed.
func ObjectFlagMask(kinds ...ObjectFlagKind) flags.Set {
	var mask flags.Set
	for i := 1; i < int(ofMax); i++ {
		for _, k := range kinds {
			if objectFlagInfos[i].kind == k {
				mask.On(flags.Flag(i))
				break
			}
		}
	}
	return mask
}

// SlayMask is the mask of every slay, kill and brand object flag.
func SlayMask() flags.Set {
	return ObjectFlagMask(OFKindSlay, OFKindKill, OFKindBrand)
}
