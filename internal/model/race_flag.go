package model

import (
	"fmt"

	"github.com/udisondev/slays/internal/flags"
)

// Race flags describe a monster race. Lore records use the same flag space:
// a flag on in a lore record means the player has learned it about the race.
const (
	RFNone flags.Flag = iota

	RFOrc
	RFTroll
	RFGiant
	RFDragon
	RFDemon
	RFUndead
	RFEvil
	RFAnimal

	RFImAcid
	RFImElec
	RFImFire
	RFImCold
	RFImPois

	RFUnique
	RFMale
	RFFemale
	RFSmart

	rfMax
)

var raceFlagNames = [rfMax]string{
	RFNone:   "NONE",
	RFOrc:    "ORC",
	RFTroll:  "TROLL",
	RFGiant:  "GIANT",
	RFDragon: "DRAGON",
	RFDemon:  "DEMON",
	RFUndead: "UNDEAD",
	RFEvil:   "EVIL",
	RFAnimal: "ANIMAL",
	RFImAcid: "IM_ACID",
	RFImElec: "IM_ELEC",
	RFImFire: "IM_FIRE",
	RFImCold: "IM_COLD",
	RFImPois: "IM_POIS",
	RFUnique: "UNIQUE",
	RFMale:   "MALE",
	RFFemale: "FEMALE",
	RFSmart:  "SMART",
}

var raceFlagsByName = func() map[string]flags.Flag {
	m := make(map[string]flags.Flag, rfMax)
	for i, n := range raceFlagNames {
		m[n] = flags.Flag(i)
	}
	return m
}()

// RaceFlagName returns the game-data name of a race flag.
func RaceFlagName(f flags.Flag) string {
	if int(f) >= len(raceFlagNames) {
		return fmt.Sprintf("RF(%d)", f)
	}
	return raceFlagNames[f]
}

// RaceFlagByName resolves a game-data name ("IM_FIRE") to its flag.
// "NONE" resolves to RFNone and is accepted: slays without a race flag use it.
func RaceFlagByName(name string) (flags.Flag, bool) {
	f, ok := raceFlagsByName[name]
	return f, ok
}
