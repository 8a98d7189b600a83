package model

import "fmt"

// Element identifies the elemental kind of a brand.
type Element uint8

const (
	ElementAcid Element = iota
	ElementElec
	ElementFire
	ElementCold
	ElementPois

	ElementCount
)

var elementNames = [ElementCount]string{
	ElementAcid: "acid",
	ElementElec: "elec",
	ElementFire: "fire",
	ElementCold: "cold",
	ElementPois: "pois",
}

// String returns the game-data name of the element.
func (e Element) String() string {
	if e >= ElementCount {
		return fmt.Sprintf("element(%d)", e)
	}
	return elementNames[e]
}

// ElementByName resolves "fire" and friends.
func ElementByName(name string) (Element, bool) {
	for i, n := range elementNames {
		if n == name {
			return Element(i), true
		}
	}
	return 0, false
}
