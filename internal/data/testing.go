package data

import "github.com/udisondev/slays/internal/model"

// StandardBrands returns the five element brand definitions.
// Intended for tests from other packages that build their own catalogs.
func StandardBrands() []BrandDef {
	return []BrandDef{
		{Element: model.ElementAcid, ActiveVerb: "spits", MeleeVerb: "dissolve", MeleeVerbWeak: "corrode", ResistFlag: model.RFImAcid},
		{Element: model.ElementElec, ActiveVerb: "crackles", MeleeVerb: "shock", MeleeVerbWeak: "zap", ResistFlag: model.RFImElec},
		{Element: model.ElementFire, ActiveVerb: "flares", MeleeVerb: "burn", MeleeVerbWeak: "singe", ResistFlag: model.RFImFire},
		{Element: model.ElementCold, ActiveVerb: "grows cold", MeleeVerb: "freeze", MeleeVerbWeak: "chill", ResistFlag: model.RFImCold},
		{Element: model.ElementPois, ActiveVerb: "seethes", MeleeVerb: "poison", MeleeVerbWeak: "sicken", ResistFlag: model.RFImPois},
	}
}

// MustSlayCatalog builds a catalog or panics. Test helper.
func MustSlayCatalog(slays []SlayDef) *SlayCatalog {
	c, err := NewSlayCatalog(slays, StandardBrands())
	if err != nil {
		panic(err)
	}
	return c
}
