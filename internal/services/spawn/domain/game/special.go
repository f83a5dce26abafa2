package game

// SpecialKind is a named unit that does not follow the rank ladder.
type SpecialKind uint8

const (
	SpecialNone SpecialKind = iota
	SpecialCommanderBrute
	SpecialUndeadDragon
	SpecialAmbush
)

type specialInfo struct {
	// ident is the English name catalog rows use after the '*' marker.
	ident string
	key   string
	// monster is the English name of the catalog monster standing in for
	// the unit, if any.
	monster string
	color   Color
}

var specialTable = map[SpecialKind]specialInfo{
	SpecialCommanderBrute: {ident: "Commander Brute", key: "commander_brute", color: ColorCommander},
	SpecialUndeadDragon:   {ident: "Undead Dragon", key: "undead_dragon", monster: "Undead Dragon"},
	SpecialAmbush:         {ident: "Ambush", key: "ambush"},
}

// SpecialKinds lists every special unit.
func SpecialKinds() []SpecialKind {
	return []SpecialKind{SpecialCommanderBrute, SpecialUndeadDragon, SpecialAmbush}
}

// Name returns the localized unit name.
func (k SpecialKind) Name(lang Language) string {
	info, ok := specialTable[k]
	if !ok {
		panic(&InvalidOperandError{Operand: "SpecialNone", Op: "Name"})
	}
	return lang.text("game.special." + info.key)
}

// RepresentedBy returns the English name of the catalog monster used for
// the unit.
func (k SpecialKind) RepresentedBy() (string, bool) {
	info := specialTable[k]
	return info.monster, info.monster != ""
}

// ForcedColor returns the color every slot holding the unit takes.
func (k SpecialKind) ForcedColor() (Color, bool) {
	info := specialTable[k]
	return info.color, info.color != ColorUnspecified
}

// LookupSpecial finds a unit by its English name.
func LookupSpecial(nameEN string) (SpecialKind, bool) {
	for _, k := range SpecialKinds() {
		if specialTable[k].ident == nameEN {
			return k, true
		}
	}
	return SpecialNone, false
}
