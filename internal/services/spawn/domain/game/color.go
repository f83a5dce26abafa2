package game

import "fmt"

// Color is a monster's size and role category.
type Color uint8

const (
	// ColorUnspecified marks a slot whose color is inferred from its monster.
	ColorUnspecified Color = iota
	ColorWhite
	ColorGray
	ColorBlack
	ColorCommander
	ColorSpecial
	ColorSpecialCommander
)

var colorIdents = map[Color]string{
	ColorWhite:            "White",
	ColorGray:             "Gray",
	ColorBlack:            "Black",
	ColorCommander:        "Commander",
	ColorSpecial:          "Special",
	ColorSpecialCommander: "SpecialCommander",
}

var colorKeys = map[Color]string{
	ColorWhite:     "white",
	ColorGray:      "gray",
	ColorBlack:     "black",
	ColorCommander: "commander",
}

// Colors lists the colors a player can request.
func Colors() []Color {
	return []Color{ColorWhite, ColorGray, ColorBlack, ColorCommander}
}

// String returns the catalog identifier, or "" for ColorUnspecified.
func (c Color) String() string {
	if c == ColorUnspecified {
		return ""
	}
	if ident, ok := colorIdents[c]; ok {
		return ident
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ParseColor matches a catalog identifier exactly.
func ParseColor(value string) (Color, error) {
	for c, ident := range colorIdents {
		if ident == value {
			return c, nil
		}
	}
	return ColorUnspecified, fmt.Errorf("unknown color %q", value)
}

// IsAnyCommander reports Commander and SpecialCommander.
func (c Color) IsAnyCommander() bool {
	return c == ColorCommander || c == ColorSpecialCommander
}

// IsAnySpecial reports Special and SpecialCommander.
func (c Color) IsAnySpecial() bool {
	return c == ColorSpecial || c == ColorSpecialCommander
}

// HasRank reports whether slots of this color carry a rank.
func (c Color) HasRank() bool {
	return c == ColorWhite || c == ColorGray || c == ColorBlack
}

func (c Color) key(op string) string {
	key, ok := colorKeys[c]
	if !ok {
		panic(&InvalidOperandError{Operand: "Color(" + c.String() + ")", Op: op})
	}
	return key
}

// Name returns the localized color name.
func (c Color) Name(lang Language) string {
	return lang.text("game.color." + c.key("Name"))
}

// Short returns the localized abbreviation ("WM", "GM", "BM").
func (c Color) Short(lang Language) string {
	return lang.text("game.color_short." + c.key("Short"))
}

// Prefix returns the localized one letter slot prefix.
func (c Color) Prefix(lang Language) string {
	return lang.text("game.color_prefix." + c.key("Prefix"))
}

// PrefixLower returns the language neutral lowercase prefix used for
// asset names. SpecialCommander shares the commander prefix.
func (c Color) PrefixLower() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorGray:
		return "g"
	case ColorBlack:
		return "b"
	case ColorCommander, ColorSpecialCommander:
		return "c"
	default:
		panic(&InvalidOperandError{Operand: "Color(" + c.String() + ")", Op: "PrefixLower"})
	}
}

// Size returns the localized miniature size. Commanders and specials have
// none.
func (c Color) Size(lang Language) (string, bool) {
	switch c {
	case ColorWhite, ColorGray:
		return lang.text("game.size.small"), true
	case ColorBlack:
		return lang.text("game.size.big"), true
	default:
		return "", false
	}
}

// Code returns the slot code letter: W, G, B, C, or S for colors that
// are inferred from a special unit.
func (c Color) Code() byte {
	switch c {
	case ColorWhite:
		return 'W'
	case ColorGray:
		return 'G'
	case ColorBlack:
		return 'B'
	case ColorCommander:
		return 'C'
	default:
		return 'S'
	}
}

// ColorFromCode maps a slot code letter to a color. S maps to
// ColorUnspecified.
func ColorFromCode(code byte) (Color, bool) {
	switch code {
	case 'W':
		return ColorWhite, true
	case 'G':
		return ColorGray, true
	case 'B':
		return ColorBlack, true
	case 'C':
		return ColorCommander, true
	case 'S':
		return ColorUnspecified, true
	default:
		return ColorUnspecified, false
	}
}

// InvalidOperandError is the panic value for helpers called on a value they
// are not defined for.
type InvalidOperandError struct {
	Operand string
	Op      string
}

func (e *InvalidOperandError) Error() string {
	return fmt.Sprintf("game: %s called on %s", e.Op, e.Operand)
}
