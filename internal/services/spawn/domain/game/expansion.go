package game

import (
	"fmt"
	"strings"
)

// Expansion is a purchasable content set. Monsters and presets belong to
// exactly one expansion.
type Expansion uint8

const (
	ExpansionUnspecified Expansion = iota
	ExpansionCore
	ExpansionApocalypse
	ExpansionAwakenings
	ExpansionDesertOfTheHellscar
	ExpansionFallenSisters
	ExpansionMonsterPack1
	ExpansionRiseOfTheUndeadDragon
	ExpansionSpoilsOfWar
	ExpansionTheRuinOfLuccanor
	ExpansionTheShadowWorld
)

type expansionInfo struct {
	ident string
	key   string
}

var expansionTable = map[Expansion]expansionInfo{
	ExpansionCore:                  {ident: "Core", key: "core"},
	ExpansionApocalypse:            {ident: "Apocalypse", key: "apocalypse"},
	ExpansionAwakenings:            {ident: "Awakenings", key: "awakenings"},
	ExpansionDesertOfTheHellscar:   {ident: "DesertOfTheHellscar", key: "desert_of_the_hellscar"},
	ExpansionFallenSisters:         {ident: "FallenSisters", key: "fallen_sisters"},
	ExpansionMonsterPack1:          {ident: "MonsterPack1", key: "monster_pack_1"},
	ExpansionRiseOfTheUndeadDragon: {ident: "RiseOfTheUndeadDragon", key: "rise_of_the_undead_dragon"},
	ExpansionSpoilsOfWar:           {ident: "SpoilsOfWar", key: "spoils_of_war"},
	ExpansionTheRuinOfLuccanor:     {ident: "TheRuinOfLuccanor", key: "the_ruin_of_luccanor"},
	ExpansionTheShadowWorld:        {ident: "TheShadowWorld", key: "the_shadow_world"},
}

// Expansions lists every expansion in ordinal order.
func Expansions() []Expansion {
	out := make([]Expansion, 0, len(expansionTable))
	for e := ExpansionCore; e <= ExpansionTheShadowWorld; e++ {
		out = append(out, e)
	}
	return out
}

// Valid reports whether e is a known expansion.
func (e Expansion) Valid() bool {
	_, ok := expansionTable[e]
	return ok
}

// String returns the catalog identifier ("Core", "SpoilsOfWar").
func (e Expansion) String() string {
	if info, ok := expansionTable[e]; ok {
		return info.ident
	}
	return fmt.Sprintf("Expansion(%d)", uint8(e))
}

// Name returns the localized display name.
func (e Expansion) Name(lang Language) string {
	info, ok := expansionTable[e]
	if !ok {
		panic(&InvalidOperandError{Operand: e.String(), Op: "Name"})
	}
	return lang.text("game.expansion." + info.key)
}

// DisplayKey orders expansions for pickers: Core first, the rest by
// localized name.
func (e Expansion) DisplayKey(lang Language) string {
	if e == ExpansionCore {
		return "!first"
	}
	return e.Name(lang)
}

// ParseExpansion matches a catalog identifier exactly.
func ParseExpansion(value string) (Expansion, error) {
	for e, info := range expansionTable {
		if info.ident == value {
			return e, nil
		}
	}
	return ExpansionUnspecified, fmt.Errorf("unknown expansion %q", value)
}

// MatchExpansion matches an identifier or a localized name, ignoring case.
func MatchExpansion(value string) (Expansion, error) {
	trimmed := strings.TrimSpace(value)
	for _, e := range Expansions() {
		if strings.EqualFold(e.String(), trimmed) {
			return e, nil
		}
		for _, lang := range Languages() {
			if strings.EqualFold(e.Name(lang), trimmed) {
				return e, nil
			}
		}
	}
	return ExpansionUnspecified, fmt.Errorf("unknown expansion %q", value)
}

// ExpansionSet is a set of expansions with value semantics.
type ExpansionSet uint32

// NewExpansionSet returns a set holding the given expansions.
func NewExpansionSet(expansions ...Expansion) ExpansionSet {
	var s ExpansionSet
	for _, e := range expansions {
		s = s.With(e)
	}
	return s
}

// DefaultExpansions is the set a fresh session starts with.
func DefaultExpansions() ExpansionSet {
	return NewExpansionSet(ExpansionCore)
}

func (s ExpansionSet) Has(e Expansion) bool {
	return e.Valid() && s&(1<<e) != 0
}

func (s ExpansionSet) With(e Expansion) ExpansionSet {
	if !e.Valid() {
		return s
	}
	return s | 1<<e
}

func (s ExpansionSet) Without(e Expansion) ExpansionSet {
	return s &^ (1 << e)
}

// Toggle flips membership of e.
func (s ExpansionSet) Toggle(e Expansion) ExpansionSet {
	if s.Has(e) {
		return s.Without(e)
	}
	return s.With(e)
}

// List returns members in ordinal order.
func (s ExpansionSet) List() []Expansion {
	var out []Expansion
	for _, e := range Expansions() {
		if s.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s ExpansionSet) Len() int {
	return len(s.List())
}

// String joins member identifiers with commas.
func (s ExpansionSet) String() string {
	list := s.List()
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

// ParseExpansionSet reads a comma-separated list accepted by MatchExpansion.
func ParseExpansionSet(value string) (ExpansionSet, error) {
	var s ExpansionSet
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		e, err := MatchExpansion(part)
		if err != nil {
			return 0, err
		}
		s = s.With(e)
	}
	return s, nil
}
