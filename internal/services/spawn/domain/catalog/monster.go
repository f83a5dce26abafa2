// Package catalog holds the read-only monster roster and preset encounters,
// and the parser that builds them from their comma-separated text form.
package catalog

import (
	"sort"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// Monster is one catalog entry. NameEN is its identity.
type Monster struct {
	NameEN    string
	NameDE    string
	Expansion game.Expansion
	Color     game.Color
	// RepresentedBy is the English name of the monster whose miniature is
	// used on the table; empty when the monster has its own.
	RepresentedBy string
}

// PureSpecial binds special slots whose unit has no catalog monster. It
// belongs to no expansion and is never part of a random pool.
var PureSpecial = &Monster{
	NameEN: "Special",
	NameDE: "Spezial",
	Color:  game.ColorSpecial,
}

// Name returns the localized name, falling back to English.
func (m *Monster) Name(lang game.Language) string {
	if lang == game.LanguageDE && m.NameDE != "" {
		return m.NameDE
	}
	return m.NameEN
}

// IsPureSpecial reports the sentinel.
func (m *Monster) IsPureSpecial() bool {
	return m == PureSpecial
}

// Monsters is the immutable monster roster.
type Monsters struct {
	list   []*Monster
	byName map[string]*Monster
}

// NewMonsters indexes list. Callers must not mutate the entries afterwards.
func NewMonsters(list []*Monster) *Monsters {
	byName := make(map[string]*Monster, len(list))
	for _, m := range list {
		byName[m.NameEN] = m
	}
	return &Monsters{list: list, byName: byName}
}

// All returns the roster in catalog order.
func (c *Monsters) All() []*Monster {
	out := make([]*Monster, len(c.list))
	copy(out, c.list)
	return out
}

// Len returns the roster size.
func (c *Monsters) Len() int {
	return len(c.list)
}

// Lookup finds a monster by English name.
func (c *Monsters) Lookup(nameEN string) (*Monster, bool) {
	m, ok := c.byName[nameEN]
	return m, ok
}

// Miniature returns the monster whose miniature represents m on the table.
func (c *Monsters) Miniature(m *Monster) *Monster {
	if m == nil || m.RepresentedBy == "" {
		return m
	}
	if rep, ok := c.byName[m.RepresentedBy]; ok {
		return rep
	}
	return m
}

// InExpansions returns the monsters of enabled expansions in catalog order.
func (c *Monsters) InExpansions(enabled game.ExpansionSet) []*Monster {
	var out []*Monster
	for _, m := range c.list {
		if enabled.Has(m.Expansion) {
			out = append(out, m)
		}
	}
	return out
}

// Pick lists the monsters of one color in enabled expansions sorted by
// localized name, as offered when a player fixes a slot by hand.
func (c *Monsters) Pick(color game.Color, enabled game.ExpansionSet, lang game.Language) []*Monster {
	var out []*Monster
	for _, m := range c.InExpansions(enabled) {
		if m.Color == color {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name(lang) < out[j].Name(lang)
	})
	return out
}

// CheckSpecials verifies every special unit's stand-in exists.
func (c *Monsters) CheckSpecials() error {
	for _, kind := range game.SpecialKinds() {
		name, ok := kind.RepresentedBy()
		if !ok {
			continue
		}
		if _, found := c.byName[name]; !found {
			return specialMonsterError(kind, name)
		}
	}
	return nil
}
