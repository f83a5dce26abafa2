package catalog

import (
	"strings"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// ExcludeCode is the slot code for rows that only reserve a monster.
const ExcludeCode = "Exclude"

// Slot is one demand unit of an encounter. An unbound slot is filled by the
// assignment engine; a bound one keeps its monster.
type Slot struct {
	Number  game.Number
	Color   game.Color
	Tier    game.Tier
	Monster *Monster
	// Exclude slots keep their monster out of random picks and are never shown.
	Exclude bool
	// Preset marks monsters fixed by a loaded preset.
	Preset bool
}

// Resolved reports whether the slot is bound to a monster.
func (s Slot) Resolved() bool {
	return s.Monster != nil
}

// Code renders the slot in catalog notation ("W1 Ro", "C3", "Exclude").
func (s Slot) Code() string {
	if s.Exclude {
		return ExcludeCode
	}
	var b strings.Builder
	b.WriteByte(s.Color.Code())
	if s.Number.Valid() {
		b.WriteString(s.Number.String())
	}
	if !s.Tier.IsSpecial() {
		b.WriteByte(' ')
		b.WriteString(s.Tier.Rank.ID())
	}
	return b.String()
}

// ParseSlotCode reads a slot code without a monster reference. The
// returned slot is unbound.
func ParseSlotCode(code string) (Slot, error) {
	return parseSlotCode(code, rowContext{})
}

func parseSlotCode(code string, ctx rowContext) (Slot, error) {
	if code == ExcludeCode {
		return Slot{Exclude: true}, nil
	}
	if len(code) < 2 {
		return Slot{}, ctx.slotError(code, "slot code too short")
	}
	color, ok := game.ColorFromCode(code[0])
	if !ok {
		return Slot{}, ctx.slotError(code, "unknown color")
	}
	number, err := game.ParseNumber(code[1])
	if err != nil {
		return Slot{}, ctx.slotError(code, "unknown number")
	}
	level := ""
	if len(code) > 2 {
		if code[2] != ' ' {
			return Slot{}, ctx.slotError(code, "expected a space before the level")
		}
		level = code[3:]
	}

	slot := Slot{Number: number, Color: color}
	if !color.HasRank() {
		if level != "" {
			return Slot{}, ctx.levelNotAllowed(code)
		}
		slot.Tier = game.SpecialTier(game.SpecialNone)
		return slot, nil
	}
	if level == "" {
		return Slot{}, ctx.levelMissing(code)
	}
	rank, err := game.ParseRankID(level)
	if err != nil {
		return Slot{}, ctx.slotError(code, "unknown level")
	}
	slot.Tier = game.RankTier(rank)
	return slot, nil
}
