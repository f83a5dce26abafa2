// Package render turns an assignment into the encounter sheet shown to
// players, as plain text or HTML.
package render

import (
	"strings"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/assign"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// Row is one output line.
type Row struct {
	Slot catalog.Slot
	// Miniature is set when the monster is played with another monster's
	// figure.
	Miniature *catalog.Monster
	// Active is false for rows only used with more players.
	Active bool
}

// Rows decorates out for a table of players.
func Rows(out assign.Output, monsters *catalog.Monsters, players game.Number) []Row {
	rows := make([]Row, 0, len(out))
	for _, s := range out {
		row := Row{Slot: s, Active: s.Number.ActiveFor(players)}
		if monsters != nil {
			if mini := monsters.Miniature(s.Monster); mini != s.Monster {
				row.Miniature = mini
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Line renders the row in lang:
//
//	1 WM - Rotten Flesh* - Rookie
//	1 Commander - Lord of Ruin*
func (r Row) Line(lang game.Language) string {
	s := r.Slot
	var b strings.Builder
	b.WriteString(s.Number.String())
	b.WriteByte(' ')
	if short, ok := shortColor(s.Color, lang); ok {
		b.WriteString(short)
		b.WriteString(" - ")
	}
	b.WriteString(s.Monster.Name(lang))
	if r.Miniature != nil {
		b.WriteString(" (")
		b.WriteString(r.Miniature.Name(lang))
		b.WriteByte(')')
	}
	if s.Preset {
		b.WriteByte('*')
	}
	if tier := s.Tier.Name(lang); tier != "" {
		b.WriteString(" - ")
		b.WriteString(tier)
	}
	return b.String()
}

func shortColor(c game.Color, lang game.Language) (string, bool) {
	for _, known := range game.Colors() {
		if c == known {
			return c.Short(lang), true
		}
	}
	return "", false
}

func hasPreset(rows []Row) bool {
	for _, r := range rows {
		if r.Slot.Preset {
			return true
		}
	}
	return false
}
