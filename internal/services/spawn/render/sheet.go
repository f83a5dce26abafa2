package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// Sheet is everything a renderer needs.
type Sheet struct {
	Rows   []Row
	Preset *catalog.Setup
	// Failed marks a selection the enabled monsters could not cover.
	Failed  bool
	Players game.Number
	// Language names monsters and game terms; MessageLanguage labels.
	Language        game.Language
	MessageLanguage game.Language
	// Seed is printed when non-zero so a draw can be replayed.
	Seed int64
}

// Title returns the preset heading, or "" for custom encounters.
func (s Sheet) Title() string {
	if s.Preset == nil {
		return ""
	}
	return fmt.Sprintf("%s %s %d - %s",
		s.Preset.Expansion.Name(s.Language),
		s.MessageLanguage.Text("core.label.chapter"),
		s.Preset.Chapter,
		s.Preset.Name(s.Language))
}

// Notice returns the warning shown instead of rows, if any.
func (s Sheet) Notice() string {
	switch {
	case s.Failed:
		return s.MessageLanguage.Text("core.too_many_monsters")
	case len(s.Rows) == 0:
		return s.MessageLanguage.Text("core.empty_selection")
	default:
		return ""
	}
}

// Text writes the sheet as plain text.
func Text(w io.Writer, s Sheet) error {
	msg := s.MessageLanguage
	var b strings.Builder
	b.WriteString(msg.Text("core.heading.encounter"))
	if title := s.Title(); title != "" {
		b.WriteString(": ")
		b.WriteString(title)
	}
	b.WriteByte('\n')
	b.WriteString(msg.Text("core.label.players"))
	b.WriteString(": ")
	b.WriteString(s.Players.String())
	b.WriteByte('\n')

	if notice := s.Notice(); notice != "" {
		b.WriteString(notice)
		b.WriteByte('\n')
	}
	for _, r := range s.Rows {
		b.WriteString(r.Line(s.Language))
		if !r.Active {
			b.WriteString(" (")
			b.WriteString(msg.Text("core.label.not_in_play"))
			b.WriteByte(')')
		}
		b.WriteByte('\n')
	}
	if hasPreset(s.Rows) {
		b.WriteString(msg.Text("core.preset_marker"))
		b.WriteByte('\n')
	}
	if s.Seed != 0 {
		b.WriteString(msg.Text("core.label.seed"))
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(s.Seed, 10))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
