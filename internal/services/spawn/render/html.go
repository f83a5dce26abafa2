package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// HTML returns a printable encounter sheet. Inactive rows are faded.
func HTML(s Sheet) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		msg := s.MessageLanguage
		lang := msg.Locale()
		write := func(parts ...string) error {
			for _, part := range parts {
				if _, err := io.WriteString(w, part); err != nil {
					return err
				}
			}
			return nil
		}

		if err := write(`<!DOCTYPE html><html lang="`, templ.EscapeString(lang), `"><head><meta charset="utf-8"><title>`,
			templ.EscapeString(msg.Text("core.heading.encounter")), `</title></head><body><main class="encounter">`); err != nil {
			return err
		}
		if err := write(`<h1>`, templ.EscapeString(msg.Text("core.heading.encounter")), `</h1>`); err != nil {
			return err
		}
		if title := s.Title(); title != "" {
			if err := write(`<h2 class="preset">`, templ.EscapeString(title), `</h2>`); err != nil {
				return err
			}
		}
		if err := write(`<p class="players">`, templ.EscapeString(msg.Text("core.label.players")), `: `,
			templ.EscapeString(s.Players.String()), `</p>`); err != nil {
			return err
		}
		if notice := s.Notice(); notice != "" {
			if err := write(`<p class="notice" role="alert">`, templ.EscapeString(notice), `</p>`); err != nil {
				return err
			}
		}
		if len(s.Rows) > 0 {
			if err := write(`<table class="monsters"><tbody>`); err != nil {
				return err
			}
			for _, r := range s.Rows {
				style := ""
				if !r.Active {
					style = ` style="opacity: 0.5"`
				}
				if err := write(`<tr><td`, style, `>`, templ.EscapeString(r.Line(s.Language)), `</td></tr>`); err != nil {
					return err
				}
			}
			if err := write(`</tbody></table>`); err != nil {
				return err
			}
		}
		if hasPreset(s.Rows) {
			if err := write(`<p class="legend">`, templ.EscapeString(msg.Text("core.preset_marker")), `</p>`); err != nil {
				return err
			}
		}
		if s.Seed != 0 {
			if err := write(`<p class="seed">`, templ.EscapeString(msg.Text("core.label.seed")), `: `,
				strconv.FormatInt(s.Seed, 10), `</p>`); err != nil {
				return err
			}
		}
		return write(`</main></body></html>`)
	})
}
