package catalog

import (
	"sort"

	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// Setup is a curated encounter for one chapter of an expansion.
type Setup struct {
	Expansion game.Expansion
	Chapter   int
	NameEN    string
	NameDE    string
	Slots     []Slot
}

// Name returns the localized setup name, falling back to English.
func (s *Setup) Name(lang game.Language) string {
	if lang == game.LanguageDE && s.NameDE != "" {
		return s.NameDE
	}
	return s.NameEN
}

// Roster returns a copy of the slots. Bound slots carry Preset=true.
func (s *Setup) Roster() []Slot {
	out := make([]Slot, len(s.Slots))
	copy(out, s.Slots)
	for i := range out {
		out[i].Preset = out[i].Resolved()
	}
	return out
}

// Presets is the ordered collection of setups, sorted by expansion ordinal
// and chapter.
type Presets struct {
	list []*Setup
}

// All returns every setup in catalog order.
func (p *Presets) All() []*Setup {
	out := make([]*Setup, len(p.list))
	copy(out, p.list)
	return out
}

// Len returns the number of setups.
func (p *Presets) Len() int {
	return len(p.list)
}

// Expansions lists expansions that have setups, Core first and the rest by
// localized name.
func (p *Presets) Expansions(lang game.Language) []game.Expansion {
	seen := map[game.Expansion]bool{}
	var out []game.Expansion
	for _, s := range p.list {
		if !seen[s.Expansion] {
			seen[s.Expansion] = true
			out = append(out, s.Expansion)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayKey(lang) < out[j].DisplayKey(lang)
	})
	return out
}

// Chapters lists the chapters of an expansion in ascending order.
func (p *Presets) Chapters(expansion game.Expansion) []int {
	var out []int
	for _, s := range p.list {
		if s.Expansion != expansion {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != s.Chapter {
			out = append(out, s.Chapter)
		}
	}
	return out
}

// Setups returns the setups of one chapter in catalog order.
func (p *Presets) Setups(expansion game.Expansion, chapter int) []*Setup {
	var out []*Setup
	for _, s := range p.list {
		if s.Expansion == expansion && s.Chapter == chapter {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the index-th setup of a chapter.
func (p *Presets) Find(expansion game.Expansion, chapter, index int) (*Setup, bool) {
	setups := p.Setups(expansion, chapter)
	if index < 0 || index >= len(setups) {
		return nil, false
	}
	return setups[index], true
}
