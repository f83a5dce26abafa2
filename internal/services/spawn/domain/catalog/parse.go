package catalog

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

const selfRepresented = "self"

// SpecialColorPolicy decides the color of an S slot whose special unit does
// not force one.
type SpecialColorPolicy int

const (
	// SpecialColorNone leaves the slot without a displayed color.
	SpecialColorNone SpecialColorPolicy = iota
	// SpecialColorCommander treats the slot as a commander.
	SpecialColorCommander
	// SpecialColorFromMonster copies the bound monster's color.
	SpecialColorFromMonster
)

// ParseSpecialColorPolicy reads "none", "commander" or "monster".
func ParseSpecialColorPolicy(value string) (SpecialColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return SpecialColorNone, nil
	case "commander":
		return SpecialColorCommander, nil
	case "monster":
		return SpecialColorFromMonster, nil
	default:
		return SpecialColorNone, fmt.Errorf("unknown special color policy %q", value)
	}
}

func (p SpecialColorPolicy) String() string {
	switch p {
	case SpecialColorCommander:
		return "commander"
	case SpecialColorFromMonster:
		return "monster"
	default:
		return "none"
	}
}

// ParseOptions tunes setup parsing.
type ParseOptions struct {
	SpecialColor SpecialColorPolicy
}

// Catalog is the pair of tables built from catalog text.
type Catalog struct {
	Monsters *Monsters
	Presets  *Presets
}

// Build parses both tables. It returns no catalog when any row fails.
func Build(monsterText, setupText string, opts ParseOptions) (*Catalog, error) {
	monsters, err := ParseMonsters(monsterText)
	if err != nil {
		return nil, fmt.Errorf("monsters: %w", err)
	}
	presets, err := ParseSetups(setupText, monsters, opts)
	if err != nil {
		return nil, fmt.Errorf("setups: %w", err)
	}
	return &Catalog{Monsters: monsters, Presets: presets}, nil
}

type row struct {
	ctx    rowContext
	fields []string
}

// splitRows drops blank and comment lines, trims every field and the
// trailing empty fields of each row.
func splitRows(text string) []row {
	var rows []row
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Split(trimmed, ",")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		for len(fields) > 0 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		rows = append(rows, row{ctx: rowContext{line: i + 1, row: trimmed}, fields: fields})
	}
	return rows
}

// ParseMonsters reads monster rows:
//
//	Expansion,EnglishName,Color,RepresentedByOrSelf,GermanName
//
// A first row whose expansion field is "Expansion" is a header and skipped.
func ParseMonsters(text string) (*Monsters, error) {
	rows := splitRows(text)
	if len(rows) > 0 && rows[0].fields[0] == "Expansion" {
		rows = rows[1:]
	}

	list := make([]*Monster, 0, len(rows))
	lines := make(map[string]rowContext, len(rows))
	for _, r := range rows {
		if len(r.fields) != 5 {
			return nil, r.ctx.malformed(fmt.Sprintf("expected 5 fields, got %d", len(r.fields)))
		}
		expansion, err := game.ParseExpansion(r.fields[0])
		if err != nil {
			return nil, r.ctx.fieldError(apperrors.CodeCatalogUnknownExpansion, "expansion", r.fields[0], err)
		}
		color, err := game.ParseColor(r.fields[2])
		if err != nil {
			return nil, r.ctx.fieldError(apperrors.CodeCatalogUnknownColor, "color", r.fields[2], err)
		}
		name := r.fields[1]
		if name == "" {
			return nil, r.ctx.malformed("english name is required")
		}
		if _, dup := lines[name]; dup {
			return nil, r.ctx.monsterError(apperrors.CodeCatalogDuplicateMonster, name, "", "defined twice")
		}
		lines[name] = r.ctx

		represented := r.fields[3]
		if represented == selfRepresented {
			represented = ""
		}
		list = append(list, &Monster{
			NameEN:        name,
			NameDE:        r.fields[4],
			Expansion:     expansion,
			Color:         color,
			RepresentedBy: represented,
		})
	}

	monsters := NewMonsters(list)
	for _, m := range list {
		if m.RepresentedBy == "" {
			continue
		}
		ctx := lines[m.NameEN]
		if m.RepresentedBy == m.NameEN {
			return nil, ctx.monsterError(apperrors.CodeCatalogRepresentedBy, m.NameEN, m.RepresentedBy, "self reference must be written as self")
		}
		rep, ok := monsters.Lookup(m.RepresentedBy)
		if !ok {
			return nil, ctx.monsterError(apperrors.CodeCatalogRepresentedBy, m.NameEN, m.RepresentedBy, "represented by an unknown monster")
		}
		if rep.RepresentedBy != "" {
			return nil, ctx.monsterError(apperrors.CodeCatalogRepresentedBy, m.NameEN, m.RepresentedBy, "represented by a monster without its own miniature")
		}
	}
	return monsters, nil
}

// ParseSetups reads setup rows:
//
//	Expansion,Chapter,NameEN,NameDE,SlotCode,MonsterOrBlank,...
//
// Rows must be sorted by expansion and chapter.
func ParseSetups(text string, monsters *Monsters, opts ParseOptions) (*Presets, error) {
	rows := splitRows(text)
	list := make([]*Setup, 0, len(rows))
	for _, r := range rows {
		setup, err := parseSetup(r, monsters, opts)
		if err != nil {
			return nil, err
		}
		if n := len(list); n > 0 {
			prev := list[n-1]
			if setup.Expansion < prev.Expansion || (setup.Expansion == prev.Expansion && setup.Chapter < prev.Chapter) {
				return nil, r.ctx.errorf(apperrors.CodeCatalogSetupOrder, map[string]string{"Name": setup.NameEN},
					"setup %q (%s %d) comes after %q (%s %d)",
					setup.NameEN, setup.Expansion, setup.Chapter, prev.NameEN, prev.Expansion, prev.Chapter)
			}
		}
		list = append(list, setup)
	}
	return &Presets{list: list}, nil
}

func parseSetup(r row, monsters *Monsters, opts ParseOptions) (*Setup, error) {
	if len(r.fields) < 4 {
		return nil, r.ctx.malformed(fmt.Sprintf("expected at least 4 fields, got %d", len(r.fields)))
	}
	expansion, err := game.ParseExpansion(r.fields[0])
	if err != nil {
		return nil, r.ctx.fieldError(apperrors.CodeCatalogUnknownExpansion, "expansion", r.fields[0], err)
	}
	chapter, err := strconv.Atoi(r.fields[1])
	if err != nil || chapter < 0 {
		if err == nil {
			err = fmt.Errorf("chapter must not be negative")
		}
		return nil, r.ctx.fieldError(apperrors.CodeCatalogInvalidChapter, "chapter", r.fields[1], err)
	}
	if r.fields[2] == "" {
		return nil, r.ctx.malformed("english name is required")
	}

	setup := &Setup{
		Expansion: expansion,
		Chapter:   chapter,
		NameEN:    r.fields[2],
		NameDE:    r.fields[3],
	}

	last := game.MinNumber
	rest := r.fields[4:]
	for i := 0; i < len(rest); i += 2 {
		code := rest[i]
		name := ""
		if i+1 < len(rest) {
			name = rest[i+1]
		}
		if code == "" && name == "" {
			continue
		}
		slot, err := parseSlotCode(code, r.ctx)
		if err != nil {
			return nil, err
		}
		if !slot.Exclude {
			if slot.Number < last {
				return nil, r.ctx.errorf(apperrors.CodeCatalogSlotOrder, map[string]string{"Value": code},
					"slot %q: number decreased from %s", code, last)
			}
			last = slot.Number
		}
		if err := bindSlot(&slot, code, name, monsters, opts, r.ctx); err != nil {
			return nil, err
		}
		setup.Slots = append(setup.Slots, slot)
	}
	return setup, nil
}

func bindSlot(slot *Slot, code, name string, monsters *Monsters, opts ParseOptions, ctx rowContext) error {
	inferred := !slot.Exclude && slot.Color == game.ColorUnspecified
	switch {
	case name == "":
		if inferred {
			return ctx.errorf(apperrors.CodeCatalogSpecialWithoutName, map[string]string{"Value": code},
				"slot %q: special slot without a monster", code)
		}
		return nil

	case strings.HasPrefix(name, "*"):
		specialName := strings.TrimPrefix(name, "*")
		if !slot.Exclude && slot.Color.HasRank() {
			return ctx.monsterError(apperrors.CodeCatalogColorMismatch, specialName, code, "special units need a C or S slot")
		}
		kind, ok := game.LookupSpecial(specialName)
		if !ok {
			return ctx.monsterError(apperrors.CodeCatalogUnknownSpecial, specialName, code, "unknown special unit")
		}
		slot.Tier = game.SpecialTier(kind)
		if color, ok := kind.ForcedColor(); ok && !slot.Exclude {
			slot.Color = color
		}
		slot.Monster = PureSpecial
		if monsterName, ok := kind.RepresentedBy(); ok {
			m, found := monsters.Lookup(monsterName)
			if !found {
				return ctx.monsterError(apperrors.CodeCatalogUnknownMonster, monsterName, code, "special unit stand-in is missing")
			}
			slot.Monster = m
		}

	default:
		m, ok := monsters.Lookup(name)
		if !ok {
			return ctx.monsterError(apperrors.CodeCatalogUnknownMonster, name, code, "unknown monster")
		}
		if !slot.Exclude && !inferred && m.Color != slot.Color {
			return ctx.monsterError(apperrors.CodeCatalogColorMismatch, name, code,
				fmt.Sprintf("monster is %s", m.Color))
		}
		slot.Monster = m
	}

	if inferred && slot.Color == game.ColorUnspecified {
		slot.Color = inferColor(slot.Monster, opts.SpecialColor)
	}
	return nil
}

func inferColor(m *Monster, policy SpecialColorPolicy) game.Color {
	switch policy {
	case SpecialColorCommander:
		return game.ColorCommander
	case SpecialColorFromMonster:
		if m != nil && !m.IsPureSpecial() {
			return m.Color
		}
	}
	return game.ColorUnspecified
}
