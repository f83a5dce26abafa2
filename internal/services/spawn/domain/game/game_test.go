package game

import (
	"errors"
	"testing"
)

func TestColorNames(t *testing.T) {
	tests := []struct {
		color  Color
		lang   Language
		name   string
		short  string
		prefix string
	}{
		{ColorWhite, LanguageEN, "White", "WM", "W"},
		{ColorBlack, LanguageEN, "Black", "BM", "B"},
		{ColorBlack, LanguageDE, "Schwarz", "SM", "S"},
		{ColorCommander, LanguageDE, "Kommandant", "Kommandant", "K"},
		{ColorGray, LanguageDE, "Grau", "GM", "G"},
	}
	for _, tt := range tests {
		if got := tt.color.Name(tt.lang); got != tt.name {
			t.Fatalf("%v.Name(%v) = %q, want %q", tt.color, tt.lang, got, tt.name)
		}
		if got := tt.color.Short(tt.lang); got != tt.short {
			t.Fatalf("%v.Short(%v) = %q, want %q", tt.color, tt.lang, got, tt.short)
		}
		if got := tt.color.Prefix(tt.lang); got != tt.prefix {
			t.Fatalf("%v.Prefix(%v) = %q, want %q", tt.color, tt.lang, got, tt.prefix)
		}
	}
}

func TestColorSize(t *testing.T) {
	if got, ok := ColorGray.Size(LanguageDE); !ok || got != "klein" {
		t.Fatalf("gray size = %q, %v", got, ok)
	}
	if got, ok := ColorBlack.Size(LanguageEN); !ok || got != "big" {
		t.Fatalf("black size = %q, %v", got, ok)
	}
	if _, ok := ColorCommander.Size(LanguageEN); ok {
		t.Fatal("commander has no size")
	}
}

func TestSpecialColorHelpersPanic(t *testing.T) {
	calls := map[string]func(){
		"Name":        func() { ColorSpecial.Name(LanguageEN) },
		"Short":       func() { ColorSpecialCommander.Short(LanguageDE) },
		"Prefix":      func() { ColorSpecialCommander.Prefix(LanguageEN) },
		"PrefixLower": func() { ColorSpecial.PrefixLower() },
	}
	for op, call := range calls {
		err := capturePanic(call)
		var invalid *InvalidOperandError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected *InvalidOperandError, got %v", op, err)
		}
		if invalid.Op != op {
			t.Fatalf("op = %q, want %q", invalid.Op, op)
		}
	}
	if got := ColorSpecialCommander.PrefixLower(); got != "c" {
		t.Fatalf("special commander prefix = %q, want c", got)
	}
}

func TestColorCodes(t *testing.T) {
	for _, c := range Colors() {
		got, ok := ColorFromCode(c.Code())
		if !ok || got != c {
			t.Fatalf("ColorFromCode(%q) = %v, %v", c.Code(), got, ok)
		}
	}
	if got, ok := ColorFromCode('S'); !ok || got != ColorUnspecified {
		t.Fatalf("S = %v, %v", got, ok)
	}
	if _, ok := ColorFromCode('X'); ok {
		t.Fatal("expected X to be rejected")
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("SpecialCommander")
	if err != nil || got != ColorSpecialCommander {
		t.Fatalf("ParseColor = %v, %v", got, err)
	}
	if _, err := ParseColor("white"); err == nil {
		t.Fatal("expected exact match")
	}
}

func TestExpansionNamesAndOrder(t *testing.T) {
	if got := ExpansionCore.Name(LanguageDE); got != "Grundspiel" {
		t.Fatalf("core de = %q", got)
	}
	if got := ExpansionDesertOfTheHellscar.Name(LanguageEN); got != "Desert of the Hellscar" {
		t.Fatalf("desert en = %q", got)
	}
	if got := ExpansionCore.DisplayKey(LanguageEN); got != "!first" {
		t.Fatalf("core display key = %q", got)
	}
	if ExpansionApocalypse.DisplayKey(LanguageEN) <= ExpansionCore.DisplayKey(LanguageEN) {
		t.Fatal("core must sort first")
	}
	if len(Expansions()) != 10 {
		t.Fatalf("expansions = %d, want 10", len(Expansions()))
	}
}

func TestParseExpansion(t *testing.T) {
	got, err := ParseExpansion("RiseOfTheUndeadDragon")
	if err != nil || got != ExpansionRiseOfTheUndeadDragon {
		t.Fatalf("ParseExpansion = %v, %v", got, err)
	}
	if _, err := ParseExpansion("Rise of the Undead Dragon"); err == nil {
		t.Fatal("expected identifier match only")
	}
	got, err = MatchExpansion("kriegsbeute")
	if err != nil || got != ExpansionSpoilsOfWar {
		t.Fatalf("MatchExpansion = %v, %v", got, err)
	}
}

func TestExpansionSet(t *testing.T) {
	s := DefaultExpansions()
	if !s.Has(ExpansionCore) || s.Len() != 1 {
		t.Fatalf("default = %v", s)
	}
	s = s.Toggle(ExpansionAwakenings)
	if !s.Has(ExpansionAwakenings) {
		t.Fatal("expected awakenings after toggle")
	}
	if got := s.String(); got != "Core,Awakenings" {
		t.Fatalf("string = %q", got)
	}
	s = s.Toggle(ExpansionCore)
	if s.Has(ExpansionCore) {
		t.Fatal("expected core removed")
	}
	if s.Has(ExpansionUnspecified) || NewExpansionSet(ExpansionUnspecified) != 0 {
		t.Fatal("unspecified is never a member")
	}

	parsed, err := ParseExpansionSet("core, SpoilsOfWar,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != NewExpansionSet(ExpansionCore, ExpansionSpoilsOfWar) {
		t.Fatalf("parsed = %v", parsed)
	}
	if _, err := ParseExpansionSet("Core,Nope"); err == nil {
		t.Fatal("expected unknown expansion error")
	}
}

func TestRanksAndTiers(t *testing.T) {
	r, err := ParseRankID("Ve")
	if err != nil || r != RankVeteran {
		t.Fatalf("ParseRankID = %v, %v", r, err)
	}
	if _, err := ParseRankID("ve"); err == nil {
		t.Fatal("expected exact rank code")
	}
	if got := RankChampion.Name(LanguageDE); got != "Meister" {
		t.Fatalf("champion de = %q", got)
	}
	if got := RankTier(RankFighter).Name(LanguageDE); got != "Kämpfer" {
		t.Fatalf("fighter tier de = %q", got)
	}
	if !SpecialTier(SpecialNone).IsSpecial() || RankTier(RankRookie).IsSpecial() {
		t.Fatal("unexpected special arm")
	}
	if got := SpecialTier(SpecialNone).Name(LanguageEN); got != "" {
		t.Fatalf("bare special tier name = %q", got)
	}
	if RankTier(RankRookie) == SpecialTier(SpecialNone) {
		t.Fatal("tiers must differ")
	}
}

func TestSpecialKinds(t *testing.T) {
	k, ok := LookupSpecial("Commander Brute")
	if !ok || k != SpecialCommanderBrute {
		t.Fatalf("LookupSpecial = %v, %v", k, ok)
	}
	if c, ok := k.ForcedColor(); !ok || c != ColorCommander {
		t.Fatalf("forced color = %v, %v", c, ok)
	}
	if _, ok := k.RepresentedBy(); ok {
		t.Fatal("commander brute has no monster")
	}
	if name, ok := SpecialUndeadDragon.RepresentedBy(); !ok || name != "Undead Dragon" {
		t.Fatalf("represented by = %q, %v", name, ok)
	}
	if _, ok := LookupSpecial("Untoter Drache"); ok {
		t.Fatal("lookup is by English name")
	}
	if got := SpecialAmbush.Name(LanguageDE); got != "Hinterhalt" {
		t.Fatalf("ambush de = %q", got)
	}
}

func TestNumber(t *testing.T) {
	n, err := ParseNumber('3')
	if err != nil || n != 3 {
		t.Fatalf("ParseNumber = %v, %v", n, err)
	}
	if _, err := ParseNumber('6'); err == nil {
		t.Fatal("expected 6 to be rejected")
	}
	if !Number(3).ActiveFor(4) || Number(5).ActiveFor(4) || !NumberNone.ActiveFor(1) {
		t.Fatal("unexpected ActiveFor")
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"en", LanguageEN},
		{"de", LanguageDE},
		{"de-AT", LanguageDE},
		{"German", LanguageDE},
		{"en-GB", LanguageEN},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLanguage(%q) = %v, %v", tt.in, got, err)
		}
	}
	for _, bad := range []string{"", "fr"} {
		if _, err := ParseLanguage(bad); err == nil {
			t.Fatalf("ParseLanguage(%q) expected error", bad)
		}
	}
	if got := LanguageDE.Name(LanguageEN); got != "German" {
		t.Fatalf("de name = %q", got)
	}
}

func capturePanic(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			}
		}
	}()
	fn()
	return nil
}

func TestLookupSpecialEveryKind(t *testing.T) {
	for _, k := range SpecialKinds() {
		ident := specialTable[k].ident
		got, ok := LookupSpecial(ident)
		if !ok || got != k {
			t.Fatalf("LookupSpecial(%q) = %v, %v, want %v", ident, got, ok, k)
		}
		if name := k.Name(LanguageEN); name != ident {
			t.Fatalf("%v: english name %q differs from catalog name %q", k, name, ident)
		}
	}
}

func TestTextLeavesPercentSignsAlone(t *testing.T) {
	if got := LanguageDE.Text("core.unknown_%d"); got != "core.unknown_%d" {
		t.Fatalf("unknown key = %q", got)
	}
	if got := LanguageDE.Text("core.heading.encounter"); got != "Begegnung" {
		t.Fatalf("encounter heading = %q", got)
	}
	if got := Language(9).Text("core.label.players"); got != "Players" {
		t.Fatalf("fallback = %q", got)
	}
}
