package catalog

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

const testMonsters = `Expansion,Name,Color,Miniature,NameDE
Core,Rotten Flesh,White,self,Verrottetes Fleisch
Core,Fallen Soldier,White,self,Gefallener Soldat
Core,Bone Hound,Gray,self,Knochenhund
Core,Lord of Ruin,Commander,self,Herr des Verfalls
Awakenings,Rotten Brute,White,Rotten Flesh,Verrotteter Rohling
RiseOfTheUndeadDragon,Undead Dragon,SpecialCommander,self,Untoter Drache
`

func mustMonsters(t *testing.T) *Monsters {
	t.Helper()
	monsters, err := ParseMonsters(testMonsters)
	if err != nil {
		t.Fatalf("parse monsters: %v", err)
	}
	return monsters
}

func requireCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error", code)
	}
	if !errors.Is(err, apperrors.New(code, "")) {
		t.Fatalf("error = %v (code %s), want %s", err, apperrors.CodeOf(err), code)
	}
}

func TestParseMonsters(t *testing.T) {
	monsters := mustMonsters(t)
	if monsters.Len() != 6 {
		t.Fatalf("monsters = %d, want 6", monsters.Len())
	}
	brute, ok := monsters.Lookup("Rotten Brute")
	if !ok {
		t.Fatal("expected Rotten Brute")
	}
	if brute.Expansion != game.ExpansionAwakenings || brute.Color != game.ColorWhite {
		t.Fatalf("brute = %+v", brute)
	}
	if got := monsters.Miniature(brute).NameEN; got != "Rotten Flesh" {
		t.Fatalf("miniature = %q", got)
	}
	flesh, _ := monsters.Lookup("Rotten Flesh")
	if monsters.Miniature(flesh) != flesh {
		t.Fatal("self represented monster is its own miniature")
	}
	if got := flesh.Name(game.LanguageDE); got != "Verrottetes Fleisch" {
		t.Fatalf("de name = %q", got)
	}
}

func TestParseMonstersErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code apperrors.Code
	}{
		{
			name: "duplicate name",
			text: "Core,Rotten Flesh,White,self,A\nCore,Rotten Flesh,Gray,self,B\n",
			code: apperrors.CodeCatalogDuplicateMonster,
		},
		{
			name: "unknown expansion",
			text: "Basegame,Rotten Flesh,White,self,A\n",
			code: apperrors.CodeCatalogUnknownExpansion,
		},
		{
			name: "unknown color",
			text: "Core,Rotten Flesh,Purple,self,A\n",
			code: apperrors.CodeCatalogUnknownColor,
		},
		{
			name: "too few fields",
			text: "Core,Rotten Flesh,White\n",
			code: apperrors.CodeCatalogRowMalformed,
		},
		{
			name: "dangling representation",
			text: "Core,Rotten Flesh,White,Nobody,A\n",
			code: apperrors.CodeCatalogRepresentedBy,
		},
		{
			name: "self reference by name",
			text: "Core,Rotten Flesh,White,Rotten Flesh,A\n",
			code: apperrors.CodeCatalogRepresentedBy,
		},
		{
			name: "two hops",
			text: "Core,A,White,self,A\nCore,B,White,A,B\nCore,C,White,B,C\n",
			code: apperrors.CodeCatalogRepresentedBy,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMonsters(tt.text)
			requireCode(t, err, tt.code)
		})
	}
}

func TestParseMonstersErrorNamesField(t *testing.T) {
	_, err := ParseMonsters("# roster\nCore,Rotten Flesh,Purple,self,A\n")
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.Metadata["Field"] != "color" || domainErr.Metadata["Line"] != "2" {
		t.Fatalf("metadata = %v", domainErr.Metadata)
	}
	if !strings.Contains(err.Error(), "Purple") {
		t.Fatalf("message %q should quote the row", err.Error())
	}
}

func TestParseSetups(t *testing.T) {
	monsters := mustMonsters(t)
	text := `Core,1,Ambush at the Gate,Hinterhalt am Tor,Exclude,Bone Hound,C1,Lord of Ruin,W1 Ro,,W2 Fi,,,
Core,1,Second,Zweite,W1 Ro,Rotten Flesh,S3,*Undead Dragon
Core,2,Brute,Rohling,C1,*Commander Brute,G2 Ve,
Awakenings,1,Awake,Erwacht,B5 Ch,
`
	presets, err := ParseSetups(text, monsters, ParseOptions{})
	if err != nil {
		t.Fatalf("parse setups: %v", err)
	}
	if presets.Len() != 4 {
		t.Fatalf("setups = %d, want 4", presets.Len())
	}

	first, ok := presets.Find(game.ExpansionCore, 1, 0)
	if !ok {
		t.Fatal("expected first setup")
	}
	if len(first.Slots) != 4 {
		t.Fatalf("slots = %d, want 4", len(first.Slots))
	}
	exclude := first.Slots[0]
	if !exclude.Exclude || exclude.Monster == nil || exclude.Monster.NameEN != "Bone Hound" {
		t.Fatalf("exclude slot = %+v", exclude)
	}
	commander := first.Slots[1]
	if commander.Color != game.ColorCommander || !commander.Tier.IsSpecial() || commander.Monster.NameEN != "Lord of Ruin" {
		t.Fatalf("commander slot = %+v", commander)
	}
	open := first.Slots[3]
	if open.Resolved() || open.Number != 2 || open.Tier != game.RankTier(game.RankFighter) {
		t.Fatalf("open slot = %+v", open)
	}

	second, _ := presets.Find(game.ExpansionCore, 1, 1)
	dragon := second.Slots[1]
	if dragon.Monster == nil || dragon.Monster.NameEN != "Undead Dragon" {
		t.Fatalf("dragon slot = %+v", dragon)
	}
	if dragon.Tier != game.SpecialTier(game.SpecialUndeadDragon) || dragon.Color != game.ColorUnspecified {
		t.Fatalf("dragon slot = %+v", dragon)
	}

	brute, _ := presets.Find(game.ExpansionCore, 2, 0)
	if brute.Slots[0].Monster != PureSpecial || brute.Slots[0].Color != game.ColorCommander {
		t.Fatalf("brute slot = %+v", brute.Slots[0])
	}

	if got := presets.Chapters(game.ExpansionCore); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("chapters = %v", got)
	}
	if got := presets.Expansions(game.LanguageEN); len(got) != 2 || got[0] != game.ExpansionCore {
		t.Fatalf("expansions = %v", got)
	}
	if _, ok := presets.Find(game.ExpansionCore, 1, 2); ok {
		t.Fatal("expected index out of range")
	}
}

func TestParseSetupsSpecialColorPolicy(t *testing.T) {
	monsters := mustMonsters(t)
	text := "RiseOfTheUndeadDragon,1,Dragon,Drache,S1,*Undead Dragon,S2,*Ambush\n"
	tests := []struct {
		policy SpecialColorPolicy
		dragon game.Color
		ambush game.Color
	}{
		{SpecialColorNone, game.ColorUnspecified, game.ColorUnspecified},
		{SpecialColorCommander, game.ColorCommander, game.ColorCommander},
		{SpecialColorFromMonster, game.ColorSpecialCommander, game.ColorUnspecified},
	}
	for _, tt := range tests {
		presets, err := ParseSetups(text, monsters, ParseOptions{SpecialColor: tt.policy})
		if err != nil {
			t.Fatalf("%v: parse: %v", tt.policy, err)
		}
		slots := presets.All()[0].Slots
		if slots[0].Color != tt.dragon || slots[1].Color != tt.ambush {
			t.Fatalf("%v: colors = %v, %v", tt.policy, slots[0].Color, slots[1].Color)
		}
		if slots[1].Monster != PureSpecial {
			t.Fatalf("%v: ambush should bind the sentinel", tt.policy)
		}
	}
}

func TestParseSetupsErrors(t *testing.T) {
	monsters := mustMonsters(t)
	tests := []struct {
		name string
		text string
		code apperrors.Code
	}{
		{"decreasing numbers", "Core,1,X,Y,G2 Ro,Bone Hound,G1 Ro,\n", apperrors.CodeCatalogSlotOrder},
		{"missing level space", "Core,1,X,Y,G2Ro,,G1Ro,\n", apperrors.CodeCatalogInvalidSlotCode},
		{"unknown color letter", "Core,1,X,Y,R1 Ro,\n", apperrors.CodeCatalogInvalidSlotCode},
		{"number out of range", "Core,1,X,Y,W6 Ro,\n", apperrors.CodeCatalogInvalidSlotCode},
		{"unknown level", "Core,1,X,Y,W1 Xx,\n", apperrors.CodeCatalogInvalidSlotCode},
		{"commander level", "Core,1,X,Y,C1 Ro,\n", apperrors.CodeCatalogLevelNotAllowed},
		{"missing level", "Core,1,X,Y,W1,\n", apperrors.CodeCatalogLevelMissing},
		{"unknown monster", "Core,1,X,Y,W1 Ro,Nobody\n", apperrors.CodeCatalogUnknownMonster},
		{"color mismatch", "Core,1,X,Y,W1 Ro,Bone Hound\n", apperrors.CodeCatalogColorMismatch},
		{"unknown special", "Core,1,X,Y,C1,*Nobody\n", apperrors.CodeCatalogUnknownSpecial},
		{"special on regular slot", "Core,1,X,Y,W1 Ro,*Ambush\n", apperrors.CodeCatalogColorMismatch},
		{"special without monster", "Core,1,X,Y,S1,\n", apperrors.CodeCatalogSpecialWithoutName},
		{"unknown expansion", "Base,1,X,Y\n", apperrors.CodeCatalogUnknownExpansion},
		{"bad chapter", "Core,one,X,Y\n", apperrors.CodeCatalogInvalidChapter},
		{"too few fields", "Core,1\n", apperrors.CodeCatalogRowMalformed},
		{"unordered setups", "Core,2,X,Y\nCore,1,Z,W\n", apperrors.CodeCatalogSetupOrder},
		{"unordered expansions", "Awakenings,1,X,Y\nCore,3,Z,W\n", apperrors.CodeCatalogSetupOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSetups(tt.text, monsters, ParseOptions{})
			requireCode(t, err, tt.code)
		})
	}
}

func TestParseSetupsRejectsDecreasingNumbersExample(t *testing.T) {
	monsters := mustMonsters(t)
	// Without a space before the level the code itself is rejected.
	_, err := ParseSetups("Core,1,X,Y,G2Ro,M1,G1Ro,M2", monsters, ParseOptions{})
	requireCode(t, err, apperrors.CodeCatalogInvalidSlotCode)

	_, err = ParseSetups("Core,1,X,Y,G2 Ro,,G1 Ro,", monsters, ParseOptions{})
	requireCode(t, err, apperrors.CodeCatalogSlotOrder)
}

func TestParseSetupsExcludeSkipsOrderAndColor(t *testing.T) {
	text := "Core,1,X,Y,W3 Ro,,Exclude,Lord of Ruin,W4 Ro,\n"
	presets, err := ParseSetups(text, mustMonsters(t), ParseOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(presets.All()[0].Slots); got != 3 {
		t.Fatalf("slots = %d, want 3", got)
	}
}

func TestBuildWrapsFailures(t *testing.T) {
	_, err := Build("Core,A,White,self,A\nCore,A,White,self,A\n", "", ParseOptions{})
	requireCode(t, err, apperrors.CodeCatalogDuplicateMonster)

	cat, err := Build(testMonsters, "Core,1,X,Y,W1 Ro,\n", ParseOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if cat.Monsters.Len() != 6 || cat.Presets.Len() != 1 {
		t.Fatalf("catalog = %d monsters, %d presets", cat.Monsters.Len(), cat.Presets.Len())
	}
}

func TestParseSlotCode(t *testing.T) {
	tests := []struct {
		code string
		want Slot
	}{
		{"W1 Ro", Slot{Number: 1, Color: game.ColorWhite, Tier: game.RankTier(game.RankRookie)}},
		{"B5 Ch", Slot{Number: 5, Color: game.ColorBlack, Tier: game.RankTier(game.RankChampion)}},
		{"C2", Slot{Number: 2, Color: game.ColorCommander, Tier: game.SpecialTier(game.SpecialNone)}},
		{"Exclude", Slot{Exclude: true}},
	}
	for _, tt := range tests {
		got, err := ParseSlotCode(tt.code)
		if err != nil {
			t.Fatalf("ParseSlotCode(%q): %v", tt.code, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSlotCode(%q) = %+v, want %+v", tt.code, got, tt.want)
		}
		if got.Code() != tt.code {
			t.Fatalf("Code() = %q, want %q", got.Code(), tt.code)
		}
	}
}

func TestCheckSpecials(t *testing.T) {
	if err := mustMonsters(t).CheckSpecials(); err != nil {
		t.Fatalf("check specials: %v", err)
	}
	monsters, err := ParseMonsters("Core,Rotten Flesh,White,self,A\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireCode(t, monsters.CheckSpecials(), apperrors.CodeCatalogSpecialMonsterUnset)
}

func TestPick(t *testing.T) {
	monsters := mustMonsters(t)
	enabled := game.NewExpansionSet(game.ExpansionCore, game.ExpansionAwakenings)
	got := monsters.Pick(game.ColorWhite, enabled, game.LanguageEN)
	var names []string
	for _, m := range got {
		names = append(names, m.NameEN)
	}
	if strings.Join(names, ",") != "Fallen Soldier,Rotten Brute,Rotten Flesh" {
		t.Fatalf("pick = %v", names)
	}
	if got := monsters.Pick(game.ColorWhite, game.DefaultExpansions(), game.LanguageEN); len(got) != 2 {
		t.Fatalf("core whites = %d, want 2", len(got))
	}
}

func TestRosterMarksBoundSlotsPreset(t *testing.T) {
	presets, err := ParseSetups("Core,1,X,Y,C1,Lord of Ruin,W1 Ro,\n", mustMonsters(t), ParseOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	setup := presets.All()[0]
	roster := setup.Roster()
	if !roster[0].Preset || roster[1].Preset {
		t.Fatalf("roster = %+v", roster)
	}
	roster[1].Monster = roster[0].Monster
	if setup.Slots[1].Monster != nil {
		t.Fatal("roster must be a copy")
	}
}
