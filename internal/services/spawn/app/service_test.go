package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/selection"
	"github.com/louisbranch/spawning/internal/services/spawn/storage"
)

const monsterRows = `Core,Rotten Flesh,White,self,Verrottetes Fleisch
Core,Fallen Soldier,White,self,Gefallener Soldat
Core,Shadow Knight,Gray,self,Schattenritter
Core,Lord of Ruin,Commander,self,Herr des Verfalls
Awakenings,Rotten Brute,White,Rotten Flesh,Verrotteter Rohling
Awakenings,Bone Reaver,Gray,self,Knochenhaeher
RiseOfTheUndeadDragon,Undead Dragon,SpecialCommander,self,Untoter Drache
`

const setupRows = `Core,1,The Old Gate,Das alte Tor,C1,Lord of Ruin,W1 Ro,
Core,1,Crossroads,Kreuzweg,W1 Ro,,G2 Ro,
Awakenings,1,The Awakening,Das Erwachen,W1 Ro,Rotten Brute,G2 Fi,
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Build(monsterRows, setupRows, catalog.ParseOptions{})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func newService(t *testing.T, store storage.SettingsStore) *Service {
	t.Helper()
	svc, err := New(context.Background(), testCatalog(t), store, Options{Seed: 17})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewLoadsDefaultPreset(t *testing.T) {
	svc := newService(t, newFakeSettingsStore())
	sheet := svc.Sheet()
	if sheet.Preset == nil || sheet.Preset.NameEN != "The Old Gate" {
		t.Fatalf("preset = %+v", sheet.Preset)
	}
	if len(sheet.Rows) != 2 || !sheet.Rows[0].Slot.Preset {
		t.Fatalf("rows = %+v", sheet.Rows)
	}
	if svc.Seed() != 17 || sheet.Seed != 17 {
		t.Fatalf("seed = %d", svc.Seed())
	}
}

func TestNewUsesStoredSettings(t *testing.T) {
	store := newFakeSettingsStore()
	stored := storage.DefaultSettings()
	stored.UsePreset = false
	stored.Players = 2
	stored.Language = game.LanguageDE
	store.settings[storage.DefaultProfile] = stored

	svc := newService(t, store)
	if got := svc.Settings(); got.Players != 2 || got.Language != game.LanguageDE {
		t.Fatalf("settings = %+v", got)
	}
	if len(svc.Slots()) != 0 || svc.Sheet().Preset != nil {
		t.Fatal("custom mode starts empty")
	}
}

func TestNewFailsOnStoreError(t *testing.T) {
	store := newFakeSettingsStore()
	store.getErr = errStoreDown
	_, err := New(context.Background(), testCatalog(t), store, Options{})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewWithoutStoreOrSeed(t *testing.T) {
	svc, err := New(context.Background(), testCatalog(t), nil, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if svc.Seed() == 0 {
		t.Fatal("expected a drawn seed")
	}
	if err := svc.SetPlayers(context.Background(), 3); err != nil {
		t.Fatalf("set players without store: %v", err)
	}
}

func TestLoadPresetPersistsSelection(t *testing.T) {
	ctx := context.Background()
	store := newFakeSettingsStore()
	svc := newService(t, store)
	if err := svc.ToggleExpansion(ctx, game.ExpansionAwakenings); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := svc.LoadPreset(ctx, game.ExpansionAwakenings, 1, 0); err != nil {
		t.Fatalf("load preset: %v", err)
	}
	saved := store.settings[storage.DefaultProfile]
	if !saved.UsePreset || saved.PresetExpansion != game.ExpansionAwakenings || saved.PresetChapter != 1 {
		t.Fatalf("saved = %+v", saved)
	}
	sheet := svc.Sheet()
	if sheet.Rows[0].Slot.Monster.NameEN != "Rotten Brute" || sheet.Rows[0].Miniature.NameEN != "Rotten Flesh" {
		t.Fatalf("rows = %+v", sheet.Rows)
	}
}

func TestLoadPresetNotFound(t *testing.T) {
	svc := newService(t, nil)
	err := svc.LoadPreset(context.Background(), game.ExpansionCore, 9, 0)
	if apperrors.CodeOf(err) != apperrors.CodePresetNotFound {
		t.Fatalf("err = %v", err)
	}
	if got := apperrors.Localize(err, "en-US"); got != "No preset 0 for Core chapter 9" {
		t.Fatalf("localized = %q", got)
	}
}

func TestAddSlot(t *testing.T) {
	ctx := context.Background()
	store := newFakeSettingsStore()
	svc := newService(t, store)

	if err := svc.AddSlot(ctx, "G2 Fi", "Shadow Knight"); err != nil {
		t.Fatalf("add slot: %v", err)
	}
	if svc.Sheet().Preset != nil {
		t.Fatal("custom edit keeps the preset")
	}
	if store.settings[storage.DefaultProfile].UsePreset {
		t.Fatal("custom edit must leave preset mode")
	}
	slots := svc.Slots()
	last := slots[len(slots)-1]
	if last.Monster == nil || last.Monster.NameEN != "Shadow Knight" || last.Preset {
		t.Fatalf("slot = %+v", last)
	}
}

func TestAddSlotRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		monster string
		want    apperrors.Code
	}{
		{name: "bad code", code: "X1 Ro", want: apperrors.CodeCatalogInvalidSlotCode},
		{name: "missing level", code: "W1", want: apperrors.CodeCatalogLevelMissing},
		{name: "special", code: "S1", monster: "Undead Dragon", want: apperrors.CodeSlotInvalid},
		{name: "unknown monster", code: "W1 Ro", monster: "Nobody", want: apperrors.CodeSlotInvalid},
		{name: "color mismatch", code: "W1 Ro", monster: "Shadow Knight", want: apperrors.CodeSlotInvalid},
		{name: "bare exclude", code: "Exclude", want: apperrors.CodeSlotInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, nil)
			before := len(svc.Slots())
			err := svc.AddSlot(context.Background(), tt.code, tt.monster)
			if got := apperrors.CodeOf(err); got != tt.want {
				t.Fatalf("code = %s, want %s (%v)", got, tt.want, err)
			}
			if len(svc.Slots()) != before {
				t.Fatal("rejected slot was added")
			}
		})
	}
}

func TestExcludeSlot(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	if err := svc.UseCustom(ctx); err != nil {
		t.Fatalf("use custom: %v", err)
	}
	if err := svc.AddSlot(ctx, "Exclude", "Rotten Flesh"); err != nil {
		t.Fatalf("exclude: %v", err)
	}
	if err := svc.AddSlot(ctx, "W1 Ro", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	for i := 0; i < 10; i++ {
		svc.Randomize(ctx)
		rows := svc.Sheet().Rows
		if len(rows) != 1 || rows[0].Slot.Monster.NameEN != "Fallen Soldier" {
			t.Fatalf("rows = %+v", rows)
		}
	}
}

func TestRemoveSlot(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	if err := svc.RemoveSlot(ctx, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(svc.Slots()) != 1 {
		t.Fatalf("slots = %+v", svc.Slots())
	}
	err := svc.RemoveSlot(ctx, 5)
	if !errors.Is(err, selection.ErrSlotIndex) {
		t.Fatalf("err = %v", err)
	}
}

func TestRandomizeKeepsPresetMonsters(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	for i := 0; i < 10; i++ {
		svc.Randomize(ctx)
		rows := svc.Sheet().Rows
		if rows[0].Slot.Monster.NameEN != "Lord of Ruin" || !rows[0].Slot.Preset {
			t.Fatalf("rows = %+v", rows)
		}
	}
}

func TestFailureReported(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	if err := svc.UseCustom(ctx); err != nil {
		t.Fatalf("use custom: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := svc.AddSlot(ctx, "G1 Ro", ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	err := svc.Failure()
	if apperrors.CodeOf(err) != apperrors.CodeAssignmentImpossible {
		t.Fatalf("failure = %v", err)
	}
	if got := apperrors.Localize(err, "de-DE"); got != "Zu viele verschiedene Monster angefordert" {
		t.Fatalf("localized = %q", got)
	}
	if !svc.Sheet().Failed || len(svc.Sheet().Rows) != 0 {
		t.Fatal("expected failed empty sheet")
	}

	if err := svc.ToggleExpansion(ctx, game.ExpansionAwakenings); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if svc.Failure() != nil {
		t.Fatal("awakenings adds a second gray monster")
	}
}

func TestToggleExpansionUnbindsMonsters(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	if err := svc.ToggleExpansion(ctx, game.ExpansionAwakenings); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if err := svc.LoadPreset(ctx, game.ExpansionAwakenings, 1, 0); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := svc.ToggleExpansion(ctx, game.ExpansionAwakenings); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	for _, row := range svc.Sheet().Rows {
		if row.Slot.Monster.Expansion != game.ExpansionCore {
			t.Fatalf("stale monster %s", row.Slot.Monster.NameEN)
		}
	}
	if svc.Settings().Expansions.Has(game.ExpansionAwakenings) {
		t.Fatal("settings still list awakenings")
	}
}

func TestSettingsValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeSettingsStore()
	svc := newService(t, store)
	err := svc.SetPlayers(ctx, 0)
	if apperrors.CodeOf(err) != apperrors.CodeSettingsInvalidPlayers {
		t.Fatalf("err = %v", err)
	}
	if svc.Settings().Players != game.MaxNumber {
		t.Fatal("invalid players applied")
	}

	store.putErr = errStoreDown
	if err := svc.SetLanguage(ctx, game.LanguageDE); !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v", err)
	}
	if svc.Settings().Language != game.LanguageEN {
		t.Fatal("failed save must not change settings")
	}
}

func TestPlayersFadeRows(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	if err := svc.LoadPreset(ctx, game.ExpansionCore, 1, 1); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := svc.SetPlayers(ctx, 1); err != nil {
		t.Fatalf("players: %v", err)
	}
	rows := svc.Sheet().Rows
	if !rows[0].Active || rows[1].Active {
		t.Fatalf("active = %v %v", rows[0].Active, rows[1].Active)
	}
}

func TestPickAndFilter(t *testing.T) {
	svc := newService(t, nil)
	whites := svc.Pick(game.ColorWhite)
	if len(whites) != 2 || whites[0].NameEN != "Fallen Soldier" {
		t.Fatalf("whites = %+v", whites)
	}
	if err := svc.SetLanguage(context.Background(), game.LanguageDE); err != nil {
		t.Fatalf("language: %v", err)
	}
	if whites := svc.Pick(game.ColorWhite); whites[0].NameEN != "Fallen Soldier" {
		t.Fatalf("german order = %s", whites[0].NameEN)
	}

	found, err := svc.FilterMonsters(`expansion = "Awakenings"`)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found = %d", len(found))
	}
	if _, err := svc.FilterMonsters(`size = "big"`); err == nil {
		t.Fatal("expected filter error")
	}
}

func TestPresetNavigation(t *testing.T) {
	svc := newService(t, nil)
	exps := svc.PresetExpansions()
	if len(exps) != 2 || exps[0] != game.ExpansionCore {
		t.Fatalf("expansions = %v", exps)
	}
	if chapters := svc.Chapters(game.ExpansionCore); len(chapters) != 1 || chapters[0] != 1 {
		t.Fatalf("chapters = %v", chapters)
	}
	if setups := svc.Setups(game.ExpansionCore, 1); len(setups) != 2 {
		t.Fatalf("setups = %d", len(setups))
	}
}

func TestConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				svc.Randomize(ctx)
				return
			}
			_ = svc.Sheet()
		}(i)
	}
	wg.Wait()
	if rows := svc.Sheet().Rows; len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if !strings.HasPrefix(svc.Sheet().Title(), "Core") {
		t.Fatalf("title = %q", svc.Sheet().Title())
	}
}
