// Package app runs one randomizer session: settings, the current selection
// and its rendering, behind a single lock.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	platformotel "github.com/louisbranch/spawning/internal/platform/otel"
	"github.com/louisbranch/spawning/internal/random"
	"github.com/louisbranch/spawning/internal/services/spawn/content/filter"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/assign"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/selection"
	"github.com/louisbranch/spawning/internal/services/spawn/render"
	"github.com/louisbranch/spawning/internal/services/spawn/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Options configures a session.
type Options struct {
	// Profile selects the stored settings row.
	Profile string
	// Seed fixes the shuffle; zero draws a fresh seed.
	Seed int64
}

// Service is one session. It is safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	store    storage.SettingsStore
	profile  string
	settings storage.Settings
	state    *selection.State
	seed     int64
	tracer   trace.Tracer
}

// New starts a session from the stored settings of opts.Profile. A nil store
// keeps settings in memory only.
func New(ctx context.Context, cat *catalog.Catalog, store storage.SettingsStore, opts Options) (*Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	profile := storage.NormalizeProfile(opts.Profile)

	settings := storage.DefaultSettings()
	if store != nil {
		stored, err := store.GetSettings(ctx, profile)
		switch {
		case err == nil:
			settings = stored
		case errors.Is(err, storage.ErrNotFound):
		default:
			return nil, fmt.Errorf("load settings: %w", err)
		}
	}

	rng, seed, err := random.NewRand(opts.Seed)
	if err != nil {
		return nil, err
	}

	s := &Service{
		catalog:  cat,
		store:    store,
		profile:  profile,
		settings: settings,
		seed:     seed,
		tracer:   platformotel.Tracer("app"),
	}
	s.state = selection.NewState(assign.NewEngine(cat.Monsters, rng), settings.Expansions)
	if settings.UsePreset {
		if setup, ok := cat.Presets.Find(settings.PresetExpansion, settings.PresetChapter, 0); ok {
			s.state.LoadPreset(ctx, setup)
		}
	}
	return s, nil
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.tracer.Start(ctx, "app."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Seed returns the seed the session shuffles with.
func (s *Service) Seed() int64 {
	return s.seed
}

// Catalog returns the catalog the session draws from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Settings returns the current settings.
func (s *Service) Settings() storage.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Service) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.PutSettings(ctx, s.profile, s.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SetLanguage sets the language of monster and game names.
func (s *Service) SetLanguage(ctx context.Context, lang game.Language) (err error) {
	ctx, span := s.start(ctx, "SetLanguage", attribute.String("spawn.language", lang.Code()))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.Language = lang
	return s.apply(ctx, next)
}

// SetMessageLanguage sets the language of labels and warnings.
func (s *Service) SetMessageLanguage(ctx context.Context, lang game.Language) (err error) {
	ctx, span := s.start(ctx, "SetMessageLanguage", attribute.String("spawn.language", lang.Code()))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.MessageLanguage = lang
	return s.apply(ctx, next)
}

// SetPlayers sets the player count used to fade unused rows.
func (s *Service) SetPlayers(ctx context.Context, players game.Number) (err error) {
	ctx, span := s.start(ctx, "SetPlayers", attribute.Int("spawn.players", int(players)))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.Players = players
	return s.apply(ctx, next)
}

// apply validates next, persists it and makes it current.
func (s *Service) apply(ctx context.Context, next storage.Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	prev := s.settings
	s.settings = next
	if err := s.persist(ctx); err != nil {
		s.settings = prev
		return err
	}
	return nil
}

// ToggleExpansion adds or removes an expansion from the pool and unbinds
// slots holding its monsters.
func (s *Service) ToggleExpansion(ctx context.Context, exp game.Expansion) (err error) {
	ctx, span := s.start(ctx, "ToggleExpansion", attribute.String("spawn.expansion", exp.String()))
	defer func() { endSpan(span, err) }()

	if !exp.Valid() {
		return fmt.Errorf("unknown expansion %d", exp)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.Expansions = next.Expansions.Toggle(exp)
	if err := s.apply(ctx, next); err != nil {
		return err
	}
	s.state.SetEnabled(ctx, next.Expansions)
	s.logFailure("toggle expansion")
	return nil
}

// PresetExpansions lists expansions that have presets, Core first.
func (s *Service) PresetExpansions() []game.Expansion {
	s.mu.Lock()
	lang := s.settings.Language
	s.mu.Unlock()
	return s.catalog.Presets.Expansions(lang)
}

// Chapters lists the chapters of an expansion that have presets.
func (s *Service) Chapters(exp game.Expansion) []int {
	return s.catalog.Presets.Chapters(exp)
}

// Setups lists the presets of one chapter.
func (s *Service) Setups(exp game.Expansion, chapter int) []*catalog.Setup {
	return s.catalog.Presets.Setups(exp, chapter)
}

// LoadPreset replaces the selection with the index-th preset of a chapter.
func (s *Service) LoadPreset(ctx context.Context, exp game.Expansion, chapter, index int) (err error) {
	ctx, span := s.start(ctx, "LoadPreset",
		attribute.String("spawn.expansion", exp.String()),
		attribute.Int("spawn.chapter", chapter),
		attribute.Int("spawn.preset.index", index))
	defer func() { endSpan(span, err) }()

	setup, ok := s.catalog.Presets.Find(exp, chapter, index)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodePresetNotFound,
			fmt.Sprintf("no preset %d for %s chapter %d", index, exp, chapter),
			map[string]string{
				"Expansion": exp.String(),
				"Chapter":   strconv.Itoa(chapter),
				"Index":     strconv.Itoa(index),
			})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.UsePreset = true
	next.PresetExpansion = exp
	next.PresetChapter = chapter
	if err := s.apply(ctx, next); err != nil {
		return err
	}
	s.state.LoadPreset(ctx, setup)
	s.logFailure("load preset")
	return nil
}

// UseCustom switches to a custom selection, starting empty.
func (s *Service) UseCustom(ctx context.Context) (err error) {
	ctx, span := s.start(ctx, "UseCustom")
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.UsePreset = false
	if err := s.apply(ctx, next); err != nil {
		return err
	}
	s.state.Clear(ctx)
	return nil
}

// AddSlot appends a slot written in catalog notation ("W1 Ro", "C3",
// "Exclude"). monsterName optionally fixes its monster by English name; an
// Exclude slot needs one.
func (s *Service) AddSlot(ctx context.Context, code, monsterName string) (err error) {
	ctx, span := s.start(ctx, "AddSlot", attribute.String("spawn.slot.code", code))
	defer func() { endSpan(span, err) }()

	slot, err := catalog.ParseSlotCode(strings.TrimSpace(code))
	if err != nil {
		return err
	}
	monsterName = strings.TrimSpace(monsterName)
	if err := s.checkCustomSlot(&slot, code, monsterName); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	next.UsePreset = false
	if err := s.apply(ctx, next); err != nil {
		return err
	}
	if slot.Exclude {
		s.state.Exclude(ctx, slot.Monster)
	} else {
		s.state.AddSlot(ctx, slot.Number, slot.Color, slot.Tier, slot.Monster)
	}
	s.logFailure("add slot")
	return nil
}

func (s *Service) checkCustomSlot(slot *catalog.Slot, code, monsterName string) error {
	invalid := func(reason string) error {
		return apperrors.WithMetadata(apperrors.CodeSlotInvalid,
			fmt.Sprintf("slot %q: %s", code, reason),
			map[string]string{"Value": code})
	}
	if !slot.Exclude && slot.Color == game.ColorUnspecified {
		return invalid("special slots come from presets")
	}
	if monsterName == "" {
		if slot.Exclude {
			return invalid("exclude needs a monster")
		}
		return nil
	}
	m, ok := s.catalog.Monsters.Lookup(monsterName)
	if !ok {
		return invalid(fmt.Sprintf("unknown monster %q", monsterName))
	}
	if !slot.Exclude && m.Color != slot.Color {
		return invalid(fmt.Sprintf("monster %q is %s", monsterName, m.Color))
	}
	slot.Monster = m
	return nil
}

// RemoveSlot deletes the slot at index.
func (s *Service) RemoveSlot(ctx context.Context, index int) (err error) {
	ctx, span := s.start(ctx, "RemoveSlot", attribute.Int("spawn.slot.index", index))
	defer func() { endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.RemoveSlot(ctx, index); err != nil {
		return err
	}
	s.logFailure("remove slot")
	return nil
}

// Randomize draws a new assignment for the current slots.
func (s *Service) Randomize(ctx context.Context) {
	ctx, span := s.start(ctx, "Randomize")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Randomize(ctx)
	s.logFailure("randomize")
}

// Slots returns the current selection.
func (s *Service) Slots() []catalog.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Slots()
}

// Pick lists the monsters of color in enabled expansions, sorted by name.
func (s *Service) Pick(color game.Color) []*catalog.Monster {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	return s.catalog.Monsters.Pick(color, settings.Expansions, settings.Language)
}

// FilterMonsters returns catalog monsters matching an AIP-160 filter.
func (s *Service) FilterMonsters(filterStr string) ([]*catalog.Monster, error) {
	return filter.Monsters(s.catalog.Monsters.All(), filterStr)
}

// Sheet returns the current encounter ready for rendering.
func (s *Service) Sheet() render.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Sheet{
		Rows:            render.Rows(s.state.Output(), s.catalog.Monsters, s.settings.Players),
		Preset:          s.state.ActivePreset(),
		Failed:          s.state.Failed(),
		Players:         s.settings.Players,
		Language:        s.settings.Language,
		MessageLanguage: s.settings.MessageLanguage,
		Seed:            s.seed,
	}
}

// Failure returns the assignment error of the last recompute, or nil.
func (s *Service) Failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Failed() {
		return nil
	}
	return apperrors.New(apperrors.CodeAssignmentImpossible, "too many different monsters requested")
}

func (s *Service) logFailure(op string) {
	if s.state.Failed() {
		log.Printf("spawn: %s: no assignment for %d slots over %s (seed %d)",
			op, len(s.state.Slots()), s.state.Enabled(), s.seed)
	}
}
