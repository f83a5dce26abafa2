package domain

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/louisbranch/spawning/internal/services/spawn/render"
	"github.com/louisbranch/spawning/internal/services/spawn/storage"
)

// Session is the randomizer session the tools drive. *app.Service
// implements it.
type Session interface {
	Settings() storage.Settings
	ToggleExpansion(ctx context.Context, exp game.Expansion) error
	PresetExpansions() []game.Expansion
	Chapters(exp game.Expansion) []int
	Setups(exp game.Expansion, chapter int) []*catalog.Setup
	LoadPreset(ctx context.Context, exp game.Expansion, chapter, index int) error
	AddSlot(ctx context.Context, code, monsterName string) error
	RemoveSlot(ctx context.Context, index int) error
	Randomize(ctx context.Context)
	Slots() []catalog.Slot
	FilterMonsters(filterStr string) ([]*catalog.Monster, error)
	Sheet() render.Sheet
}

// toolError carries the localized message of a session error while keeping
// the original chain for errors.Is and apperrors.CodeOf.
type toolError struct {
	message string
	err     error
}

func (e *toolError) Error() string {
	return e.message
}

func (e *toolError) Unwrap() error {
	return e.err
}

// localizeError renders err in the session's message language.
func localizeError(session Session, op string, err error) error {
	locale := session.Settings().MessageLanguage.Locale()
	return &toolError{
		message: fmt.Sprintf("%s: %s", op, apperrors.Localize(err, locale)),
		err:     err,
	}
}

// parseExpansion accepts an identifier or a localized expansion name.
func parseExpansion(value string) (game.Expansion, error) {
	if strings.TrimSpace(value) == "" {
		return game.ExpansionUnspecified, fmt.Errorf("expansion is required")
	}
	return game.MatchExpansion(value)
}
