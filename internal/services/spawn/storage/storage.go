// Package storage defines persistence contracts for spawning settings.
package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

// DefaultProfile is the profile used when none is given.
const DefaultProfile = "default"

// ErrNotFound indicates a requested settings record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// Settings is the snapshot a session starts from.
type Settings struct {
	// Language names monsters and game terms.
	Language game.Language
	// MessageLanguage is the language of labels and warnings.
	MessageLanguage game.Language
	Expansions      game.ExpansionSet
	Players         game.Number
	UsePreset       bool
	PresetExpansion game.Expansion
	PresetChapter   int
	UpdatedAt       time.Time
}

// DefaultSettings returns the settings of a fresh profile.
func DefaultSettings() Settings {
	return Settings{
		Language:        game.LanguageEN,
		MessageLanguage: game.LanguageEN,
		Expansions:      game.DefaultExpansions(),
		Players:         game.MaxNumber,
		UsePreset:       true,
		PresetExpansion: game.ExpansionCore,
		PresetChapter:   1,
	}
}

// Validate checks the fields a user can set.
func (s Settings) Validate() error {
	if !s.Players.Valid() {
		return apperrors.WithMetadata(apperrors.CodeSettingsInvalidPlayers,
			"players must be between 1 and 5",
			map[string]string{"Value": strconv.Itoa(int(s.Players))})
	}
	for _, lang := range []game.Language{s.Language, s.MessageLanguage} {
		if !validLanguage(lang) {
			return apperrors.WithMetadata(apperrors.CodeSettingsInvalidLanguage,
				"unsupported language",
				map[string]string{"Value": strconv.Itoa(int(lang))})
		}
	}
	if !s.PresetExpansion.Valid() {
		return errors.New("preset expansion is required")
	}
	if s.PresetChapter < 0 {
		return errors.New("preset chapter must not be negative")
	}
	return nil
}

func validLanguage(lang game.Language) bool {
	for _, l := range game.Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

// NormalizeProfile trims a profile name and falls back to DefaultProfile.
func NormalizeProfile(profile string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return DefaultProfile
	}
	return profile
}

// SettingsStore persists settings per profile.
type SettingsStore interface {
	GetSettings(ctx context.Context, profile string) (Settings, error)
	PutSettings(ctx context.Context, profile string, settings Settings) error
}
