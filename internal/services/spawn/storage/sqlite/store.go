// Package sqlite provides a SQLite-backed settings store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/spawning/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/louisbranch/spawning/internal/services/spawn/storage"
	"github.com/louisbranch/spawning/internal/services/spawn/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists settings in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.SettingsStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite settings store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetSettings returns the settings of profile, or storage.ErrNotFound.
func (s *Store) GetSettings(ctx context.Context, profile string) (storage.Settings, error) {
	if err := ctx.Err(); err != nil {
		return storage.Settings{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Settings{}, fmt.Errorf("storage is not configured")
	}
	profile = storage.NormalizeProfile(profile)

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT language, message_language, expansions, players, use_preset,
		        preset_expansion, preset_chapter, updated_at
		   FROM settings
		  WHERE profile = ?`,
		profile,
	)
	var (
		language, messageLanguage, expansions, presetExpansion string
		players, presetChapter                                 int
		usePreset                                              bool
		updatedAt                                              int64
	)
	if err := row.Scan(&language, &messageLanguage, &expansions, &players, &usePreset,
		&presetExpansion, &presetChapter, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Settings{}, storage.ErrNotFound
		}
		return storage.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	settings := storage.Settings{
		Players:       game.Number(players),
		UsePreset:     usePreset,
		PresetChapter: presetChapter,
		UpdatedAt:     fromMillis(updatedAt),
	}
	var err error
	if settings.Language, err = game.ParseLanguage(language); err != nil {
		return storage.Settings{}, fmt.Errorf("decode language: %w", err)
	}
	if settings.MessageLanguage, err = game.ParseLanguage(messageLanguage); err != nil {
		return storage.Settings{}, fmt.Errorf("decode message language: %w", err)
	}
	if settings.Expansions, err = game.ParseExpansionSet(expansions); err != nil {
		return storage.Settings{}, fmt.Errorf("decode expansions: %w", err)
	}
	if settings.PresetExpansion, err = game.ParseExpansion(presetExpansion); err != nil {
		return storage.Settings{}, fmt.Errorf("decode preset expansion: %w", err)
	}
	return settings, nil
}

// PutSettings inserts or replaces the settings of profile.
func (s *Store) PutSettings(ctx context.Context, profile string, settings storage.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	updatedAt := settings.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO settings (
		   profile,
		   language,
		   message_language,
		   expansions,
		   players,
		   use_preset,
		   preset_expansion,
		   preset_chapter,
		   updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(profile) DO UPDATE SET
		   language = excluded.language,
		   message_language = excluded.message_language,
		   expansions = excluded.expansions,
		   players = excluded.players,
		   use_preset = excluded.use_preset,
		   preset_expansion = excluded.preset_expansion,
		   preset_chapter = excluded.preset_chapter,
		   updated_at = excluded.updated_at`,
		storage.NormalizeProfile(profile),
		settings.Language.Code(),
		settings.MessageLanguage.Code(),
		settings.Expansions.String(),
		int(settings.Players),
		settings.UsePreset,
		settings.PresetExpansion.String(),
		settings.PresetChapter,
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
