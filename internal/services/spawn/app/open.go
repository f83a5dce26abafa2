package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/spawning/internal/services/spawn/content"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/storage"
	"github.com/louisbranch/spawning/internal/services/spawn/storage/sqlite"
)

// OpenConfig locates the catalog and settings a command session runs on.
type OpenConfig struct {
	// DBPath is the SQLite settings file; empty keeps settings in memory.
	DBPath       string
	Profile      string
	SpecialColor catalog.SpecialColorPolicy
	Seed         int64
}

// Open builds the embedded catalog, opens the settings store and starts a
// session. The returned close function releases the store.
func Open(ctx context.Context, cfg OpenConfig) (*Service, func() error, error) {
	noop := func() error { return nil }

	cat, err := content.Load(catalog.ParseOptions{SpecialColor: cfg.SpecialColor})
	if err != nil {
		return nil, noop, fmt.Errorf("load catalog: %w", err)
	}

	var store storage.SettingsStore
	closeStore := noop
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("create storage dir: %w", err)
			}
		}
		sqlStore, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		store = sqlStore
		closeStore = sqlStore.Close
	}

	svc, err := New(ctx, cat, store, Options{Profile: cfg.Profile, Seed: cfg.Seed})
	if err != nil {
		_ = closeStore()
		return nil, noop, err
	}
	return svc, closeStore, nil
}
