// Package mcp parses MCP command flags and serves a randomizer session over stdio.
package mcp

import (
	"context"
	"flag"
	"log"

	entrypoint "github.com/louisbranch/spawning/internal/platform/cmd"
	mcpservice "github.com/louisbranch/spawning/internal/services/mcp/service"
	"github.com/louisbranch/spawning/internal/services/spawn/app"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath       string `env:"SPAWNING_DB_PATH"       envDefault:"data/spawning.db"`
	Profile      string `env:"SPAWNING_PROFILE"       envDefault:"default"`
	SpecialColor string `env:"SPAWNING_SPECIAL_COLOR" envDefault:"none"`
	Seed         int64  `env:"SPAWNING_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite settings file (empty keeps settings in memory)")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "settings profile")
	fs.StringVar(&cfg.SpecialColor, "special-color", cfg.SpecialColor, "color of special slots: none, commander or monster")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server on stdio.
func Run(ctx context.Context, cfg Config) error {
	policy, err := catalog.ParseSpecialColorPolicy(cfg.SpecialColor)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		svc, closeStore, err := app.Open(ctx, app.OpenConfig{
			DBPath:       cfg.DBPath,
			Profile:      cfg.Profile,
			SpecialColor: policy,
			Seed:         cfg.Seed,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				log.Printf("close settings store: %v", err)
			}
		}()
		log.Printf("serving profile %q with seed %d", cfg.Profile, svc.Seed())
		return mcpservice.Run(ctx, svc)
	})
}
