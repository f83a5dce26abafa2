// Package cataloglint validates monster and setup tables before they are
// shipped with the randomizer.
package cataloglint

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/content"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
)

const (
	monstersFile = "monsters.csv"
	setupsFile   = "setups.csv"
)

// Config holds configuration for the catalog lint tool.
type Config struct {
	// Dir holds monsters.csv and setups.csv; empty lints the embedded tables.
	Dir          string
	SpecialColor string
	Locale       string
	Verbose      bool
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{SpecialColor: "none", Locale: game.LanguageEN.Locale()}

	fs.StringVar(&cfg.Dir, "dir", "", "directory containing monsters.csv and setups.csv (default: embedded tables)")
	fs.StringVar(&cfg.SpecialColor, "special-color", cfg.SpecialColor, "color of special slots: none, commander or monster")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.BoolVar(&cfg.Verbose, "v", false, "print per-expansion counts")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		return Config{}, errors.New("locale is required")
	}
	return cfg, nil
}

// Run validates the tables and prints a summary.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	policy, err := catalog.ParseSpecialColorPolicy(cfg.SpecialColor)
	if err != nil {
		return err
	}

	monsterText, setupText, source, err := readTables(cfg.Dir)
	if err != nil {
		return err
	}
	cat, err := content.Build(monsterText, setupText, catalog.ParseOptions{SpecialColor: policy})
	if err != nil {
		return fmt.Errorf("%s: %s: %w", source, apperrors.Localize(err, cfg.Locale), err)
	}

	if cfg.Verbose {
		if err := writeExpansionCounts(out, cat); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "validated %d monster(s) and %d preset(s) from %s\n",
		cat.Monsters.Len(), cat.Presets.Len(), source)
	return err
}

func readTables(dir string) (string, string, string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return content.MonstersCSV(), content.SetupsCSV(), "embedded tables", nil
	}
	monsters, err := os.ReadFile(filepath.Join(dir, monstersFile))
	if err != nil {
		return "", "", "", fmt.Errorf("read %s: %w", monstersFile, err)
	}
	setups, err := os.ReadFile(filepath.Join(dir, setupsFile))
	if err != nil {
		return "", "", "", fmt.Errorf("read %s: %w", setupsFile, err)
	}
	return string(monsters), string(setups), dir, nil
}

func writeExpansionCounts(out io.Writer, cat *catalog.Catalog) error {
	monsters := make(map[game.Expansion]int)
	for _, m := range cat.Monsters.All() {
		monsters[m.Expansion]++
	}
	presets := make(map[game.Expansion]int)
	for _, s := range cat.Presets.All() {
		presets[s.Expansion]++
	}
	for _, exp := range game.Expansions() {
		if monsters[exp] == 0 && presets[exp] == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s: %d monster(s), %d preset(s)\n", exp, monsters[exp], presets[exp]); err != nil {
			return err
		}
	}
	return nil
}
