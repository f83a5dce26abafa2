// Package spawn parses randomizer command flags and prints one encounter.
package spawn

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	entrypoint "github.com/louisbranch/spawning/internal/platform/cmd"
	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
	"github.com/louisbranch/spawning/internal/services/spawn/app"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/catalog"
	"github.com/louisbranch/spawning/internal/services/spawn/domain/game"
	"github.com/louisbranch/spawning/internal/services/spawn/render"
)

const (
	formatText = "text"
	formatHTML = "html"
)

// Config holds spawn command configuration.
type Config struct {
	DBPath       string `env:"SPAWNING_DB_PATH" envDefault:"data/spawning.db"`
	Profile      string `env:"SPAWNING_PROFILE" envDefault:"default"`
	SpecialColor string `env:"SPAWNING_SPECIAL_COLOR" envDefault:"none"`
	Lang         string `env:"SPAWNING_LANG"`
	MessageLang  string `env:"SPAWNING_MESSAGE_LANG"`
	Format       string `env:"SPAWNING_FORMAT" envDefault:"text"`
	Seed         int64  `env:"SPAWNING_SEED"`
	Players      int
	Expansions   string
	Preset       string
	Slots        string
	Filter       string
	ListPresets  bool
	ListMonsters bool
	Verbose      bool
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
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "language for monster names: en or de")
	fs.StringVar(&cfg.MessageLang, "message-lang", cfg.MessageLang, "language for labels and errors: en or de")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: text or html")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.Players, "players", 0, "number of players, 1 to 5 (0 = keep stored)")
	fs.StringVar(&cfg.Expansions, "expansions", "", "comma separated enabled expansions (empty = keep stored)")
	fs.StringVar(&cfg.Preset, "preset", "", "preset as expansion:chapter[:index], e.g. Core:2")
	fs.StringVar(&cfg.Slots, "slots", "", "custom slots, e.g. \"W1 Ro,G2 Fi,C3=Necromancer,Exclude=Rotten Flesh\"")
	fs.StringVar(&cfg.Filter, "filter", "", "AIP-160 filter for -list-monsters")
	fs.BoolVar(&cfg.ListPresets, "list-presets", false, "list presets and exit")
	fs.BoolVar(&cfg.ListMonsters, "list-monsters", false, "list monsters and exit")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Locale returns the locale errors are reported in.
func (c Config) Locale() string {
	lang, err := game.ParseLanguage(c.MessageLang)
	if err != nil {
		return game.LanguageEN.Locale()
	}
	return lang.Locale()
}

// Run applies the configuration to the stored session and writes the result.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = formatText
	}
	if format != formatText && format != formatHTML {
		return fmt.Errorf("format %q is not supported", cfg.Format)
	}
	policy, err := catalog.ParseSpecialColorPolicy(cfg.SpecialColor)
	if err != nil {
		return err
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSpawn, func(ctx context.Context) error {
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
		if cfg.Verbose {
			log.Printf("seed %d", svc.Seed())
		}

		if err := applySettings(ctx, svc, cfg); err != nil {
			return err
		}
		switch {
		case cfg.ListPresets:
			return listPresets(out, svc)
		case cfg.ListMonsters:
			return listMonsters(out, svc, cfg.Filter)
		}
		if err := applySelection(ctx, svc, cfg); err != nil {
			return err
		}

		sheet := svc.Sheet()
		if format == formatHTML {
			return render.HTML(sheet).Render(ctx, out)
		}
		return render.Text(out, sheet)
	})
}

func applySettings(ctx context.Context, svc *app.Service, cfg Config) error {
	if strings.TrimSpace(cfg.Lang) != "" {
		lang, err := game.ParseLanguage(cfg.Lang)
		if err != nil {
			return err
		}
		if err := svc.SetLanguage(ctx, lang); err != nil {
			return err
		}
	}
	if strings.TrimSpace(cfg.MessageLang) != "" {
		lang, err := game.ParseLanguage(cfg.MessageLang)
		if err != nil {
			return err
		}
		if err := svc.SetMessageLanguage(ctx, lang); err != nil {
			return err
		}
	}
	if cfg.Players != 0 {
		if cfg.Players < 0 || cfg.Players > int(game.MaxNumber) {
			return apperrors.WithMetadata(apperrors.CodeSettingsInvalidPlayers,
				fmt.Sprintf("invalid player count %d", cfg.Players),
				map[string]string{"Value": strconv.Itoa(cfg.Players)})
		}
		if err := svc.SetPlayers(ctx, game.Number(cfg.Players)); err != nil {
			return err
		}
	}
	if strings.TrimSpace(cfg.Expansions) != "" {
		want, err := parseExpansions(cfg.Expansions)
		if err != nil {
			return err
		}
		current := svc.Settings().Expansions
		for _, exp := range game.Expansions() {
			if current.Has(exp) != want.Has(exp) {
				if err := svc.ToggleExpansion(ctx, exp); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseExpansions(value string) (game.ExpansionSet, error) {
	var set game.ExpansionSet
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		exp, err := game.MatchExpansion(part)
		if err != nil {
			return 0, err
		}
		set = set.With(exp)
	}
	return set, nil
}

func applySelection(ctx context.Context, svc *app.Service, cfg Config) error {
	if strings.TrimSpace(cfg.Preset) != "" {
		exp, chapter, index, err := parsePreset(cfg.Preset)
		if err != nil {
			return err
		}
		return svc.LoadPreset(ctx, exp, chapter, index)
	}
	if strings.TrimSpace(cfg.Slots) != "" {
		if err := svc.UseCustom(ctx); err != nil {
			return err
		}
		for _, part := range strings.Split(cfg.Slots, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			code, monster, _ := strings.Cut(part, "=")
			if err := svc.AddSlot(ctx, code, monster); err != nil {
				return err
			}
		}
		return nil
	}
	svc.Randomize(ctx)
	return nil
}

// parsePreset reads "expansion:chapter[:index]".
func parsePreset(value string) (game.Expansion, int, int, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("preset %q must be expansion:chapter[:index]", value)
	}
	exp, err := game.MatchExpansion(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}
	chapter, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("preset chapter %q: %w", parts[1], err)
	}
	index := 0
	if len(parts) == 3 {
		index, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("preset index %q: %w", parts[2], err)
		}
	}
	return exp, chapter, index, nil
}

func listPresets(out io.Writer, svc *app.Service) error {
	lang := svc.Settings().Language
	for _, exp := range svc.PresetExpansions() {
		for _, chapter := range svc.Chapters(exp) {
			for i, setup := range svc.Setups(exp, chapter) {
				if _, err := fmt.Fprintf(out, "%s:%d:%d\t%s\n", exp, chapter, i, setup.Name(lang)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func listMonsters(out io.Writer, svc *app.Service, filterStr string) error {
	monsters, err := svc.FilterMonsters(filterStr)
	if err != nil {
		return err
	}
	lang := svc.Settings().Language
	for _, m := range monsters {
		line := fmt.Sprintf("%s\t%s\t%s", m.Expansion, m.Color, m.Name(lang))
		if m.RepresentedBy != "" {
			line += " (" + m.RepresentedBy + ")"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
