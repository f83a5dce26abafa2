package mcp

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "data/spawning.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Profile != "default" {
		t.Fatalf("expected default profile, got %q", cfg.Profile)
	}
	if cfg.SpecialColor != "none" {
		t.Fatalf("expected special color none, got %q", cfg.SpecialColor)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SPAWNING_PROFILE", "env-profile")
	t.Setenv("SPAWNING_SEED", "12")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-db-path", "flag.db", "-special-color", "monster"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
	if cfg.Profile != "env-profile" {
		t.Fatalf("expected env profile, got %q", cfg.Profile)
	}
	if cfg.Seed != 12 {
		t.Fatalf("expected env seed, got %d", cfg.Seed)
	}
	if cfg.SpecialColor != "monster" {
		t.Fatalf("expected flag special color, got %q", cfg.SpecialColor)
	}
}

func TestParseConfigRejectsBadSeed(t *testing.T) {
	t.Setenv("SPAWNING_SEED", "lots")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for malformed seed")
	}
}

func TestRunRejectsSpecialColor(t *testing.T) {
	if err := Run(context.Background(), Config{SpecialColor: "purple"}); err == nil {
		t.Fatal("expected error for unknown special color")
	}
}
