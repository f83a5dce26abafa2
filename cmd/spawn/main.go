// Package main prints a randomized Drunagor encounter.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	spawncmd "github.com/louisbranch/spawning/internal/cmd/spawn"
	"github.com/louisbranch/spawning/internal/platform/config"
	apperrors "github.com/louisbranch/spawning/internal/platform/errors"
)

func main() {
	cfg, err := spawncmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := spawncmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %s", apperrors.Localize(err, cfg.Locale()))
	}
}
