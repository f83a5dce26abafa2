package main

import (
	"context"
	"flag"
	"os"

	entrypoint "github.com/louisbranch/spawning/internal/platform/cmd"
	"github.com/louisbranch/spawning/internal/platform/config"
	"github.com/louisbranch/spawning/internal/tools/cataloglint"
)

func main() {
	cfg, err := cataloglint.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	err = entrypoint.RunWithTelemetry(context.Background(), entrypoint.ServiceCatalogLint, func(ctx context.Context) error {
		return cataloglint.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
