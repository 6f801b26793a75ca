// Command peervault runs the peer inventory service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peervault/peervault/internal/inventory"
	"github.com/peervault/peervault/internal/inventory/config"
	"github.com/peervault/peervault/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "peervault: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadWithPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		AddSource:  cfg.Log.AddSource,
		Component:  cfg.Service.Name,
		Version:    cfg.Service.Version,
		TimeFormat: cfg.Log.TimeFormat,
	})

	svc, err := inventory.NewService(cfg, log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		return err
	}

	return svc.WaitForShutdown(ctx)
}
