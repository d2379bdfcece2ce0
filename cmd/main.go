package main

import (
	"context"
	"os"

	"github.com/bmoreira/tubecrate/internal/services"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/storage"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	dbPath, err := config.DatabasePath()
	if err != nil {
		logger.Fatalf("failed to resolve data path: %v", err)
	}

	store, err := storage.Open(dbPath, storage.Options{
		Limit:  config.Storage.LimitMB * 1024 * 1024,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	var metadata services.MetadataService
	if config.YouTube.APIKey != "" {
		metadata = services.NewYouTubeService(config.YouTube.BaseURL, config.YouTube.APIKey, config.YouTube.RateLimit)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Store:    store,
		Metadata: metadata,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "tubecrate",
		Usage:    "Organize bookmarked YouTube videos into categories",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
