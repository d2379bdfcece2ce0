package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/sorting"
	"github.com/bmoreira/tubecrate/internal/storage"
	"github.com/bmoreira/tubecrate/internal/tasks"
	"github.com/urfave/cli/v3"
)

// BackupExport writes a snapshot of the whole collection, or of a
// single category with --category.
func (r *Runner) BackupExport(ctx context.Context, cmd *cli.Command) error {
	scope := tasks.ScopeAll
	if catID := cmd.String("category"); catID != "" {
		scope = catID
	}

	path, err := r.engine.ExportToFile(scope, cmd.String("output"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported to %s", path)
	return nil
}

// BackupImport applies a snapshot file, merging by default.
func (r *Runner) BackupImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("%w: snapshot file", shared.ErrMissingArgument)
	}

	mode := tasks.ImportMerge
	if cmd.Bool("replace") {
		mode = tasks.ImportReplace
	}

	result, err := r.engine.ImportFile(path, mode)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.writePlainln("✓ Imported snapshot: +%d categories, +%d videos (now %d / %d)",
		result.CategoriesAdded, result.VideosAdded,
		result.TotalCategories, result.TotalVideos)
	return nil
}

// Setup writes a starter config file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlainln("✓ Wrote %s — add your YouTube API key under [youtube]", path)
	return nil
}

// Prefs shows or updates the persisted preferences. Unlike config.toml,
// preferences live in the database next to the collections and override
// the config defaults.
func (r *Runner) Prefs(ctx context.Context, cmd *cli.Command) error {
	if token := cmd.String("sort"); token != "" {
		if !slices.Contains(sorting.VideoTokens(), token) {
			return fmt.Errorf("%w: unknown sort token %q", shared.ErrInvalidFlag, token)
		}

		r.settings.DefaultSort = token
		if err := r.store.Write(storage.KeySettings, r.settings); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}

		r.writePlainln("✓ Default sort set to %s", token)
		return nil
	}

	r.writePlainln("Default sort: %s", r.sortToken(""))
	return nil
}

// Info reports collection sizes and storage usage.
func (r *Runner) Info(ctx context.Context, cmd *cli.Command) error {
	usage := r.store.Usage()

	r.writePlainln("Categories: %d", r.catalog.Categories.Count())
	r.writePlainln("Videos:     %d", r.catalog.Videos.Count())
	r.writePlainln("Orphans:    %d", len(r.catalog.Videos.Orphans()))
	r.writePlainln("Storage:    %.2f / %.2f MB (%.1f%%)",
		float64(usage.Used)/(1024*1024),
		float64(usage.Total)/(1024*1024),
		usage.Percentage)
	return nil
}
