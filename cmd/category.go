package main

import (
	"context"
	"fmt"

	"github.com/bmoreira/tubecrate/internal/repositories"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/urfave/cli/v3"
)

// CategoryAdd creates a category from the first positional argument.
func (r *Runner) CategoryAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("%w: category name", shared.ErrMissingArgument)
	}

	category, err := r.catalog.Categories.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.writePlainln("✓ Created category %q (%s)", category.Name, category.ID)
	return nil
}

// CategoryRename renames a category.
func (r *Runner) CategoryRename(ctx context.Context, cmd *cli.Command) error {
	if err := r.catalog.Categories.Rename(cmd.String("id"), cmd.String("name")); err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}

	r.writePlainln("✓ Renamed category %s", cmd.String("id"))
	return nil
}

// CategoryRemove deletes a category. The membership edge is always
// stripped from every video; --delete-videos also removes videos this
// category was the last home of.
func (r *Runner) CategoryRemove(ctx context.Context, cmd *cli.Command) error {
	mode := repositories.CascadeKeepOrphans
	if cmd.Bool("delete-videos") {
		mode = repositories.CascadeDeleteOrphans
	}

	id := cmd.String("id")
	if err := r.catalog.DeleteCategory(id, mode); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	r.writePlainln("✓ Deleted category %s", id)
	return nil
}

// CategoryList prints categories with their video counts.
func (r *Runner) CategoryList(ctx context.Context, cmd *cli.Command) error {
	categories := r.sorter.Categories(r.catalog.Categories.All(), cmd.String("sort"))
	counts := r.catalog.Videos.CountsByCategory()

	if cmd.Bool("json") {
		return r.writeJSON(categories, cmd.Bool("pretty"))
	}

	if len(categories) == 0 {
		r.writePlainln("No categories yet. Create one with: tubecrate category add <name>")
		return nil
	}

	for _, c := range categories {
		r.writePlainln("%s  %s (%d videos)", c.ID, c.Name, counts[c.ID])
	}
	return nil
}
