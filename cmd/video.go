package main

import (
	"context"
	"fmt"

	"github.com/bmoreira/tubecrate/internal/formatter"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/sorting"
	"github.com/urfave/cli/v3"
)

// VideoAdd fetches metadata for the given URL or id and stores the
// video in a category.
func (r *Runner) VideoAdd(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.Args().First()
	if ref == "" {
		return fmt.Errorf("%w: video URL or ID", shared.ErrMissingArgument)
	}

	if r.metadata == nil {
		return shared.ErrMissingAPIKey
	}

	meta, err := r.metadata.FetchVideo(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	video, err := r.catalog.AddVideo(*meta, cmd.String("category"))
	if err != nil {
		return err
	}

	r.writePlainln("✓ Added %q by %s [%s, %s views]",
		video.Title, video.Channel,
		formatter.FormatDuration(video.Duration),
		formatter.FormatViews(video.ViewCount))
	return nil
}

// VideoRemove deletes the videos named by the positional arguments.
func (r *Runner) VideoRemove(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: video ID", shared.ErrMissingArgument)
	}

	if len(ids) == 1 {
		if err := r.catalog.Videos.Delete(ids[0]); err != nil {
			return err
		}
	} else {
		r.catalog.Videos.DeleteMany(ids)
	}

	r.writePlainln("✓ Deleted %d video(s)", len(ids))
	return nil
}

// VideoWatch toggles the watched flag.
func (r *Runner) VideoWatch(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w: video ID", shared.ErrMissingArgument)
	}

	if err := r.catalog.Videos.ToggleWatched(id); err != nil {
		return err
	}

	video, _ := r.catalog.Videos.GetByID(id)
	r.writePlainln("✓ %q watched=%v", video.Title, video.Watched)
	return nil
}

// VideoFavorite toggles the favorite flag.
func (r *Runner) VideoFavorite(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("%w: video ID", shared.ErrMissingArgument)
	}

	if err := r.catalog.Videos.ToggleFavorite(id); err != nil {
		return err
	}

	video, _ := r.catalog.Videos.GetByID(id)
	r.writePlainln("✓ %q favorite=%v", video.Title, video.Favorite)
	return nil
}

// VideoMarkWatched sets (or clears, with --unwatched) the watched flag
// on every listed video; unknown ids are skipped.
func (r *Runner) VideoMarkWatched(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: video ID", shared.ErrMissingArgument)
	}

	r.catalog.Videos.SetWatchedMany(ids, !cmd.Bool("unwatched"))
	r.writePlainln("✓ Updated %d video(s)", len(ids))
	return nil
}

// VideoCopy adds the listed videos to another category without
// removing existing memberships.
func (r *Runner) VideoCopy(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: video ID", shared.ErrMissingArgument)
	}

	to := cmd.String("to")
	if _, ok := r.catalog.Categories.GetByID(to); !ok {
		return fmt.Errorf("destination %s: %w", to, shared.ErrCategoryNotFound)
	}

	if len(ids) == 1 {
		if err := r.catalog.Videos.AddToCategory(ids[0], to); err != nil {
			return err
		}
	} else {
		r.catalog.Videos.AddManyToCategory(ids, to)
	}

	r.writePlainln("✓ Copied %d video(s) to %s", len(ids), to)
	return nil
}

// VideoMove moves the listed videos from one category to another.
func (r *Runner) VideoMove(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("%w: video ID", shared.ErrMissingArgument)
	}

	from, to := cmd.String("from"), cmd.String("to")
	if _, ok := r.catalog.Categories.GetByID(to); !ok {
		return fmt.Errorf("destination %s: %w", to, shared.ErrCategoryNotFound)
	}

	if len(ids) == 1 {
		if err := r.catalog.Videos.MoveToCategory(ids[0], from, to); err != nil {
			return err
		}
	} else {
		r.catalog.Videos.MoveManyToCategory(ids, from, to)
	}

	r.writePlainln("✓ Moved %d video(s) from %s to %s", len(ids), from, to)
	return nil
}

// VideoList prints videos, scoped to a category when --category is set
// and narrowed by --search, --unwatched, and --fav.
func (r *Runner) VideoList(ctx context.Context, cmd *cli.Command) error {
	videos := r.catalog.Videos.All()
	if catID := cmd.String("category"); catID != "" {
		if _, ok := r.catalog.Categories.GetByID(catID); !ok {
			return fmt.Errorf("category %s: %w", catID, shared.ErrCategoryNotFound)
		}
		videos = r.catalog.Videos.GetByCategory(catID)
	}

	if term := cmd.String("search"); term != "" {
		videos = sorting.Search(videos, term)
	}
	if cmd.Bool("unwatched") {
		videos = sorting.Unwatched(videos)
	}
	if cmd.Bool("fav") {
		videos = sorting.Favorites(videos)
	}

	videos = r.sorter.Videos(videos, r.sortToken(cmd.String("sort")))

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	if len(videos) == 0 {
		r.writePlainln("No videos.")
		return nil
	}

	for _, v := range videos {
		marks := ""
		if v.Watched {
			marks += " [watched]"
		}
		if v.Favorite {
			marks += " [fav]"
		}
		r.writePlainln("%s  %s — %s [%s, %s views]%s",
			v.ID, v.Title, v.Channel,
			formatter.FormatDuration(v.Duration),
			formatter.FormatViews(v.ViewCount),
			marks)
	}
	return nil
}

// OrphansList prints videos without any category membership.
func (r *Runner) OrphansList(ctx context.Context, cmd *cli.Command) error {
	orphans := r.catalog.Videos.Orphans()
	if len(orphans) == 0 {
		r.writePlainln("No orphan videos.")
		return nil
	}

	for _, v := range orphans {
		r.writePlainln("%s  %s — %s", v.ID, v.Title, v.Channel)
	}
	return nil
}

// OrphansSweep deletes every orphan video.
func (r *Runner) OrphansSweep(ctx context.Context, cmd *cli.Command) error {
	deleted := r.catalog.Videos.DeleteOrphans()
	r.writePlainln("✓ Removed %d orphan video(s)", deleted)
	return nil
}
