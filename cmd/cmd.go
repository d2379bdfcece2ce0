// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// categoryCommand handles category CRUD
func categoryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "category",
		Aliases: []string{"cat"},
		Usage:   "Manage categories",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a new category",
				ArgsUsage: "<name>",
				Action:    r.CategoryAdd,
			},
			{
				Name:  "rename",
				Usage: "Rename a category",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Category ID to rename",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "New category name",
						Required: true,
					},
				},
				Action: r.CategoryRename,
			},
			{
				Name:  "rm",
				Usage: "Delete a category",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Category ID to delete",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "delete-videos",
						Usage: "Also delete videos left without a category",
					},
				},
				Action: r.CategoryRemove,
			},
			{
				Name:  "list",
				Usage: "List categories with video counts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort token (dateCreatedAsc/Desc, nameAsc/Desc)",
						Value: "dateCreatedDesc",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CategoryList,
			},
		},
	}
}

// videoCommand handles video operations
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"vid"},
		Usage:   "Manage videos",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Fetch metadata and add a video to a category",
				ArgsUsage: "<url-or-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Category ID the video is added to",
						Required: true,
					},
				},
				Action: r.VideoAdd,
			},
			{
				Name:      "rm",
				Usage:     "Delete one or more videos",
				ArgsUsage: "<id> [id...]",
				Action:    r.VideoRemove,
			},
			{
				Name:      "watch",
				Usage:     "Toggle a video's watched flag",
				ArgsUsage: "<id>",
				Action:    r.VideoWatch,
			},
			{
				Name:      "fav",
				Usage:     "Toggle a video's favorite flag",
				ArgsUsage: "<id>",
				Action:    r.VideoFavorite,
			},
			{
				Name:      "mark-watched",
				Usage:     "Set the watched flag on multiple videos",
				ArgsUsage: "<id> [id...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "unwatched",
						Usage: "Clear the flag instead of setting it",
					},
				},
				Action: r.VideoMarkWatched,
			},
			{
				Name:      "copy",
				Usage:     "Add videos to another category, keeping existing memberships",
				ArgsUsage: "<id> [id...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Destination category ID",
						Required: true,
					},
				},
				Action: r.VideoCopy,
			},
			{
				Name:      "move",
				Usage:     "Move videos between categories",
				ArgsUsage: "<id> [id...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Source category ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Destination category ID",
						Required: true,
					},
				},
				Action: r.VideoMove,
			},
			{
				Name:  "list",
				Usage: "List videos, optionally per category",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only videos in this category",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Only videos whose title or channel contains this text",
					},
					&cli.BoolFlag{
						Name:  "unwatched",
						Usage: "Only videos not yet watched",
					},
					&cli.BoolFlag{
						Name:  "fav",
						Usage: "Only favorite videos",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort token (dateAddedDesc, titleAsc, viewsDesc, durationAsc, ...)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.VideoList,
			},
		},
	}
}

// orphansCommand handles videos without category memberships
func orphansCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "orphans",
		Usage: "Videos without any category",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List orphan videos",
				Action: r.OrphansList,
			},
			{
				Name:   "sweep",
				Usage:  "Delete every orphan video",
				Action: r.OrphansSweep,
			},
		},
	}
}

// backupCommand handles snapshot export and import
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Export and import snapshots",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Write a snapshot file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Export only this category and its videos",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.BackupExport,
			},
			{
				Name:      "import",
				Usage:     "Apply a snapshot file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Replace current data instead of merging",
					},
				},
				Action: r.BackupImport,
			},
		},
	}
}

// setupCommand writes a starter config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write a starter config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path for the new configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// prefsCommand shows and updates persisted preferences
func prefsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "Show or change persisted preferences",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Persist a default sort token for video listings",
			},
		},
		Action: r.Prefs,
	}
}

// infoCommand reports storage usage
func infoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "Show collection sizes and storage usage",
		Action: r.Info,
	}
}
