package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/repositories"
	"github.com/bmoreira/tubecrate/internal/services"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/sorting"
	"github.com/bmoreira/tubecrate/internal/storage"
	"github.com/bmoreira/tubecrate/internal/tasks"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	store    *storage.Store
	catalog  *repositories.Catalog
	engine   *tasks.BackupEngine
	metadata services.MetadataService
	sorter   *sorting.Sorter
	settings models.Settings
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Store    *storage.Store
	Metadata services.MetadataService
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	catalog := repositories.NewCatalog(opts.Store, opts.Logger)

	var settings models.Settings
	opts.Store.Read(storage.KeySettings, &settings)

	return &Runner{
		config:   opts.Config,
		store:    opts.Store,
		catalog:  catalog,
		engine:   tasks.NewBackupEngine(catalog, opts.Logger),
		metadata: opts.Metadata,
		sorter:   sorting.New(opts.Config.App.Locale),
		settings: settings,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, categoryCommand, videoCommand, orphansCommand, backupCommand, prefsCommand, infoCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}

	fmt.Fprintln(r.output, string(output))
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) {
	fmt.Fprintf(r.output, format+"\n", args...)
}

// sortToken resolves the --sort flag, falling back to the persisted
// preference, then the configured default.
func (r *Runner) sortToken(flag string) string {
	if flag != "" {
		return flag
	}
	if r.settings.DefaultSort != "" {
		return r.settings.DefaultSort
	}
	if r.config.App.DefaultSort != "" {
		return r.config.App.DefaultSort
	}
	return sorting.DefaultToken
}
