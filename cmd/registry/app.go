// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cratehub/registry/internal/config"
	"github.com/cratehub/registry/internal/issue"
	"github.com/cratehub/registry/internal/storage/sqlite"
	"github.com/cratehub/registry/pkg/downloads"
	"github.com/cratehub/registry/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reaches
	// configuration and storage only through it.
	App struct {
		Config    config.SourceProvider
		OpenStore StoreOpener
		stdin     io.Reader
		stdout    io.Writer
		stderr    io.Writer

		// Set by persistent flags on the root command.
		verbose    bool
		configPath string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.SourceProvider
		OpenStore StoreOpener
		Stdin     io.Reader
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// Store is the download counter storage used by the CLI.
	Store interface {
		downloads.RowSource
		InsertVersionDownload(ctx context.Context, d downloads.VersionDownload) (int32, error)
		InsertCrateDownload(ctx context.Context, d downloads.CrateDownload) (int32, error)
		Migrate(ctx context.Context) (uint, error)
		Close() error
	}

	// StoreOpener opens the store described by cfg.
	StoreOpener func(ctx context.Context, cfg *config.Config, logger *log.Logger) (Store, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.OpenStore == nil {
		deps.OpenStore = openSQLiteStore
	}

	return &App{
		Config:    deps.Config,
		OpenStore: deps.OpenStore,
		stdin:     deps.Stdin,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

func openSQLiteStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (Store, error) {
	return sqlite.Open(ctx, cfg.Database.Path, sqlite.WithLogger(logger.WithPrefix("storage")))
}

// loadConfig loads the configuration honoring --config and returns the file
// it came from ("" when only defaults and environment applied).
func (a *App) loadConfig(ctx context.Context) (*config.Config, string, error) {
	return a.Config.LoadWithSource(ctx, a.loadOptions())
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.configPath)}
}

// logger returns a stderr logger at the configured level; --verbose forces
// debug.
func (a *App) logger(cfg *config.Config) *log.Logger {
	level := cfg.Log.Level.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Level:  level,
		Prefix: config.AppName,
	})
}

// withStore loads the configuration, opens the store and runs fn, closing
// the store afterwards.
func (a *App) withStore(ctx context.Context, fn func(cfg *config.Config, logger *log.Logger, store Store) error) error {
	cfg, _, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	logger := a.logger(cfg)

	store, err := a.OpenStore(ctx, cfg, logger)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("open database").
			WithResource(cfg.Database.Path.String()).
			WithIssue(issue.DatabaseOpenFailedId).
			WithSuggestion("Check that the database directory is writable").
			Wrap(err).
			BuildError()
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing database", "err", cerr)
		}
	}()

	return fn(cfg, logger, store)
}

// fail renders err on stderr and returns an ExitError carrying code. In
// verbose mode the linked catalog entry is rendered as well.
func (a *App) fail(cmd *cobra.Command, err error, code types.ExitCode) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	var ae *issue.ActionableError
	if errors.As(err, &ae) && !a.verbose && code.IsClientError() && ae.Catalog() != nil {
		fmt.Fprintln(a.stderr, SubtitleStyle.Render("Run with --verbose for help on this error."))
	}
	if a.verbose && errors.As(err, &ae) {
		if entry := ae.Catalog(); entry != nil {
			rendered, renderErr := entry.Render("dark")
			if renderErr != nil {
				a.warn("failed to render help: %v", renderErr)
			} else {
				fmt.Fprint(a.stderr, rendered)
			}
		}
	}
	return &ExitError{Code: code, Err: err, rendered: true}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
