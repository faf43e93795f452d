// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cratehub/registry/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "registry",
		Short: "Validate crate releases and inspect download counters",
		Long: TitleStyle.Render("registry") + SubtitleStyle.Render(" - crate registry publish tooling") + `

registry checks release manifests against the publish rules of the
registry (crate names, semantic versions, keywords, features and
dependencies) and manages the daily download counters.

Manifests may be written in JSON, YAML, TOML or CUE.

` + SubtitleStyle.Render("Examples:") + `
  registry validate Crate.toml              Check a manifest
  registry validate Crate.yaml -o json      Check and convert to JSON
  registry downloads version 42             Show a version download record
  registry db migrate                       Create or upgrade the database
  registry config show                      Show current configuration`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/registry/config.cue)")

	root.AddCommand(newValidateCommand(app))
	root.AddCommand(newDownloadsCommand(app))
	root.AddCommand(newDBCommand(app))
	root.AddCommand(newConfigCommand(app))

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: types.ExitUsage, Err: err}
	})

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI and exits the process with the command's exit code.
// This is called by main.main().
func Execute() {
	root := NewRootCommand(NewApp(Dependencies{}))

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		os.Exit(int(exitCode(err)))
	}
}

// handleError prints errors that commands have not rendered themselves.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.rendered {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// exitCode maps an error returned by the command tree to a process exit code.
func exitCode(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}
