// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratehub/registry/internal/config"
	"github.com/cratehub/registry/pkg/types"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and create the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as CUE",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, source, err := app.loadConfig(cmd.Context())
				if err != nil {
					return app.fail(cmd, err, types.ExitFailure)
				}
				if source == "" {
					source = "defaults and environment"
				}
				fmt.Fprintln(app.stderr, SubtitleStyle.Render("# source: "+source))
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				path, err := config.FilePath(app.loadOptions())
				if err != nil {
					return app.fail(cmd, err, types.ExitFailure)
				}
				fmt.Fprintln(app.stdout, path)
				return nil
			},
		},
		newConfigInitCommand(app),
	)
	return cmd
}

func newConfigInitCommand(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.FilePath(app.loadOptions())
			if err != nil {
				return app.fail(cmd, err, types.ExitFailure)
			}
			written, err := config.CreateDefaultConfig(path, force)
			if err != nil {
				return app.fail(cmd, err, types.ExitFailure)
			}
			if !written {
				app.warn("%s already exists (use --force to overwrite)", literal(path.String()))
				return nil
			}
			app.success("wrote %s", literal(path.String()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
