// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cratehub/registry/internal/config"
	"github.com/cratehub/registry/pkg/types"
)

func newDBCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the download counter database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the database or upgrade it to the latest schema",
		Long: `Create the database or upgrade it to the latest schema.

The database location comes from database.path in the configuration
(REGISTRY_DATABASE_PATH). Running migrate on an up-to-date database is a
no-op.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.withStore(cmd.Context(), func(cfg *config.Config, logger *log.Logger, store Store) error {
				version, err := store.Migrate(cmd.Context())
				if err != nil {
					return err
				}
				logger.Debug("schema up to date", "path", cfg.Database.Path, "version", version)
				app.success("database %s at schema version %d", literal(cfg.Database.Path.String()), version)
				return nil
			})
			if err != nil {
				return app.fail(cmd, err, types.ExitFailure)
			}
			return nil
		},
	})
	return cmd
}
