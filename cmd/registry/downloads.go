// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cratehub/registry/internal/config"
	"github.com/cratehub/registry/internal/issue"
	"github.com/cratehub/registry/internal/storage/sqlite"
	"github.com/cratehub/registry/pkg/downloads"
	"github.com/cratehub/registry/pkg/types"
)

// crateDownloadView is the JSON form of a crate download printed by the CLI.
type crateDownloadView struct {
	ID        int32  `json:"id"`
	Crate     int32  `json:"crate"`
	Downloads int32  `json:"downloads"`
	Date      string `json:"date"`
}

func newDownloadsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "downloads",
		Short: "Inspect and record daily download counters",
		Long: `Inspect and record the per-day download counters of crates and versions.

Records are printed as JSON, one object per line. Version records use the
external form, which omits the internal counted total.`,
	}

	cmd.AddCommand(newDownloadsLookupCommand(app, downloads.TableVersionDownloads))
	cmd.AddCommand(newDownloadsLookupCommand(app, downloads.TableCrateDownloads))
	cmd.AddCommand(newDownloadsRecordCommand(app))
	return cmd
}

func newDownloadsLookupCommand(app *App, table string) *cobra.Command {
	use, short := "version <id>...", "Show version download records"
	if table == downloads.TableCrateDownloads {
		use, short = "crate <id>...", "Show crate download records"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return app.fail(cmd, err, types.ExitUsage)
			}
			return runDownloadsLookup(cmd, app, table, ids)
		},
	}
}

func runDownloadsLookup(cmd *cobra.Command, app *App, table string, ids []int32) error {
	ctx := cmd.Context()
	code := types.ExitFailure

	err := app.withStore(ctx, func(cfg *config.Config, logger *log.Logger, store Store) error {
		src := lookupSource(cfg, logger, store)
		enc := json.NewEncoder(app.stdout)

		for _, id := range ids {
			record, err := lookup(ctx, src, table, id)
			if err != nil {
				if errors.Is(err, downloads.ErrNotFound) {
					code = types.ExitNotFound
					return issue.NewErrorContext().
						WithOperation("look up download record").
						WithResource(fmt.Sprintf("%s/%d", table, id)).
						WithIssue(issue.RecordNotFoundId).
						WithSuggestion("Check the record id").
						WithSuggestion("Use 'registry downloads record' to add a record").
						Wrap(err).
						BuildError()
				}
				return err
			}
			if err := enc.Encode(record); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return app.fail(cmd, err, code)
	}
	return nil
}

// lookupSource puts a row cache in front of store unless caching is off.
// Repeated ids in one invocation then reach the database once.
func lookupSource(cfg *config.Config, logger *log.Logger, store Store) downloads.RowSource {
	if cfg.Database.CacheTTL <= 0 {
		return store
	}
	return sqlite.NewCachedSource(store, cfg.Database.CacheTTL, logger.WithPrefix("cache"))
}

func lookup(ctx context.Context, src downloads.RowSource, table string, id int32) (any, error) {
	if table == downloads.TableVersionDownloads {
		d, err := downloads.FindVersionDownload(ctx, src, id)
		if err != nil {
			return nil, err
		}
		return d.Encodable(), nil
	}

	d, err := downloads.FindCrateDownload(ctx, src, id)
	if err != nil {
		return nil, err
	}
	return crateDownloadView{
		ID:        d.ID,
		Crate:     d.CrateID,
		Downloads: d.Downloads,
		Date:      types.EncodeTime(d.Date),
	}, nil
}

type recordFlags struct {
	id        int32
	owner     int32
	downloads int32
	counted   int32
	date      string
}

func newDownloadsRecordCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Insert a download record",
		Long: `Insert a download record for one version or crate on one day.

The date defaults to today (UTC). The new record id is printed on stdout.`,
	}

	var version recordFlags
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Insert a version download record",
		Example: `  registry downloads record version --version-id 42 --downloads 120 --counted 100 --date 2024-03-09`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := recordDate(version.date)
			if err != nil {
				return app.fail(cmd, err, types.ExitUsage)
			}
			return runRecord(cmd, app, func(ctx context.Context, store Store) (int32, error) {
				return store.InsertVersionDownload(ctx, downloads.VersionDownload{
					ID:        version.id,
					VersionID: version.owner,
					Downloads: version.downloads,
					Counted:   version.counted,
					Date:      date,
				})
			})
		},
	}
	versionCmd.Flags().Int32Var(&version.id, "id", 0, "record id (default: next free id)")
	versionCmd.Flags().Int32Var(&version.owner, "version-id", 0, "version the downloads belong to")
	versionCmd.Flags().Int32Var(&version.downloads, "downloads", 0, "downloads on that day")
	versionCmd.Flags().Int32Var(&version.counted, "counted", 0, "downloads already folded into the totals")
	versionCmd.Flags().StringVar(&version.date, "date", "", "day of the downloads (YYYY-MM-DD or RFC 3339)")
	_ = versionCmd.MarkFlagRequired("version-id")

	var crate recordFlags
	crateCmd := &cobra.Command{
		Use:     "crate",
		Short:   "Insert a crate download record",
		Example: `  registry downloads record crate --crate-id 9 --downloads 3`,
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := recordDate(crate.date)
			if err != nil {
				return app.fail(cmd, err, types.ExitUsage)
			}
			return runRecord(cmd, app, func(ctx context.Context, store Store) (int32, error) {
				return store.InsertCrateDownload(ctx, downloads.CrateDownload{
					ID:        crate.id,
					CrateID:   crate.owner,
					Downloads: crate.downloads,
					Date:      date,
				})
			})
		},
	}
	crateCmd.Flags().Int32Var(&crate.id, "id", 0, "record id (default: next free id)")
	crateCmd.Flags().Int32Var(&crate.owner, "crate-id", 0, "crate the downloads belong to")
	crateCmd.Flags().Int32Var(&crate.downloads, "downloads", 0, "downloads on that day")
	crateCmd.Flags().StringVar(&crate.date, "date", "", "day of the downloads (YYYY-MM-DD or RFC 3339)")
	_ = crateCmd.MarkFlagRequired("crate-id")

	cmd.AddCommand(versionCmd, crateCmd)
	return cmd
}

func runRecord(cmd *cobra.Command, app *App, insert func(context.Context, Store) (int32, error)) error {
	ctx := cmd.Context()
	err := app.withStore(ctx, func(_ *config.Config, logger *log.Logger, store Store) error {
		id, err := insert(ctx, store)
		if err != nil {
			return issue.WrapWithOperation(err, "insert download record")
		}
		logger.Debug("recorded downloads", "id", id)
		fmt.Fprintln(app.stdout, id)
		return nil
	})
	if err != nil {
		return app.fail(cmd, err, types.ExitFailure)
	}
	return nil
}

// recordDate parses the --date flag; empty means today in UTC.
func recordDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	return types.ParseTimestamp(s)
}

func parseIDs(args []string) ([]int32, error) {
	ids := make([]int32, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid record id %q: must be a 32-bit integer", arg)
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}

// minimumArgs is cobra.MinimumNArgs with a usage exit code.
func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
		return nil
	}
}
