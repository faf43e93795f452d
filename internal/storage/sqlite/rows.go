// SPDX-License-Identifier: MPL-2.0

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/cratehub/registry/pkg/downloads"
)

// ErrUnknownColumn is returned when a query names a table or column outside
// the schema.
var ErrUnknownColumn = errors.New("unknown table or column")

// ErrIDOutOfRange is returned when the database assigns a row id that does
// not fit in an int32 record id.
var ErrIDOutOfRange = errors.New("row id out of int32 range")

// tableColumns is the allowlist of identifiers that may be interpolated into
// queries.
var tableColumns = map[string][]string{
	downloads.TableVersionDownloads: downloads.VersionDownloadColumns,
	downloads.TableCrateDownloads:   downloads.CrateDownloadColumns,
}

// FindRow implements downloads.RowSource.
func (db *DB) FindRow(ctx context.Context, table string, columns []string, id int32) (downloads.Row, error) {
	if err := checkColumns(table, columns); err != nil {
		return nil, err
	}

	//nolint:gosec // G201: table and columns are checked against tableColumns
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(columns, ", "), table)

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	err := db.sql.QueryRowContext(ctx, query, id).Scan(ptrs...)
	if errors.Is(err, sql.ErrNoRows) {
		db.logger.Debug("row not found", "table", table, "id", id)
		return nil, downloads.ErrNoRow
	}
	if err != nil {
		db.logger.Error("query failed", "table", table, "id", id, "err", err)
		return nil, fmt.Errorf("query %s: %w", table, err)
	}

	row := make(downloads.MapRow, len(columns))
	for i, c := range columns {
		row[c] = values[i]
	}
	return row, nil
}

// InsertVersionDownload stores d and returns its id. A zero ID lets SQLite
// assign one.
func (db *DB) InsertVersionDownload(ctx context.Context, d downloads.VersionDownload) (int32, error) {
	return db.insert(ctx,
		`INSERT INTO version_downloads (id, version_id, downloads, counted, date) VALUES (?, ?, ?, ?, ?)`,
		nullableID(d.ID), d.VersionID, d.Downloads, d.Counted, unixDate(d.Date))
}

// InsertCrateDownload stores d and returns its id. A zero ID lets SQLite
// assign one.
func (db *DB) InsertCrateDownload(ctx context.Context, d downloads.CrateDownload) (int32, error) {
	return db.insert(ctx,
		`INSERT INTO crate_downloads (id, crate_id, downloads, date) VALUES (?, ?, ?, ?)`,
		nullableID(d.ID), d.CrateID, d.Downloads, unixDate(d.Date))
}

func (db *DB) insert(ctx context.Context, query string, args ...any) (int32, error) {
	res, err := db.sql.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, fmt.Errorf("insert: %w: %d", ErrIDOutOfRange, id)
	}
	db.logger.Debug("row inserted", "id", id)
	return int32(id), nil
}

func checkColumns(table string, columns []string) error {
	known, ok := tableColumns[table]
	if !ok {
		return fmt.Errorf("%w: table %q", ErrUnknownColumn, table)
	}
	for _, c := range columns {
		if !slices.Contains(known, c) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, c)
		}
	}
	return nil
}

func nullableID(id int32) any {
	if id == 0 {
		return nil
	}
	return id
}

// unixDate stores dates as UTC unix seconds.
func unixDate(t time.Time) int64 {
	return t.UTC().Unix()
}
