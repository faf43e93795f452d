// SPDX-License-Identifier: MPL-2.0

package downloads

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoRow is returned by a RowSource when no row has the requested id.
	ErrNoRow = errors.New("no row")
	// ErrNotFound is returned by the Find functions when the record does not exist.
	ErrNotFound = errors.New("not found")
)

type (
	// RowSource looks up a single row by primary key. Implementations return
	// ErrNoRow (possibly wrapped) when the id does not exist.
	RowSource interface {
		FindRow(ctx context.Context, table string, columns []string, id int32) (Row, error)
	}

	// NotFoundError is returned when no record exists for an id.
	NotFoundError struct {
		Table string
		ID    int32
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %d", e.Table, e.ID)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// FindVersionDownload loads one version download by id. A missing row is a
// *NotFoundError; the record is nil whenever err is non-nil.
func FindVersionDownload(ctx context.Context, src RowSource, id int32) (*VersionDownload, error) {
	return find(ctx, src, TableVersionDownloads, VersionDownloadColumns, id, VersionDownloadFromRow)
}

// FindCrateDownload loads one crate download by id. A missing row is a
// *NotFoundError; the record is nil whenever err is non-nil.
func FindCrateDownload(ctx context.Context, src RowSource, id int32) (*CrateDownload, error) {
	return find(ctx, src, TableCrateDownloads, CrateDownloadColumns, id, CrateDownloadFromRow)
}

func find[T any](ctx context.Context, src RowSource, table string, columns []string, id int32, fromRow func(Row) (T, error)) (*T, error) {
	row, err := src.FindRow(ctx, table, columns, id)
	if errors.Is(err, ErrNoRow) {
		return nil, &NotFoundError{Table: table, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", table, id, err)
	}
	rec, err := fromRow(row)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", table, id, err)
	}
	return &rec, nil
}
