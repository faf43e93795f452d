// SPDX-License-Identifier: MPL-2.0

package downloads

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cratehub/registry/pkg/types"
)

var (
	// ErrMissingColumn is returned when a row lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrColumnType is returned when a column holds a value of the wrong shape.
	ErrColumnType = errors.New("unexpected column type")
)

type (
	// Row gives access to the columns of one storage row by name.
	Row interface {
		Column(name string) (any, bool)
	}

	// MapRow is a Row backed by a map of column name to value.
	MapRow map[string]any

	// ColumnError reports a column that is missing or cannot be converted.
	ColumnError struct {
		Column string
		// Value is the raw column value; nil when the column is missing.
		Value any
		// Kind is ErrMissingColumn or ErrColumnType.
		Kind error
		// Cause is the conversion error, if any.
		Cause error
	}
)

// Column implements Row.
func (r MapRow) Column(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	if errors.Is(e.Kind, ErrMissingColumn) {
		return fmt.Sprintf("column %q: missing", e.Column)
	}
	if e.Cause != nil {
		return fmt.Sprintf("column %q: %v", e.Column, e.Cause)
	}
	return fmt.Sprintf("column %q: unexpected type %T", e.Column, e.Value)
}

// Unwrap returns the error kind and the conversion cause.
func (e *ColumnError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// VersionDownloadFromRow extracts a VersionDownload from a row with the
// VersionDownloadColumns.
func VersionDownloadFromRow(r Row) (VersionDownload, error) {
	var (
		d   VersionDownload
		err error
	)
	if d.ID, err = int32Column(r, "id"); err != nil {
		return VersionDownload{}, err
	}
	if d.VersionID, err = int32Column(r, "version_id"); err != nil {
		return VersionDownload{}, err
	}
	if d.Downloads, err = int32Column(r, "downloads"); err != nil {
		return VersionDownload{}, err
	}
	if d.Counted, err = int32Column(r, "counted"); err != nil {
		return VersionDownload{}, err
	}
	if d.Date, err = timeColumn(r, "date"); err != nil {
		return VersionDownload{}, err
	}
	return d, nil
}

// CrateDownloadFromRow extracts a CrateDownload from a row with the
// CrateDownloadColumns.
func CrateDownloadFromRow(r Row) (CrateDownload, error) {
	var (
		d   CrateDownload
		err error
	)
	if d.ID, err = int32Column(r, "id"); err != nil {
		return CrateDownload{}, err
	}
	if d.CrateID, err = int32Column(r, "crate_id"); err != nil {
		return CrateDownload{}, err
	}
	if d.Downloads, err = int32Column(r, "downloads"); err != nil {
		return CrateDownload{}, err
	}
	if d.Date, err = timeColumn(r, "date"); err != nil {
		return CrateDownload{}, err
	}
	return d, nil
}

func column(r Row, name string) (any, error) {
	v, ok := r.Column(name)
	if !ok {
		return nil, &ColumnError{Column: name, Kind: ErrMissingColumn}
	}
	return v, nil
}

func int32Column(r Row, name string) (int32, error) {
	v, err := column(r, name)
	if err != nil {
		return 0, err
	}

	var n int64
	switch x := v.(type) {
	case int32:
		return x, nil
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int64:
		n = x
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint:
		if x > math.MaxInt32 {
			return 0, outOfRange(name, v)
		}
		n = int64(x)
	case uintptr:
		if x > math.MaxInt32 {
			return 0, outOfRange(name, v)
		}
		n = int64(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, outOfRange(name, v)
		}
		n = int64(x)
	default:
		return 0, &ColumnError{Column: name, Value: v, Kind: ErrColumnType}
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, outOfRange(name, v)
	}
	return int32(n), nil
}

func outOfRange(name string, v any) error {
	return &ColumnError{
		Column: name,
		Value:  v,
		Kind:   ErrColumnType,
		Cause:  fmt.Errorf("value %v does not fit in int32", v),
	}
}

// timeColumn accepts time.Time, unix seconds, or timestamp text.
func timeColumn(r Row, name string) (time.Time, error) {
	v, err := column(r, name)
	if err != nil {
		return time.Time{}, err
	}

	var text string
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case int64:
		return time.Unix(x, 0).UTC(), nil
	case string:
		text = x
	case []byte:
		text = string(x)
	default:
		return time.Time{}, &ColumnError{Column: name, Value: v, Kind: ErrColumnType}
	}

	t, err := types.ParseTimestamp(text)
	if err != nil {
		return time.Time{}, &ColumnError{Column: name, Value: v, Kind: ErrColumnType, Cause: err}
	}
	return t, nil
}
