// SPDX-License-Identifier: MPL-2.0

package downloads

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// memSource is an in-memory RowSource keyed by table and id.
type memSource struct {
	rows  map[string]map[int32]MapRow
	err   error
	calls int
}

func (m *memSource) FindRow(_ context.Context, table string, _ []string, id int32) (Row, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[table][id]
	if !ok {
		return nil, ErrNoRow
	}
	return row, nil
}

var day = time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

func versionRow() MapRow {
	return MapRow{"id": int64(7), "version_id": int64(42), "downloads": int64(120), "counted": int64(100), "date": day.Unix()}
}

func TestVersionDownload_Encodable(t *testing.T) {
	t.Parallel()

	d := VersionDownload{ID: 7, VersionID: 42, Downloads: 120, Counted: 100, Date: day}
	out, err := json.Marshal(d.Encodable())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":7,"version":42,"downloads":120,"date":"2024-03-09T00:00:00Z"}`
	if string(out) != want {
		t.Errorf("external form = %s, want %s", out, want)
	}
}

func TestVersionDownloadFromRow(t *testing.T) {
	t.Parallel()

	dateForms := map[string]any{
		"unix seconds": day.Unix(),
		"time":         day.In(time.FixedZone("X", 3600)),
		"rfc3339 text": "2024-03-09T00:00:00Z",
		"date text":    "2024-03-09",
		"date bytes":   []byte("2024-03-09"),
	}
	for name, date := range dateForms {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			row := versionRow()
			row["date"] = date
			d, err := VersionDownloadFromRow(row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.ID != 7 || d.VersionID != 42 || d.Downloads != 120 || d.Counted != 100 {
				t.Errorf("unexpected record: %+v", d)
			}
			if !d.Date.Equal(day) {
				t.Errorf("Date = %v, want %v", d.Date, day)
			}
		})
	}
}

func TestFromRow_IntegerWidths(t *testing.T) {
	t.Parallel()

	widths := map[string]any{
		"int":     int(42),
		"int8":    int8(42),
		"int16":   int16(42),
		"int32":   int32(42),
		"int64":   int64(42),
		"uint":    uint(42),
		"uint8":   uint8(42),
		"uint16":  uint16(42),
		"uint32":  uint32(42),
		"uint64":  uint64(42),
		"uintptr": uintptr(42),
	}
	for name, v := range widths {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			row := versionRow()
			row["version_id"] = v
			d, err := VersionDownloadFromRow(row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.VersionID != 42 {
				t.Errorf("VersionID = %d, want 42", d.VersionID)
			}
		})
	}
}

func TestFromRow_ColumnErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(MapRow)
		column  string
		wantErr error
	}{
		{"missing counted", func(r MapRow) { delete(r, "counted") }, "counted", ErrMissingColumn},
		{"string id", func(r MapRow) { r["id"] = "7" }, "id", ErrColumnType},
		{"float downloads", func(r MapRow) { r["downloads"] = 1.5 }, "downloads", ErrColumnType},
		{"overflow", func(r MapRow) { r["version_id"] = int64(math.MaxInt32) + 1 }, "version_id", ErrColumnType},
		{"huge unsigned", func(r MapRow) { r["version_id"] = uint64(math.MaxUint64) }, "version_id", ErrColumnType},
		{"huge uint", func(r MapRow) { r["version_id"] = uint(math.MaxInt32) + 1 }, "version_id", ErrColumnType},
		{"bad date text", func(r MapRow) { r["date"] = "yesterday" }, "date", ErrColumnType},
		{"bool date", func(r MapRow) { r["date"] = true }, "date", ErrColumnType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := versionRow()
			tt.mutate(row)
			_, err := VersionDownloadFromRow(row)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var ce *ColumnError
			if !errors.As(err, &ce) || ce.Column != tt.column {
				t.Errorf("expected *ColumnError for %q, got %#v", tt.column, err)
			}
		})
	}
}

func TestCrateDownloadFromRow(t *testing.T) {
	t.Parallel()

	d, err := CrateDownloadFromRow(MapRow{"id": 1, "crate_id": int32(9), "downloads": uint16(3), "date": "2024-03-09"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 1 || d.CrateID != 9 || d.Downloads != 3 || !d.Date.Equal(day) {
		t.Errorf("unexpected record: %+v", d)
	}

	_, err = CrateDownloadFromRow(MapRow{"id": 1, "downloads": 3, "date": day})
	var ce *ColumnError
	if !errors.As(err, &ce) || ce.Column != "crate_id" || !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected missing crate_id, got %v", err)
	}
}

func TestFindVersionDownload(t *testing.T) {
	t.Parallel()

	src := &memSource{rows: map[string]map[int32]MapRow{
		TableVersionDownloads: {7: versionRow()},
	}}

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		d, err := FindVersionDownload(context.Background(), src, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.VersionID != 42 {
			t.Errorf("VersionID = %d", d.VersionID)
		}
	})

	t.Run("missing id is NotFound and no record", func(t *testing.T) {
		t.Parallel()
		d, err := FindVersionDownload(context.Background(), src, 8)
		if d != nil {
			t.Errorf("expected nil record, got %+v", d)
		}
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Table != TableVersionDownloads || nf.ID != 8 {
			t.Errorf("NotFoundError = %#v", nf)
		}
	})
}

func TestFind_NeverReturnsZeroRecord(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		present := rapid.SliceOfNDistinct(rapid.Int32Range(1, 1000), 0, 20, rapid.ID[int32]).Draw(t, "present")
		rows := map[int32]MapRow{}
		for _, id := range present {
			rows[id] = MapRow{"id": int64(id), "crate_id": int64(1), "downloads": int64(2), "date": day}
		}
		src := &memSource{rows: map[string]map[int32]MapRow{TableCrateDownloads: rows}}

		id := rapid.Int32Range(1, 1000).Draw(t, "id")
		d, err := FindCrateDownload(context.Background(), src, id)
		if _, ok := rows[id]; ok {
			if err != nil || d == nil || d.ID != id {
				t.Fatalf("FindCrateDownload(%d) = %+v, %v", id, d, err)
			}
		} else if d != nil || !errors.Is(err, ErrNotFound) {
			t.Fatalf("FindCrateDownload(%d) = %+v, %v; want nil, ErrNotFound", id, d, err)
		}
		if src.calls != 1 {
			t.Fatalf("expected a single lookup, got %d", src.calls)
		}
	})
}

func TestFind_StorageErrorPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("database is locked")
	_, err := FindCrateDownload(context.Background(), &memSource{err: boom}, 1)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped storage error", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("storage failures must not look like NotFound")
	}
}
