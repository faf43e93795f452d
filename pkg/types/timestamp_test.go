// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeTime(t *testing.T) {
	t.Parallel()

	berlin := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "2024-03-09T00:00:00Z"},
		{"offset converted to utc", time.Date(2024, 3, 9, 1, 30, 0, 0, berlin), "2024-03-08T23:30:00Z"},
		{"sub-second truncated", time.Date(2024, 3, 9, 12, 0, 5, 999_000_000, time.UTC), "2024-03-09T12:00:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EncodeTime(tt.in); got != tt.want {
				t.Errorf("EncodeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2024-03-09T12:00:05Z", want: time.Date(2024, 3, 9, 12, 0, 5, 0, time.UTC)},
		{input: "2024-03-09T14:00:05+02:00", want: time.Date(2024, 3, 9, 12, 0, 5, 0, time.UTC)},
		{input: "2024-03-09T12:00:05.25Z", want: time.Date(2024, 3, 9, 12, 0, 5, 250_000_000, time.UTC)},
		{input: "2024-03-09", want: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{input: "09/03/2024", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimestamp) {
					t.Fatalf("ParseTimestamp(%q) error = %v, want ErrInvalidTimestamp", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) returned unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) || got.Location() != time.UTC {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
