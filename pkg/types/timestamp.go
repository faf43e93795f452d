// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is how every external record renders a point in time:
// UTC, second precision, literal "Z".
const TimestampLayout = "2006-01-02T15:04:05Z"

// dateLayout is the calendar-day form storage may hold for daily counters.
const dateLayout = time.DateOnly

// ErrInvalidTimestamp is the sentinel error wrapped by InvalidTimestampError.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// InvalidTimestampError is returned when a timestamp string matches none of
// the accepted layouts.
type InvalidTimestampError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q (expected RFC 3339 or YYYY-MM-DD)", e.Value)
}

// Unwrap returns ErrInvalidTimestamp for errors.Is() compatibility.
func (e *InvalidTimestampError) Unwrap() error { return ErrInvalidTimestamp }

// EncodeTime renders t in TimestampLayout after converting it to UTC.
// Sub-second precision is truncated.
func EncodeTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts TimestampLayout, any RFC 3339 timestamp, or a bare
// YYYY-MM-DD date (midnight UTC). The result is always in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &InvalidTimestampError{Value: s}
}
