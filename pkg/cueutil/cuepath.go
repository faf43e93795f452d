// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCUEPath is returned when a CUEPath is empty or whitespace-only.
var ErrInvalidCUEPath = errors.New("invalid CUE path")

type (
	// CUEPath is a JSON-path style location inside a document, e.g. "deps[0].kind".
	CUEPath string

	// InvalidCUEPathError is returned when a CUEPath fails validation.
	InvalidCUEPathError struct {
		Value CUEPath
	}
)

// Error implements the error interface.
func (e *InvalidCUEPathError) Error() string {
	return fmt.Sprintf("invalid CUE path %q: must not be empty", string(e.Value))
}

// Unwrap returns ErrInvalidCUEPath for errors.Is() compatibility.
func (e *InvalidCUEPathError) Unwrap() error { return ErrInvalidCUEPath }

// Validate returns nil if the path is non-blank.
func (p CUEPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidCUEPathError{Value: p}
	}
	return nil
}

// String returns the string representation of the CUEPath.
func (p CUEPath) String() string { return string(p) }
