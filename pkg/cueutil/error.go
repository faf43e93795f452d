// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is the sentinel wrapped by FileTooLargeError.
var ErrFileTooLarge = errors.New("file too large")

type (
	// ValidationError is one CUE error located by file and document path.
	ValidationError struct {
		FilePath string
		// CUEPath is empty for errors not tied to a value, e.g. syntax errors.
		CUEPath CUEPath
		Message string
	}

	// FileTooLargeError reports input rejected by CheckFileSize.
	FileTooLargeError struct {
		Filename string
		Size     int64
		Max      int64
	}
)

func (e *ValidationError) Error() string {
	if e.CUEPath == "" {
		return e.FilePath + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.Filename, e.Size, e.Max)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError converts a CUE error into *ValidationError values of the form
// "<file>: <path>: <message>", e.g. "config.cue: database.cache_ttl: invalid
// value". One CUE error yields one *ValidationError; several are joined with
// errors.Join in report order. Errors that are not CUE errors are prefixed
// with the file name and kept in the chain.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	list := cueerrors.Errors(err)
	found := make([]error, 0, len(list))
	for _, e := range list {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if msg == "" {
			msg = e.Error()
		}
		found = append(found, &ValidationError{
			FilePath: filePath,
			CUEPath:  CUEPath(formatPath(cueerrors.Path(e))),
			Message:  msg,
		})
	}

	if len(found) == 1 {
		return found[0]
	}
	return errors.Join(found...)
}

// formatPath renders a CUE error path (["deps", "0", "kind"]) in the
// notation used across the registry ("deps[0].kind"). Leading definition
// selectors such as "#Config" are dropped. Numeric elements after the first
// are list indices.
func formatPath(path []string) string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}

	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// CheckFileSize returns a *FileTooLargeError when data is longer than
// maxSize bytes. Decoders of every manifest format share this guard.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return &FileTooLargeError{Filename: filename, Size: size, Max: maxSize}
	}
	return nil
}
