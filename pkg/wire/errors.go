// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrType is returned when a node has the wrong shape for its target.
	ErrType = errors.New("unexpected value type")
	// ErrMissingField is returned when a required map field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrSyntax is returned when a document cannot be parsed in its format.
	ErrSyntax = errors.New("malformed document")
	// ErrUnknownFormat is returned for an unsupported format name or extension.
	ErrUnknownFormat = errors.New("unknown format")
)

type (
	// TypeError reports a node whose kind does not match what the decoder expects.
	TypeError struct {
		Path Path
		Want Kind
		Got  Kind
	}

	// MissingFieldError reports a required field absent from the map at Path.
	MissingFieldError struct {
		Path  Path
		Field string
	}

	// DecodeError tags a domain error with the location of the node that
	// produced it. It unwraps to the domain error.
	DecodeError struct {
		Path Path
		Err  error
	}

	// SyntaxError reports a document that failed to parse.
	SyntaxError struct {
		Format   Format
		Filename string
		Err      error
	}

	// UnknownFormatError is returned when a format cannot be resolved.
	UnknownFormatError struct {
		Value string
	}

	// positioned is implemented by errors that already carry a Path.
	positioned interface {
		error
		position() Path
	}
)

// Error implements the error interface.
func (e *TypeError) Error() string {
	return withPath(e.Path, fmt.Sprintf("invalid type: expected %s, got %s", e.Want, e.Got))
}

// Unwrap returns ErrType for errors.Is() compatibility.
func (e *TypeError) Unwrap() error { return ErrType }

func (e *TypeError) position() Path { return e.Path }

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return withPath(e.Path, fmt.Sprintf("missing field `%s`", e.Field))
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

func (e *MissingFieldError) position() Path { return e.Path }

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return withPath(e.Path, e.Err.Error())
}

// Unwrap returns the domain error.
func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) position() Path { return e.Path }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("malformed %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s: malformed %s: %v", e.Filename, e.Format, e.Err)
}

// Unwrap returns the parser's error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Is reports ErrSyntax as a match so callers need not know the parser's error type.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q (expected json, yaml, toml, or cue)", e.Value)
}

// Unwrap returns ErrUnknownFormat for errors.Is() compatibility.
func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }

func withPath(p Path, msg string) string {
	if p.IsRoot() {
		return msg
	}
	return p.String() + ": " + msg
}

// annotate attaches p to err unless some error in the chain already carries
// a position, which is always at least as precise.
func annotate(p Path, err error) error {
	if err == nil {
		return nil
	}
	var pe positioned
	if errors.As(err, &pe) {
		return err
	}
	return &DecodeError{Path: p, Err: err}
}
