// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("vers: invalid semver: not-a-version")

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "open database"}, "failed to open database"},
		{"with resource", &ActionableError{Operation: "read manifest", Resource: "Crate.toml"}, "failed to read manifest: Crate.toml"},
		{"with cause", &ActionableError{Operation: "validate manifest", Cause: cause}, "failed to validate manifest: vers: invalid semver: not-a-version"},
		{
			"all parts",
			&ActionableError{Operation: "validate manifest", Resource: "<stdin>", Cause: cause},
			"failed to validate manifest: <stdin>: vers: invalid semver: not-a-version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("record not found")
	err := NewErrorContext().
		WithOperation("look up download record").
		Wrap(fmt.Errorf("version_downloads/9: %w", sentinel)).
		BuildError()

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped sentinel")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "look up download record" {
		t.Errorf("errors.As = %#v", ae)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad kind")
	err := &ActionableError{
		Operation:   "validate manifest",
		Resource:    "Crate.json",
		Suggestions: []string{"Fix the value at deps[0].kind", "Run with --verbose"},
		Cause:       fmt.Errorf("deps[0].kind: %w", inner),
	}

	t.Run("terse", func(t *testing.T) {
		t.Parallel()
		got := err.Format(false)
		want := "failed to validate manifest: Crate.json: deps[0].kind: bad kind\n" +
			"\n  • Fix the value at deps[0].kind" +
			"\n  • Run with --verbose"
		if got != want {
			t.Errorf("Format(false) =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("verbose adds the chain", func(t *testing.T) {
		t.Parallel()
		got := err.Format(true)
		if !strings.HasSuffix(got, "Error chain:\n  1. deps[0].kind: bad kind\n  2. bad kind") {
			t.Errorf("Format(true) =\n%s", got)
		}
	})

	t.Run("no cause no chain", func(t *testing.T) {
		t.Parallel()
		got := (&ActionableError{Operation: "open database"}).Format(true)
		if strings.Contains(got, "Error chain") {
			t.Errorf("unexpected chain in %q", got)
		}
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	first := errors.New("keywords: a maximum of 5 keywords per crate are allowed")
	joined := errors.Join(first, errors.New("second"))
	err := fmt.Errorf("validate: %w", joined)

	got := Chain(err)
	want := []string{err.Error(), joined.Error(), first.Error()}
	if !slices.Equal(got, want) {
		t.Errorf("Chain() = %q, want %q", got, want)
	}
	if Chain(nil) != nil {
		t.Error("Chain(nil) should be empty")
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	t.Run("operation required", func(t *testing.T) {
		t.Parallel()
		ctx := NewErrorContext().WithResource("Crate.toml").Wrap(errors.New("x"))
		if ctx.Build() != nil {
			t.Error("Build() without an operation should be nil")
		}
		if err := ctx.BuildError(); err != nil {
			t.Errorf("BuildError() = %v, want a nil interface", err)
		}
	})

	t.Run("duplicate suggestions dropped", func(t *testing.T) {
		t.Parallel()
		ae := NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Check the file").
			WithSuggestion("Check the file").
			WithSuggestion("Run 'registry config init'").
			Build()
		if len(ae.Suggestions) != 2 {
			t.Errorf("Suggestions = %q", ae.Suggestions)
		}
	})

	t.Run("builds are independent", func(t *testing.T) {
		t.Parallel()
		ctx := NewErrorContext().WithOperation("insert download record").WithSuggestion("a")
		first := ctx.Build()
		ctx.WithSuggestion("b").Wrap(errors.New("later"))
		second := ctx.Build()

		if len(first.Suggestions) != 1 || first.Cause != nil {
			t.Errorf("first build changed after the builder moved on: %+v", first)
		}
		if len(second.Suggestions) != 2 || second.Cause == nil {
			t.Errorf("second build = %+v", second)
		}
	})
}

func TestErrorContext_WithIssue(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("open database").
		WithIssue(DatabaseOpenFailedId).
		Build()
	if entry := ae.Catalog(); entry == nil || entry.Id() != DatabaseOpenFailedId {
		t.Errorf("Catalog() = %v, want the database entry", entry)
	}

	plain := NewErrorContext().WithOperation("open database").Build()
	if plain.Catalog() != nil {
		t.Error("Catalog() without an issue should be nil")
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "x") != nil || WrapWithContext(nil, "x", "y") != nil {
		t.Fatal("wrapping nil must return a nil error")
	}

	cause := errors.New("disk full")
	if got := WrapWithOperation(cause, "insert download record").Error(); got != "failed to insert download record: disk full" {
		t.Errorf("WrapWithOperation = %q", got)
	}
	err := WrapWithContext(cause, "read manifest", "<stdin>")
	if got := err.Error(); got != "failed to read manifest: <stdin>: disk full" {
		t.Errorf("WrapWithContext = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}
