// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"testing"

	"github.com/cratehub/registry/pkg/wire"
)

func TestDependencyKind_DecodeEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  DependencyKind
	}{
		{"dev", KindDev},
		{"build", KindBuild},
		{"normal", KindNormal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			k, err := wire.Decode[DependencyKind](wire.Root(tt.input))
			if err != nil {
				t.Fatalf("decode(%q): %v", tt.input, err)
			}
			if k != tt.want {
				t.Errorf("decode(%q) = %v, want %v", tt.input, k, tt.want)
			}
			if got := k.MarshalWire(); got != tt.input {
				t.Errorf("encode = %v, want %q", got, tt.input)
			}
		})
	}
}

func TestDependencyKind_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"release", "Dev", "NORMAL", "", " dev"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDependencyKind(input)
			if !errors.Is(err, ErrInvalidDependencyKind) {
				t.Fatalf("ParseDependencyKind(%q) error = %v", input, err)
			}
			want := "invalid dependency kind `" + input + "`, must be one of dev, build, or normal"
			if err.Error() != want {
				t.Errorf("Error() = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestDependencyKind_TableIsExhaustive(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, k := range DependencyKinds() {
		if err := k.Validate(); err != nil {
			t.Errorf("%v.Validate() = %v", k, err)
		}
		back, err := ParseDependencyKind(k.String())
		if err != nil || back != k {
			t.Errorf("ParseDependencyKind(%q) = %v, %v", k.String(), back, err)
		}
		if seen[k.String()] {
			t.Errorf("duplicate spelling %q", k.String())
		}
		seen[k.String()] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 kinds, got %d", len(seen))
	}
}

func TestDependencyKind_ZeroIsInvalid(t *testing.T) {
	t.Parallel()

	var k DependencyKind
	if err := k.Validate(); !errors.Is(err, ErrInvalidDependencyKind) {
		t.Errorf("zero kind Validate() = %v", err)
	}
	if _, err := k.MarshalText(); err == nil {
		t.Error("zero kind should not marshal as text")
	}
}
