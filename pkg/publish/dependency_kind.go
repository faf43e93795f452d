// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"fmt"
	"strings"

	"github.com/cratehub/registry/pkg/wire"
)

const (
	// KindNormal is a regular build dependency of the library and binaries.
	KindNormal DependencyKind = iota + 1
	// KindBuild is a dependency of the build script.
	KindBuild
	// KindDev is a dependency of tests, examples and benchmarks.
	KindDev
)

// dependencyKindNames is the single mapping between kinds and their wire
// spelling. Decode, encode and the error message all read it; its order is
// the order options are listed in errors.
var dependencyKindNames = []struct {
	kind DependencyKind
	name string
}{
	{KindDev, "dev"},
	{KindBuild, "build"},
	{KindNormal, "normal"},
}

// DependencyKind says which part of a crate a dependency is used by.
// The zero value is not a valid kind.
type DependencyKind uint8

// ParseDependencyKind matches s case-sensitively against the known kinds.
func ParseDependencyKind(s string) (DependencyKind, error) {
	for _, e := range dependencyKindNames {
		if e.name == s {
			return e.kind, nil
		}
	}
	return 0, &InvalidDependencyKindError{Value: s}
}

// DependencyKinds returns every valid kind in table order.
func DependencyKinds() []DependencyKind {
	out := make([]DependencyKind, len(dependencyKindNames))
	for i, e := range dependencyKindNames {
		out[i] = e.kind
	}
	return out
}

// Validate returns nil if k is one of the declared kinds.
func (k DependencyKind) Validate() error {
	if _, ok := k.name(); !ok {
		return &InvalidDependencyKindError{Value: k.String()}
	}
	return nil
}

// String returns the wire spelling of the kind.
func (k DependencyKind) String() string {
	if name, ok := k.name(); ok {
		return name
	}
	return fmt.Sprintf("DependencyKind(%d)", uint8(k))
}

func (k DependencyKind) name() (string, bool) {
	for _, e := range dependencyKindNames {
		if e.kind == k {
			return e.name, true
		}
	}
	return "", false
}

// UnmarshalWire implements wire.Unmarshaler.
func (k *DependencyKind) UnmarshalWire(v wire.Value) error {
	return unmarshalString(v, ParseDependencyKind, k)
}

// MarshalWire implements wire.Marshaler.
func (k DependencyKind) MarshalWire() any { return k.String() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DependencyKind) UnmarshalText(text []byte) error {
	return unmarshalText(text, ParseDependencyKind, k)
}

// MarshalText implements encoding.TextMarshaler.
func (k DependencyKind) MarshalText() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return []byte(k.String()), nil
}

// dependencyKindChoices renders the table as "dev, build, or normal".
func dependencyKindChoices() string {
	names := make([]string, len(dependencyKindNames))
	for i, e := range dependencyKindNames {
		names[i] = e.name
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
