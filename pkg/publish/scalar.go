// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"github.com/cratehub/registry/pkg/naming"
	"github.com/cratehub/registry/pkg/wire"
)

type (
	// PackageName is a crate name accepted by naming.ValidCrateName.
	PackageName struct {
		name string
	}

	// Keyword is a search keyword accepted by naming.ValidKeyword.
	Keyword struct {
		keyword string
	}

	// Feature is a feature name accepted by naming.ValidFeatureName.
	Feature struct {
		feature string
	}
)

// ParsePackageName validates s as a crate name. The input is kept verbatim.
func ParsePackageName(s string) (PackageName, error) {
	if !naming.ValidCrateName(s) {
		return PackageName{}, &InvalidNameError{Value: s}
	}
	return PackageName{name: s}, nil
}

// MustParsePackageName is like ParsePackageName but panics on error.
func MustParsePackageName(s string) PackageName {
	return must(ParsePackageName(s))
}

// String returns the crate name.
func (n PackageName) String() string { return n.name }

// IsZero reports whether n was never assigned a valid name.
func (n PackageName) IsZero() bool { return n.name == "" }

// UnmarshalWire implements wire.Unmarshaler.
func (n *PackageName) UnmarshalWire(v wire.Value) error {
	return unmarshalString(v, ParsePackageName, n)
}

// MarshalWire implements wire.Marshaler.
func (n PackageName) MarshalWire() any { return n.name }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *PackageName) UnmarshalText(text []byte) error {
	return unmarshalText(text, ParsePackageName, n)
}

// MarshalText implements encoding.TextMarshaler.
func (n PackageName) MarshalText() ([]byte, error) { return []byte(n.name), nil }

// ParseKeyword validates s as a keyword. Length is a keyword-list rule and is
// not checked here.
func ParseKeyword(s string) (Keyword, error) {
	if !naming.ValidKeyword(s) {
		return Keyword{}, &InvalidKeywordError{Value: s}
	}
	return Keyword{keyword: s}, nil
}

// MustParseKeyword is like ParseKeyword but panics on error.
func MustParseKeyword(s string) Keyword {
	return must(ParseKeyword(s))
}

// String returns the keyword.
func (k Keyword) String() string { return k.keyword }

// UnmarshalWire implements wire.Unmarshaler.
func (k *Keyword) UnmarshalWire(v wire.Value) error {
	return unmarshalString(v, ParseKeyword, k)
}

// MarshalWire implements wire.Marshaler.
func (k Keyword) MarshalWire() any { return k.keyword }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Keyword) UnmarshalText(text []byte) error {
	return unmarshalText(text, ParseKeyword, k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Keyword) MarshalText() ([]byte, error) { return []byte(k.keyword), nil }

// ParseFeature validates s as a feature name ("std" or "serde/derive").
func ParseFeature(s string) (Feature, error) {
	if !naming.ValidFeatureName(s) {
		return Feature{}, &InvalidFeatureNameError{Value: s}
	}
	return Feature{feature: s}, nil
}

// MustParseFeature is like ParseFeature but panics on error.
func MustParseFeature(s string) Feature {
	return must(ParseFeature(s))
}

// String returns the feature name.
func (f Feature) String() string { return f.feature }

// UnmarshalWire implements wire.Unmarshaler.
func (f *Feature) UnmarshalWire(v wire.Value) error {
	return unmarshalString(v, ParseFeature, f)
}

// MarshalWire implements wire.Marshaler.
func (f Feature) MarshalWire() any { return f.feature }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Feature) UnmarshalText(text []byte) error {
	return unmarshalText(text, ParseFeature, f)
}

// MarshalText implements encoding.TextMarshaler.
func (f Feature) MarshalText() ([]byte, error) { return []byte(f.feature), nil }

// unmarshalString reads a string node and runs it through parse. dst is only
// written on success.
func unmarshalString[T any](v wire.Value, parse func(string) (T, error), dst *T) error {
	s, err := v.Str()
	if err != nil {
		return err
	}
	return unmarshalText([]byte(s), parse, dst)
}

func unmarshalText[T any](text []byte, parse func(string) (T, error), dst *T) error {
	parsed, err := parse(string(text))
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
