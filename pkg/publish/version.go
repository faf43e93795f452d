// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"github.com/cratehub/registry/pkg/semver"
	"github.com/cratehub/registry/pkg/wire"
)

type (
	// PackageVersion is a release version that parsed as strict SemVer.
	PackageVersion struct {
		v semver.Version
	}

	// PackageVersionReq is a dependency version requirement that parsed.
	PackageVersionReq struct {
		r semver.Req
	}
)

// ParsePackageVersion parses s as a semantic version.
func ParsePackageVersion(s string) (PackageVersion, error) {
	v, err := semver.Parse(s)
	if err != nil {
		return PackageVersion{}, &InvalidSemverError{Value: s, Cause: err}
	}
	return PackageVersion{v: v}, nil
}

// MustParsePackageVersion is like ParsePackageVersion but panics on error.
func MustParsePackageVersion(s string) PackageVersion {
	return must(ParsePackageVersion(s))
}

// Version returns the parsed version.
func (p PackageVersion) Version() semver.Version { return p.v }

// String returns the canonical rendering, which may differ from the input.
func (p PackageVersion) String() string { return p.v.String() }

// Equal reports whether both versions are identical, build metadata included.
func (p PackageVersion) Equal(o PackageVersion) bool { return p.v.Equal(o.v) }

// UnmarshalWire implements wire.Unmarshaler.
func (p *PackageVersion) UnmarshalWire(v wire.Value) error {
	return unmarshalString(v, ParsePackageVersion, p)
}

// MarshalWire implements wire.Marshaler.
func (p PackageVersion) MarshalWire() any { return p.String() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PackageVersion) UnmarshalText(text []byte) error {
	return unmarshalText(text, ParsePackageVersion, p)
}

// MarshalText implements encoding.TextMarshaler.
func (p PackageVersion) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// ParsePackageVersionReq parses s as a version requirement.
func ParsePackageVersionReq(s string) (PackageVersionReq, error) {
	r, err := semver.ParseReq(s)
	if err != nil {
		return PackageVersionReq{}, &InvalidVersionReqError{Value: s, Cause: err}
	}
	return PackageVersionReq{r: r}, nil
}

// MustParsePackageVersionReq is like ParsePackageVersionReq but panics on error.
func MustParsePackageVersionReq(s string) PackageVersionReq {
	return must(ParsePackageVersionReq(s))
}

// Req returns the parsed requirement.
func (p PackageVersionReq) Req() semver.Req { return p.r }

// String returns the canonical rendering, which may differ from the input.
func (p PackageVersionReq) String() string { return p.r.String() }

// Equal reports whether both requirements have identical predicates.
func (p PackageVersionReq) Equal(o PackageVersionReq) bool { return p.r.Equal(o.r) }

// Matches reports whether version satisfies the requirement.
func (p PackageVersionReq) Matches(version PackageVersion) bool { return p.r.Matches(version.v) }

// UnmarshalWire implements wire.Unmarshaler.
func (p *PackageVersionReq) UnmarshalWire(v wire.Value) error {
	return unmarshalString(v, ParsePackageVersionReq, p)
}

// MarshalWire implements wire.Marshaler.
func (p PackageVersionReq) MarshalWire() any { return p.String() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PackageVersionReq) UnmarshalText(text []byte) error {
	return unmarshalText(text, ParsePackageVersionReq, p)
}

// MarshalText implements encoding.TextMarshaler.
func (p PackageVersionReq) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
