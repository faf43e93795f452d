// SPDX-License-Identifier: MPL-2.0

// Package semver parses semantic versions and version requirements the way the
// registry understands them.
//
// Versions are strict SemVer 2.0 (MAJOR.MINOR.PATCH with optional pre-release
// and build metadata, no "v" prefix). Requirements are comma-separated
// predicates using Cargo-style operators (=, >, >=, <, <=, ~, ^ and wildcards);
// a bare version means caret.
//
// Both types render to a canonical string with String. Parsing the canonical
// string yields an equal value, but the canonical string is not necessarily
// byte-identical to the original input.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"
)

var (
	// ErrInvalidVersion is the sentinel wrapped by ParseError for versions.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidReq is the sentinel wrapped by ParseError for requirements.
	ErrInvalidReq = errors.New("invalid version requirement")

	// versionPattern is the SemVer 2.0 grammar. Numeric identifiers may not
	// carry leading zeros.
	versionPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)
)

type (
	// Version is a parsed semantic version.
	Version struct {
		Major uint64
		Minor uint64
		Patch uint64
		// Pre holds the dot-separated pre-release identifiers ("alpha", "1").
		Pre []string
		// Build holds the dot-separated build metadata identifiers.
		Build []string
	}

	// ParseError is returned when a version or requirement cannot be parsed.
	ParseError struct {
		Input  string
		Reason string
		req    bool
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	what := "version"
	if e.req {
		what = "version requirement"
	}
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", what, e.Input)
	}
	return fmt.Sprintf("invalid %s %q: %s", what, e.Input, e.Reason)
}

// Unwrap returns ErrInvalidVersion or ErrInvalidReq.
func (e *ParseError) Unwrap() error {
	if e.req {
		return ErrInvalidReq
	}
	return ErrInvalidVersion
}

// Parse parses a strict semantic version string.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &ParseError{Input: s, Reason: "expected MAJOR.MINOR.PATCH[-PRE][+BUILD]"}
	}

	var v Version
	for i, dst := range []*uint64{&v.Major, &v.Minor, &v.Patch} {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Version{}, &ParseError{Input: s, Reason: "numeric component out of range"}
		}
		*dst = n
	}
	if m[4] != "" {
		v.Pre = strings.Split(m[4], ".")
	}
	if m[5] != "" {
		v.Build = strings.Split(m[5], ".")
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical rendering of the version.
func (v Version) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(v.Major, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.Minor, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.Patch, 10))
	if len(v.Pre) > 0 {
		sb.WriteByte('-')
		sb.WriteString(strings.Join(v.Pre, "."))
	}
	if len(v.Build) > 0 {
		sb.WriteByte('+')
		sb.WriteString(strings.Join(v.Build, "."))
	}
	return sb.String()
}

// IsPrerelease reports whether the version carries pre-release identifiers.
func (v Version) IsPrerelease() bool { return len(v.Pre) > 0 }

// Equal reports whether v and o are identical, build metadata included.
func (v Version) Equal(o Version) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch &&
		slices.Equal(v.Pre, o.Pre) && slices.Equal(v.Build, o.Build)
}

// Compare orders a and b by SemVer precedence, returning -1, 0 or +1.
// Build metadata does not participate in ordering.
func Compare(a, b Version) int {
	return xsemver.Compare("v"+a.String(), "v"+b.String())
}
