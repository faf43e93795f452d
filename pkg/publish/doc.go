// SPDX-License-Identifier: MPL-2.0

// Package publish holds the validated types a release payload decodes into.
//
// Every scalar wraps one unexported value and can only be built through its
// Parse or New function, so holding a PackageName, Keyword, Feature,
// PackageVersion, PackageVersionReq, KeywordList or DependencyKind means the
// value already passed the registry rule for it. The same rule runs whichever
// path the value comes in through: wire decoding (JSON, YAML, TOML, CUE),
// encoding.TextUnmarshaler, or a direct constructor call.
//
// Aggregates (Dependency, NewCrate) decode all-or-nothing. Fields are visited
// in declaration order and the first failure is returned, tagged with the
// path of the field that produced it.
package publish
