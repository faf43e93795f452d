// SPDX-License-Identifier: MPL-2.0

// Package naming holds the registry naming policy: the predicates that decide
// whether a string is an acceptable crate name, feature name, or keyword.
//
// The predicates are pure and never normalize their input. Callers that need a
// value which is known to satisfy a predicate should use the validated types in
// pkg/publish instead of calling these directly.
package naming

import (
	"regexp"
	"strings"
)

// MaxNameLength is the maximum length, in bytes, of a crate name.
const MaxNameLength = 64

var (
	// identPattern matches identifiers: an ASCII letter followed by ASCII
	// letters, digits, underscores, or hyphens.
	identPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

	// keywordPattern matches keywords. Unlike identifiers they may start with a
	// digit and may contain '+' (e.g. "c++", "3d").
	keywordPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_+-]*$`)
)

// ValidIdent reports whether s is a valid identifier.
func ValidIdent(s string) bool {
	return identPattern.MatchString(s)
}

// ValidCrateName reports whether s is an acceptable crate name.
func ValidCrateName(s string) bool {
	return len(s) <= MaxNameLength && ValidIdent(s)
}

// ValidFeatureName reports whether s is an acceptable feature name. A feature
// is either an identifier ("serde") or a dependency feature reference
// ("serde/derive").
func ValidFeatureName(s string) bool {
	dep, feat, found := strings.Cut(s, "/")
	if !found {
		return ValidIdent(s)
	}
	return ValidIdent(dep) && ValidIdent(feat)
}

// ValidKeyword reports whether s is an acceptable keyword. Length limits are
// enforced by the keyword list, not here.
func ValidKeyword(s string) bool {
	return keywordPattern.MatchString(s)
}
