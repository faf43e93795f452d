// SPDX-License-Identifier: MPL-2.0

package semver

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// OpExact is "=".
	OpExact Op = iota + 1
	// OpGreater is ">".
	OpGreater
	// OpGreaterEq is ">=".
	OpGreaterEq
	// OpLess is "<".
	OpLess
	// OpLessEq is "<=".
	OpLessEq
	// OpTilde is "~": patch-level changes.
	OpTilde
	// OpCaret is "^": changes that keep the left-most non-zero component.
	OpCaret
	// OpWildcard is "*", "1.*" or "1.2.*".
	OpWildcard
)

var (
	// opSymbols is the rendering of every operator. OpWildcard renders through
	// its parts instead.
	opSymbols = map[Op]string{
		OpExact:     "=",
		OpGreater:   ">",
		OpGreaterEq: ">=",
		OpLess:      "<",
		OpLessEq:    "<=",
		OpTilde:     "~",
		OpCaret:     "^",
	}

	// predicatePattern splits a predicate into operator and version part.
	predicatePattern = regexp.MustCompile(`^(>=|<=|>|<|=|~|\^)?\s*(\S+)$`)

	numericPattern = regexp.MustCompile(`^(0|[1-9]\d*)$`)
)

type (
	// Op is a comparison operator in a requirement predicate.
	Op uint8

	// Predicate is one comparator of a requirement, e.g. ">=1.2".
	Predicate struct {
		Op Op
		// Parts is how many numeric components were written (0-3). Missing
		// components are zero and widen the match according to Op.
		Parts int
		Major uint64
		Minor uint64
		Patch uint64
		Pre   []string
	}

	// Req is a version requirement: every predicate must match.
	Req struct {
		Predicates []Predicate
	}
)

// ParseReq parses a comma-separated version requirement such as
// "^1.2, <1.8.0". A predicate without an operator is a caret requirement.
func ParseReq(s string) (Req, error) {
	if strings.TrimSpace(s) == "" {
		return Req{}, &ParseError{Input: s, Reason: "empty requirement", req: true}
	}

	var req Req
	for _, raw := range strings.Split(s, ",") {
		p, reason := parsePredicate(strings.TrimSpace(raw))
		if reason != "" {
			return Req{}, &ParseError{Input: s, Reason: reason, req: true}
		}
		req.Predicates = append(req.Predicates, p)
	}
	return req, nil
}

// MustParseReq is like ParseReq but panics on error.
func MustParseReq(s string) Req {
	r, err := ParseReq(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parsePredicate(s string) (Predicate, string) {
	if s == "" {
		return Predicate{}, "empty predicate"
	}
	m := predicatePattern.FindStringSubmatch(s)
	if m == nil {
		return Predicate{}, "malformed predicate " + strconv.Quote(s)
	}
	op, body := m[1], m[2]

	// Pre-release is only meaningful on a full MAJOR.MINOR.PATCH.
	var pre []string
	if i := strings.IndexByte(body, '-'); i >= 0 {
		v, err := Parse(body)
		if err != nil {
			return Predicate{}, "malformed pre-release in " + strconv.Quote(s)
		}
		body = body[:i]
		pre = v.Pre
	}

	parts := strings.Split(body, ".")
	if len(parts) > 3 {
		return Predicate{}, "too many version components in " + strconv.Quote(s)
	}

	p := Predicate{Op: OpCaret, Pre: pre}
	if op != "" {
		for k, sym := range opSymbols {
			if sym == op {
				p.Op = k
			}
		}
	}

	dst := []*uint64{&p.Major, &p.Minor, &p.Patch}
	for i, part := range parts {
		if isWildcard(part) {
			// Wildcards end the predicate: "1.*" and "1.*.*" are the same.
			for _, rest := range parts[i:] {
				if !isWildcard(rest) {
					return Predicate{}, "version component after wildcard in " + strconv.Quote(s)
				}
			}
			if op != "" && op != "=" {
				return Predicate{}, "wildcard cannot follow operator " + op
			}
			if pre != nil {
				return Predicate{}, "wildcard cannot carry a pre-release"
			}
			p.Op = OpWildcard
			break
		}
		if !numericPattern.MatchString(part) {
			return Predicate{}, "invalid version component " + strconv.Quote(part)
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Predicate{}, "numeric component out of range"
		}
		*dst[i] = n
		p.Parts = i + 1
	}
	if pre != nil && p.Parts != 3 {
		return Predicate{}, "pre-release requires MAJOR.MINOR.PATCH"
	}
	return p, ""
}

func isWildcard(s string) bool {
	return s == "*" || s == "x" || s == "X"
}

// String returns the canonical rendering of the predicate.
func (p Predicate) String() string {
	nums := []uint64{p.Major, p.Minor, p.Patch}[:p.Parts]
	rendered := make([]string, 0, 3)
	for _, n := range nums {
		rendered = append(rendered, strconv.FormatUint(n, 10))
	}
	if p.Op == OpWildcard {
		return strings.Join(append(rendered, "*"), ".")
	}

	var sb strings.Builder
	sb.WriteString(opSymbols[p.Op])
	sb.WriteString(strings.Join(rendered, "."))
	if len(p.Pre) > 0 {
		sb.WriteByte('-')
		sb.WriteString(strings.Join(p.Pre, "."))
	}
	return sb.String()
}

// String returns the canonical rendering of the requirement.
func (r Req) String() string {
	parts := make([]string, len(r.Predicates))
	for i, p := range r.Predicates {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Equal reports whether both requirements have identical predicates.
func (r Req) Equal(o Req) bool {
	return slices.EqualFunc(r.Predicates, o.Predicates, func(a, b Predicate) bool {
		return a.Op == b.Op && a.Parts == b.Parts && a.Major == b.Major &&
			a.Minor == b.Minor && a.Patch == b.Patch && slices.Equal(a.Pre, b.Pre)
	})
}

// Matches reports whether v satisfies every predicate of the requirement.
// A pre-release version only matches when some predicate names a pre-release
// of the same MAJOR.MINOR.PATCH.
func (r Req) Matches(v Version) bool {
	for _, p := range r.Predicates {
		if !p.Matches(v) {
			return false
		}
	}
	if !v.IsPrerelease() {
		return true
	}
	for _, p := range r.Predicates {
		if len(p.Pre) > 0 && p.Major == v.Major && p.Minor == v.Minor && p.Patch == v.Patch {
			return true
		}
	}
	return false
}

// Matches reports whether v satisfies this single predicate, ignoring the
// pre-release opt-in rule applied by Req.Matches.
func (p Predicate) Matches(v Version) bool {
	floor := Version{Major: p.Major, Minor: p.Minor, Patch: p.Patch, Pre: p.Pre}

	switch p.Op {
	case OpExact:
		switch p.Parts {
		case 1:
			return v.Major == p.Major
		case 2:
			return v.Major == p.Major && v.Minor == p.Minor
		}
		return Compare(v, floor) == 0
	case OpGreater:
		switch p.Parts {
		case 1:
			return v.Major > p.Major
		case 2:
			return v.Major > p.Major || (v.Major == p.Major && v.Minor > p.Minor)
		}
		return Compare(v, floor) > 0
	case OpGreaterEq:
		return Compare(v, floor) >= 0
	case OpLess:
		return Compare(v, floor) < 0
	case OpLessEq:
		switch p.Parts {
		case 1:
			return v.Major <= p.Major
		case 2:
			return v.Major < p.Major || (v.Major == p.Major && v.Minor <= p.Minor)
		}
		return Compare(v, floor) <= 0
	case OpTilde:
		if Compare(v, floor) < 0 {
			return false
		}
		if p.Parts == 1 {
			return v.Major == p.Major
		}
		return v.Major == p.Major && v.Minor == p.Minor
	case OpCaret:
		if Compare(v, floor) < 0 {
			return false
		}
		switch {
		case p.Major > 0 || p.Parts == 1:
			return v.Major == p.Major
		case p.Minor > 0 || p.Parts == 2:
			return v.Major == 0 && v.Minor == p.Minor
		default:
			return v.Major == 0 && v.Minor == 0 && v.Patch == p.Patch
		}
	case OpWildcard:
		switch p.Parts {
		case 0:
			return true
		case 1:
			return v.Major == p.Major
		default:
			return v.Major == p.Major && v.Minor == p.Minor
		}
	default:
		return false
	}
}
