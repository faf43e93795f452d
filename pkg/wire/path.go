// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"strconv"
	"strings"
)

type (
	// Path locates a node inside a document. The zero Path is the root.
	Path []PathElem

	// PathElem is one step of a Path: a map key or a sequence index.
	PathElem struct {
		Key   string
		Index int
		// IsIndex reports whether the element is a sequence index.
		IsIndex bool
	}
)

// Key returns a new path extended by a map key.
func (p Path) Key(k string) Path {
	return append(p[:len(p):len(p)], PathElem{Key: k})
}

// Index returns a new path extended by a sequence index.
func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], PathElem{Index: i, IsIndex: true})
}

// IsRoot reports whether the path points at the document root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// String renders the path in JSON-path notation, e.g. "deps[0].kind".
// The root renders as the empty string.
func (p Path) String() string {
	var sb strings.Builder
	for i, e := range p {
		if e.IsIndex {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(e.Index))
			sb.WriteByte(']')
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(e.Key)
	}
	return sb.String()
}
