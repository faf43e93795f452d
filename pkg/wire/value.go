// SPDX-License-Identifier: MPL-2.0

// Package wire is the structural layer between serialized documents and the
// registry's validated types.
//
// A document in any supported Format is parsed into a plain tree (nil, bool,
// string, numbers, []any, map[string]any) and walked through a Value cursor.
// Types that know how to build themselves from a Value implement Unmarshaler;
// types that know how to render themselves implement Marshaler. The helpers in
// this package keep track of where in the document a failure happened, so the
// first error surfaced carries the path of the offending field.
package wire

import (
	"encoding/json"
	"reflect"
	"slices"
	"strings"
)

const (
	// KindNull is an explicit null or an absent document.
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindString is a string.
	KindString
	// KindNumber is an integer or floating point number.
	KindNumber
	// KindSeq is a sequence.
	KindSeq
	// KindMap is a map with string keys.
	KindMap
	// KindOther is any scalar the registry has no use for (e.g. TOML dates).
	KindOther
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindBool:   "a boolean",
	KindString: "a string",
	KindNumber: "a number",
	KindSeq:    "a sequence",
	KindMap:    "a map",
	KindOther:  "an unsupported value",
}

type (
	// Kind classifies a tree node.
	Kind uint8

	// Value is an immutable cursor over one node of a decoded tree.
	Value struct {
		node any
		path Path
	}

	// Entry is one key/value pair of a map node.
	Entry struct {
		Key   string
		Value Value
	}
)

// String returns the human-readable kind name used in error messages.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Root returns a cursor positioned at the root of tree.
func Root(tree any) Value {
	return Value{node: tree}
}

// Path returns the location of the node inside its document.
func (v Value) Path() Path { return v.path }

// Raw returns the underlying tree node.
func (v Value) Raw() any { return v.node }

// IsNull reports whether the node is null.
func (v Value) IsNull() bool { return v.Kind() == KindNull }

// Kind classifies the node.
func (v Value) Kind() Kind {
	switch v.node.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case json.Number:
		return KindNumber
	case []any:
		return KindSeq
	case map[string]any:
		return KindMap
	}
	switch reflect.ValueOf(v.node).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber
	default:
		return KindOther
	}
}

// Str returns the node as a string, or a *TypeError.
func (v Value) Str() (string, error) {
	s, ok := v.node.(string)
	if !ok {
		return "", v.typeError(KindString)
	}
	return s, nil
}

// Bool returns the node as a boolean, or a *TypeError.
func (v Value) Bool() (bool, error) {
	b, ok := v.node.(bool)
	if !ok {
		return false, v.typeError(KindBool)
	}
	return b, nil
}

// Elems returns cursors for every element of a sequence node, in order.
func (v Value) Elems() ([]Value, error) {
	seq, ok := v.node.([]any)
	if !ok {
		return nil, v.typeError(KindSeq)
	}
	out := make([]Value, len(seq))
	for i, n := range seq {
		out[i] = Value{node: n, path: v.path.Index(i)}
	}
	return out, nil
}

// Entries returns the key/value pairs of a map node sorted by key, which is
// the order decoders visit them in.
func (v Value) Entries() ([]Entry, error) {
	m, ok := v.node.(map[string]any)
	if !ok {
		return nil, v.typeError(KindMap)
	}
	out := make([]Entry, 0, len(m))
	for k, n := range m {
		out = append(out, Entry{Key: k, Value: Value{node: n, path: v.path.Key(k)}})
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

// Field returns the named field of a map node. An absent field is a
// *MissingFieldError; an explicit null is returned as a null Value.
func (v Value) Field(name string) (Value, error) {
	m, ok := v.node.(map[string]any)
	if !ok {
		return Value{}, v.typeError(KindMap)
	}
	n, ok := m[name]
	if !ok {
		return Value{}, &MissingFieldError{Path: v.path, Field: name}
	}
	return Value{node: n, path: v.path.Key(name)}, nil
}

// OptField returns the named field of a map node. The boolean is false when
// the field is absent or null.
func (v Value) OptField(name string) (Value, bool, error) {
	m, ok := v.node.(map[string]any)
	if !ok {
		return Value{}, false, v.typeError(KindMap)
	}
	n, ok := m[name]
	if !ok || n == nil {
		return Value{}, false, nil
	}
	return Value{node: n, path: v.path.Key(name)}, true, nil
}

func (v Value) typeError(want Kind) error {
	return &TypeError{Path: v.path, Want: want, Got: v.Kind()}
}
