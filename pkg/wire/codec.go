// SPDX-License-Identifier: MPL-2.0

package wire

type (
	// Unmarshaler is implemented by types that can build themselves from a
	// Value. Implementations must leave the receiver untouched on error.
	Unmarshaler interface {
		UnmarshalWire(v Value) error
	}

	// Marshaler is implemented by types that can render themselves as a tree
	// node accepted by Render.
	Marshaler interface {
		MarshalWire() any
	}

	// ptrUnmarshaler constrains generic helpers to *T implementing Unmarshaler.
	ptrUnmarshaler[T any] interface {
		*T
		Unmarshaler
	}
)

// Unmarshal decodes v into dst. Errors that do not already carry a location
// are wrapped in a *DecodeError positioned at v.
func Unmarshal(v Value, dst Unmarshaler) error {
	return annotate(v.Path(), dst.UnmarshalWire(v))
}

// Decode builds a T from v.
func Decode[T any, PT ptrUnmarshaler[T]](v Value) (T, error) {
	var out T
	if err := Unmarshal(v, PT(&out)); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeField decodes the required field name of the map v.
func DecodeField[T any, PT ptrUnmarshaler[T]](v Value, name string) (T, error) {
	f, err := v.Field(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T, PT](f)
}

// DecodeOpt decodes v unless it is null, in which case it returns nil.
func DecodeOpt[T any, PT ptrUnmarshaler[T]](v Value) (*T, error) {
	if v.IsNull() {
		return nil, nil
	}
	out, err := Decode[T, PT](v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeOptField decodes the optional field name of the map v. Absence and
// null both yield nil.
func DecodeOptField[T any, PT ptrUnmarshaler[T]](v Value, name string) (*T, error) {
	f, ok, err := v.OptField(name)
	if err != nil || !ok {
		return nil, err
	}
	return DecodeOpt[T, PT](f)
}

// DecodeSeq decodes every element of the sequence v, stopping at the first
// failing element.
func DecodeSeq[T any, PT ptrUnmarshaler[T]](v Value) ([]T, error) {
	elems, err := v.Elems()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		item, err := Decode[T, PT](e)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Strings decodes a sequence of plain strings.
func Strings(v Value) ([]string, error) {
	elems, err := v.Elems()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		s, err := e.Str()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// OptString decodes the optional string field name of the map v.
func OptString(v Value, name string) (*string, error) {
	f, ok, err := v.OptField(name)
	if err != nil || !ok {
		return nil, err
	}
	s, err := f.Str()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EncodeSeq renders every element of xs.
func EncodeSeq[T Marshaler](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x.MarshalWire()
	}
	return out
}

// EncodeStrings renders a string slice as a sequence node.
func EncodeStrings(xs []string) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
