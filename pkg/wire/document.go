// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cratehub/registry/pkg/cueutil"
)

type (
	// ParseOption configures Parse.
	ParseOption func(*parseOptions)

	parseOptions struct {
		maxSize  int64
		filename string
	}
)

// WithMaxSize caps the document size in bytes. The default is
// cueutil.DefaultMaxFileSize.
func WithMaxSize(n int64) ParseOption {
	return func(o *parseOptions) { o.maxSize = n }
}

// WithFilename sets the name used in syntax errors.
func WithFilename(name string) ParseOption {
	return func(o *parseOptions) { o.filename = name }
}

// Parse decodes data in the given format into a tree and returns a cursor at
// its root. Unknown fields are kept in the tree; it is up to decoders to
// ignore them.
func Parse(format Format, data []byte, opts ...ParseOption) (Value, error) {
	o := parseOptions{maxSize: cueutil.DefaultMaxFileSize, filename: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}
	if err := format.Validate(); err != nil {
		return Value{}, err
	}
	if err := cueutil.CheckFileSize(data, o.maxSize, o.filename); err != nil {
		return Value{}, err
	}

	var (
		tree any
		err  error
	)
	switch format {
	case FormatJSON:
		tree, err = parseJSON(data)
	case FormatYAML:
		tree, err = parseYAML(data)
	case FormatTOML:
		tree, err = parseTOML(data)
	case FormatCUE:
		// cueutil errors already name the file and path.
		tree, err = cueutil.DecodeTree(data, cueutil.WithFilename(o.filename), cueutil.WithMaxFileSize(o.maxSize))
		if err != nil {
			return Value{}, &SyntaxError{Format: format, Err: err}
		}
	}
	if err != nil {
		return Value{}, &SyntaxError{Format: format, Filename: o.filename, Err: err}
	}
	return Root(normalize(tree)), nil
}

// Render serializes a tree built by Marshaler implementations.
func Render(format Format, tree any) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(tree)
	case FormatCUE:
		return cueutil.EncodeTree(tree)
	default:
		return nil, &UnknownFormatError{Value: string(format)}
	}
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return tree, nil
}

func parseYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var tree any
	if err := dec.Decode(&tree); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("expected a single YAML document")
	}
	return tree, nil
}

func parseTOML(data []byte) (any, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// normalize rewrites parser-specific container types into []any and
// map[string]any so Value only deals with one shape.
func normalize(n any) any {
	switch t := n.(type) {
	case map[string]any:
		for k, v := range t {
			t[k] = normalize(v)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			m[key] = normalize(v)
		}
		return m
	case []any:
		for i, v := range t {
			t[i] = normalize(v)
		}
		return t
	case []map[string]any:
		seq := make([]any, len(t))
		for i, v := range t {
			seq[i] = normalize(v)
		}
		return seq
	default:
		return n
	}
}
