// SPDX-License-Identifier: MPL-2.0

package wire

import (
	"path/filepath"
	"strings"
)

const (
	// FormatJSON is a single JSON document.
	FormatJSON Format = "json"
	// FormatYAML is a single YAML document.
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML document.
	FormatTOML Format = "toml"
	// FormatCUE is concrete CUE data.
	FormatCUE Format = "cue"
)

// Format names a document serialization. It implements pflag.Value so it can
// be bound directly to a command-line flag.
type Format string

var extFormats = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
	".cue":  FormatCUE,
}

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML, FormatCUE}
}

// ParseFormat resolves a format name. "yml" is accepted as an alias of yaml.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yml" {
		return FormatYAML, nil
	}
	f := Format(name)
	if err := f.Validate(); err != nil {
		return "", &UnknownFormatError{Value: s}
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", &UnknownFormatError{Value: path}
}

// Validate returns nil if f is a supported format.
func (f Format) Validate() error {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatCUE:
		return nil
	default:
		return &UnknownFormatError{Value: string(f)}
	}
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }
