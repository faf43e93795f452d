// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"maps"
	"slices"

	"github.com/cratehub/registry/pkg/wire"
)

// NewCrate is the payload of a publish request: one release of one crate.
type NewCrate struct {
	Name PackageName
	Vers PackageVersion
	Deps []Dependency

	// Features maps a feature of this crate to the features it enables.
	Features      map[PackageName][]Feature
	Authors       []string
	Description   *string
	Homepage      *string
	Documentation *string
	Readme        *string
	Keywords      *KeywordList
	License       *string
	LicenseFile   *string
	Repository    *string
}

// optionalStrings lists the plain optional metadata fields in decode order,
// split around keywords.
func (c *NewCrate) optionalStrings() (before, after []namedString) {
	before = []namedString{
		{"description", &c.Description},
		{"homepage", &c.Homepage},
		{"documentation", &c.Documentation},
		{"readme", &c.Readme},
	}
	after = []namedString{
		{"license", &c.License},
		{"license_file", &c.LicenseFile},
		{"repository", &c.Repository},
	}
	return before, after
}

type namedString struct {
	name string
	dst  **string
}

// Decode parses data in the given format and decodes it into a NewCrate.
// The result is nil whenever err is non-nil.
func Decode(format wire.Format, data []byte, opts ...wire.ParseOption) (*NewCrate, error) {
	root, err := wire.Parse(format, data, opts...)
	if err != nil {
		return nil, err
	}
	c, err := wire.Decode[NewCrate](root)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode renders the crate in the given format.
func (c *NewCrate) Encode(format wire.Format) ([]byte, error) {
	return wire.Render(format, c.MarshalWire())
}

// UnmarshalWire implements wire.Unmarshaler. Fields are decoded in the order
// name, vers, deps, features, authors, description, homepage, documentation,
// readme, keywords, license, license_file, repository. Feature keys are
// visited in sorted order, each key before its values. c is only assigned
// when the whole payload is valid.
func (c *NewCrate) UnmarshalWire(v wire.Value) error {
	var (
		out NewCrate
		err error
	)
	if out.Name, err = wire.DecodeField[PackageName](v, "name"); err != nil {
		return err
	}
	if out.Vers, err = wire.DecodeField[PackageVersion](v, "vers"); err != nil {
		return err
	}
	if out.Deps, err = seqField[Dependency](v, "deps"); err != nil {
		return err
	}
	if out.Features, err = decodeFeatures(v); err != nil {
		return err
	}
	authors, err := v.Field("authors")
	if err != nil {
		return err
	}
	if out.Authors, err = wire.Strings(authors); err != nil {
		return err
	}

	before, after := out.optionalStrings()
	if err := decodeOptionalStrings(v, before); err != nil {
		return err
	}
	if out.Keywords, err = wire.DecodeOptField[KeywordList](v, "keywords"); err != nil {
		return err
	}
	if err := decodeOptionalStrings(v, after); err != nil {
		return err
	}

	*c = out
	return nil
}

func decodeFeatures(v wire.Value) (map[PackageName][]Feature, error) {
	f, err := v.Field("features")
	if err != nil {
		return nil, err
	}
	entries, err := f.Entries()
	if err != nil {
		return nil, err
	}
	features := make(map[PackageName][]Feature, len(entries))
	for _, e := range entries {
		key, err := ParsePackageName(e.Key)
		if err != nil {
			return nil, &wire.DecodeError{Path: e.Value.Path(), Err: err}
		}
		enables, err := wire.DecodeSeq[Feature](e.Value)
		if err != nil {
			return nil, err
		}
		features[key] = enables
	}
	return features, nil
}

func decodeOptionalStrings(v wire.Value, fields []namedString) error {
	for _, f := range fields {
		s, err := wire.OptString(v, f.name)
		if err != nil {
			return err
		}
		*f.dst = s
	}
	return nil
}

// MarshalWire implements wire.Marshaler. Absent optional fields are omitted.
func (c *NewCrate) MarshalWire() any {
	features := make(map[string]any, len(c.Features))
	for k, v := range c.Features {
		features[k.String()] = wire.EncodeSeq(v)
	}
	m := map[string]any{
		"name":     c.Name.MarshalWire(),
		"vers":     c.Vers.MarshalWire(),
		"deps":     wire.EncodeSeq(c.Deps),
		"features": features,
		"authors":  wire.EncodeStrings(c.Authors),
	}
	if c.Keywords != nil {
		m["keywords"] = c.Keywords.MarshalWire()
	}
	before, after := c.optionalStrings()
	for _, f := range append(before, after...) {
		if *f.dst != nil {
			m[f.name] = **f.dst
		}
	}
	return m
}

// FeatureNames returns the declared feature names in sorted order.
func (c *NewCrate) FeatureNames() []string {
	names := make([]string, 0, len(c.Features))
	for k := range maps.Keys(c.Features) {
		names = append(names, k.String())
	}
	slices.Sort(names)
	return names
}

// DependencyNames returns the sorted, de-duplicated names of all declared
// dependencies.
func (c *NewCrate) DependencyNames() []string {
	names := make([]string, 0, len(c.Deps))
	for _, d := range c.Deps {
		names = append(names, d.Name.String())
	}
	slices.Sort(names)
	return slices.Compact(names)
}
