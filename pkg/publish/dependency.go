// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"github.com/cratehub/registry/pkg/wire"
)

// Dependency is one dependency edge declared by a release.
type Dependency struct {
	Optional        bool
	DefaultFeatures bool
	Name            PackageName
	Features        []Feature
	VersionReq      PackageVersionReq
	// Target is a platform cfg expression or triple, if the dependency is
	// platform-specific.
	Target *string
	// Kind is nil when the payload did not specify one; see EffectiveKind.
	Kind *DependencyKind
}

// EffectiveKind returns Kind, defaulting to KindNormal.
func (d Dependency) EffectiveKind() DependencyKind {
	if d.Kind == nil {
		return KindNormal
	}
	return *d.Kind
}

// UnmarshalWire implements wire.Unmarshaler. Fields are decoded in
// declaration order; d is only assigned when every field is valid.
func (d *Dependency) UnmarshalWire(v wire.Value) error {
	var (
		out Dependency
		err error
	)
	if out.Optional, err = boolField(v, "optional"); err != nil {
		return err
	}
	if out.DefaultFeatures, err = boolField(v, "default_features"); err != nil {
		return err
	}
	if out.Name, err = wire.DecodeField[PackageName](v, "name"); err != nil {
		return err
	}
	if out.Features, err = seqField[Feature](v, "features"); err != nil {
		return err
	}
	if out.VersionReq, err = wire.DecodeField[PackageVersionReq](v, "version_req"); err != nil {
		return err
	}
	if out.Target, err = wire.OptString(v, "target"); err != nil {
		return err
	}
	if out.Kind, err = wire.DecodeOptField[DependencyKind](v, "kind"); err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalWire implements wire.Marshaler. Absent optional fields are omitted.
func (d Dependency) MarshalWire() any {
	m := map[string]any{
		"optional":         d.Optional,
		"default_features": d.DefaultFeatures,
		"name":             d.Name.MarshalWire(),
		"features":         wire.EncodeSeq(d.Features),
		"version_req":      d.VersionReq.MarshalWire(),
	}
	if d.Target != nil {
		m["target"] = *d.Target
	}
	if d.Kind != nil {
		m["kind"] = d.Kind.MarshalWire()
	}
	return m
}

func boolField(v wire.Value, name string) (bool, error) {
	f, err := v.Field(name)
	if err != nil {
		return false, err
	}
	return f.Bool()
}

func seqField[T any, PT interface {
	*T
	wire.Unmarshaler
}](v wire.Value, name string) ([]T, error) {
	f, err := v.Field(name)
	if err != nil {
		return nil, err
	}
	return wire.DecodeSeq[T, PT](f)
}
