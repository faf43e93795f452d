// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"maps"
	"testing"

	"github.com/cratehub/registry/pkg/wire"
)

// CrateManifest returns the generic tree of a minimal valid release manifest
// (my_crate 1.2.3 with keywords cli and tool). Entries in overrides replace
// top-level fields; a nil override removes the field.
func CrateManifest(overrides map[string]any) map[string]any {
	m := map[string]any{
		"name":     "my_crate",
		"vers":     "1.2.3",
		"deps":     []any{},
		"features": map[string]any{},
		"authors":  []any{"Alice <alice@example.com>"},
		"keywords": []any{"cli", "tool"},
	}
	maps.Copy(m, overrides)
	for k, v := range m {
		if v == nil {
			delete(m, k)
		}
	}
	return m
}

// RenderManifest renders CrateManifest(overrides) in format.
func RenderManifest(t testing.TB, format wire.Format, overrides map[string]any) string {
	t.Helper()
	out, err := wire.Render(format, CrateManifest(overrides))
	if err != nil {
		t.Fatalf("failed to render %s manifest: %v", format, err)
	}
	return string(out)
}
