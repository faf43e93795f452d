// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strings"
	"testing"
)

func TestValidCrateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "serde", true},
		{"underscore", "my_crate", true},
		{"hyphen", "tokio-util", true},
		{"digits after first", "h2", true},
		{"max length", "a" + strings.Repeat("b", MaxNameLength-1), true},
		{"too long", "a" + strings.Repeat("b", MaxNameLength), false},
		{"empty", "", false},
		{"leading digit", "1password", false},
		{"leading hyphen", "-foo", false},
		{"leading underscore", "_foo", false},
		{"space", "my crate", false},
		{"dot", "foo.bar", false},
		{"slash", "foo/bar", false},
		{"unicode letter", "crâte", false},
		{"trailing newline", "foo\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidCrateName(tt.input); got != tt.want {
				t.Errorf("ValidCrateName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidFeatureName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"std", true},
		{"derive-all", true},
		{"serde/derive", true},
		{"serde/", false},
		{"/derive", false},
		{"a/b/c", false},
		{"", false},
		{"1st", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := ValidFeatureName(tt.input); got != tt.want {
				t.Errorf("ValidFeatureName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"cli", true},
		{"c++", true},
		{"3d", true},
		{"no_std", true},
		{"web-assembly", true},
		{"", false},
		{"-cli", false},
		{"+cli", false},
		{"two words", false},
		{"émoji", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := ValidKeyword(tt.input); got != tt.want {
				t.Errorf("ValidKeyword(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
