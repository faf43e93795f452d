// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride and dataDirOverride allow tests to override directory
// lookup. os.UserHomeDir() doesn't reliably respect the HOME environment
// variable on all platforms (e.g., macOS in CI).
var (
	configDirOverride string
	dataDirOverride   string
)

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	dataDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetDataDirOverride sets a custom data directory path, which moves the
// default database location. This is primarily intended for testing.
func SetDataDirOverride(dir string) {
	dataDirOverride = dir
}
