// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/cratehub/registry/internal/issue"
	"github.com/cratehub/registry/internal/testutil"
	"github.com/cratehub/registry/pkg/cueutil"
	"github.com/cratehub/registry/pkg/platform"
	"github.com/cratehub/registry/pkg/types"
	"github.com/cratehub/registry/pkg/wire"
)

func writeConfig(t *testing.T, dir, content string) types.FilesystemPath {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return types.FilesystemPath(path)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %s, want 5m", cfg.Database.CacheTTL)
	}
	if !strings.HasSuffix(cfg.Database.Path.String(), DatabaseFileName) {
		t.Errorf("Database.Path = %q, want a path ending in %s", cfg.Database.Path, DatabaseFileName)
	}
	if cfg.Publish.MaxManifestBytes != cueutil.DefaultMaxFileSize {
		t.Errorf("MaxManifestBytes = %d, want %d", cfg.Publish.MaxManifestBytes, cueutil.DefaultMaxFileSize)
	}
	if cfg.Publish.DefaultFormat != wire.FormatJSON {
		t.Errorf("DefaultFormat = %q, want json", cfg.Publish.DefaultFormat)
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestDefaultConfig_UsesDataDir(t *testing.T) {
	dir := t.TempDir()
	SetDataDirOverride(dir)
	t.Cleanup(Reset)

	want := types.FilesystemPath(filepath.Join(dir, DatabaseFileName))
	if got := DefaultConfig().Database.Path; got != want {
		t.Errorf("Database.Path = %q, want %q", got, want)
	}
}

func TestConfigDir(t *testing.T) {
	switch runtime.GOOS {
	case platform.Windows, platform.Darwin:
		t.Skip("XDG lookup only applies to Linux and other Unix systems")
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/xdg/config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	dir, err = DataDir()
	if err != nil {
		t.Fatalf("DataDir() returned error: %v", err)
	}
	if want := filepath.Join("/xdg/data", AppName); dir != want {
		t.Errorf("DataDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_HomeFallback(t *testing.T) {
	home := t.TempDir()
	testutil.SetHomeDir(t, home)

	cfgDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() returned error: %v", err)
	}

	var wantCfg, wantData string
	switch runtime.GOOS {
	case platform.Windows:
		wantCfg = filepath.Join(home, "AppData", "Roaming", AppName)
		wantData = filepath.Join(home, "AppData", "Local", AppName)
	case platform.Darwin:
		wantCfg = filepath.Join(home, "Library", "Application Support", AppName)
		wantData = wantCfg
	default:
		wantCfg = filepath.Join(home, ".config", AppName)
		wantData = filepath.Join(home, ".local", "share", AppName)
	}
	if cfgDir != wantCfg {
		t.Errorf("ConfigDir() = %q, want %q", cfgDir, wantCfg)
	}
	if dataDir != wantData {
		t.Errorf("DataDir() = %q, want %q", dataDir, wantData)
	}
}

func TestReset(t *testing.T) {
	SetConfigDirOverride("/override/config")
	SetDataDirOverride("/override/data")

	if dir, _ := ConfigDir(); dir != "/override/config" {
		t.Errorf("ConfigDir() = %q, want the override", dir)
	}
	if dir, _ := DataDir(); dir != "/override/data" {
		t.Errorf("DataDir() = %q, want the override", dir)
	}

	Reset()
	if configDirOverride != "" || dataDirOverride != "" {
		t.Error("Reset() should clear both overrides")
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, source, err := NewProvider().LoadWithSource(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty when no file exists", source)
	}
	if cfg.Log.Level != LogLevelInfo || cfg.Database.CacheTTL != 5*time.Minute {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
database: {
	path:      "/srv/registry/registry.db"
	cache_ttl: "90s"
}
log: level: "debug"
`)

	cfg, source, err := NewProvider().LoadWithSource(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(dir),
	})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if source != path.String() {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Database.Path != "/srv/registry/registry.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Database.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %s, want 90s", cfg.Database.CacheTTL)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Unset sections keep their defaults.
	if cfg.Publish.DefaultFormat != wire.FormatJSON {
		t.Errorf("DefaultFormat = %q, want the json default", cfg.Publish.DefaultFormat)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `publish: {
	max_manifest_bytes: 4096
	default_format:     "toml"
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Publish.MaxManifestBytes != 4096 {
		t.Errorf("MaxManifestBytes = %d, want 4096", cfg.Publish.MaxManifestBytes)
	}
	if cfg.Publish.DefaultFormat != wire.FormatTOML {
		t.Errorf("DefaultFormat = %q, want toml", cfg.Publish.DefaultFormat)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	path := types.FilesystemPath(filepath.Join(t.TempDir(), "missing.cue"))
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if ae.Operation != "load configuration" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantPath string
	}{
		{"unknown log level", `log: level: "verbose"`, "log.level"},
		{"unknown format", `publish: default_format: "xml"`, "publish.default_format"},
		{"limit over ceiling", `publish: max_manifest_bytes: 20971520`, "publish.max_manifest_bytes"},
		{"malformed duration", `database: cache_ttl: "five minutes"`, "database.cache_ttl"},
		{"empty database path", `database: path: ""`, "database.path"},
		{"unknown field", `server: port: 8080`, "server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatalf("Load() should reject %s", tt.content)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error should name %s, got: %v", tt.wantPath, err)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) || ae.Resource != path.String() {
				t.Fatalf("error should be actionable and name the file, got: %#v", err)
			}
			fix := slices.IndexFunc(ae.Suggestions, func(s string) bool {
				return strings.HasPrefix(s, "Fix the value at "+tt.wantPath)
			})
			if fix < 0 || strings.Contains(ae.Suggestions[fix], "#") {
				t.Errorf("Suggestions = %q, want the bare path %s", ae.Suggestions, tt.wantPath)
			}
		})
	}
}

func TestLoad_InvalidCUE_ReturnsError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `log: {level: "info"`)
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("Load() should fail on malformed CUE")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || len(ae.Suggestions) == 0 {
		t.Errorf("error should be actionable with suggestions, got: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `log: level: "debug"`)

	t.Setenv("REGISTRY_LOG_LEVEL", "warn")
	t.Setenv("REGISTRY_DATABASE_CACHE_TTL", "2m")
	t.Setenv("REGISTRY_DATABASE_PATH", ":memory:")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("Log.Level = %q, want the env override", cfg.Log.Level)
	}
	if cfg.Database.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %s, want 2m", cfg.Database.CacheTTL)
	}
	if !cfg.Database.Path.IsInMemory() {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("REGISTRY_LOG_LEVEL", "chatty")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Load() error = %v, want ErrInvalidLogLevel", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should also wrap ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	path := types.FilesystemPath(filepath.Join(t.TempDir(), "nested", "config.cue"))

	wrote, err := CreateDefaultConfig(path, false)
	if err != nil || !wrote {
		t.Fatalf("CreateDefaultConfig() = %v, %v; want true, nil", wrote, err)
	}

	// The generated file must load back to the defaults.
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("round trip = %+v, want %+v", cfg, DefaultConfig())
	}

	if err := os.WriteFile(path.String(), []byte(`log: level: "error"`), 0o644); err != nil {
		t.Fatal(err)
	}
	wrote, err = CreateDefaultConfig(path, false)
	if err != nil || wrote {
		t.Errorf("CreateDefaultConfig() over an existing file = %v, %v; want false, nil", wrote, err)
	}
	wrote, err = CreateDefaultConfig(path, true)
	if err != nil || !wrote {
		t.Errorf("CreateDefaultConfig(force) = %v, %v; want true, nil", wrote, err)
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Database.Path = `C:\registry\registry.db`
	cfg.Log.Level = LogLevelError

	out := GenerateCUE(cfg)
	for _, want := range []string{
		`path:      "C:\\registry\\registry.db"`,
		`cache_ttl: "5m0s"`,
		`level: "error"`,
		`default_format:     "json"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q\n%s", want, out)
		}
	}
	if err := validateCUE(t, out); err != nil {
		t.Errorf("GenerateCUE() output does not satisfy the schema: %v", err)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	got, err := FilePath(LoadOptions{ConfigDirPath: "/etc/registry"})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/etc/registry", "config.cue"); got.String() != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}

	got, _ = FilePath(LoadOptions{ConfigFilePath: "/tmp/x.cue", ConfigDirPath: "/etc/registry"})
	if got != "/tmp/x.cue" {
		t.Errorf("FilePath() = %q, an explicit file should win", got)
	}
}
