// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/cratehub/registry/internal/issue"
	"github.com/cratehub/registry/pkg/cueutil"
	"github.com/cratehub/registry/pkg/platform"
	"github.com/cratehub/registry/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "registry"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// DatabaseFileName is the default SQLite file name inside DataDir.
	DatabaseFileName = "registry.db"
	// EnvPrefix prefixes every environment override, e.g. REGISTRY_LOG_LEVEL.
	EnvPrefix = "REGISTRY"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the registry configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DataDir returns the directory holding the default database: %LOCALAPPDATA%
// on Windows, ~/Library/Application Support on macOS and $XDG_DATA_HOME
// (defaulting to ~/.local/share) elsewhere.
func DataDir() (string, error) {
	if dataDirOverride != "" {
		return dataDirOverride, nil
	}

	var dataDir string

	switch runtime.GOOS {
	case platform.Windows:
		dataDir = os.Getenv("LOCALAPPDATA")
		if dataDir == "" {
			dataDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, "Library", "Application Support")
	default:
		dataDir = os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(dataDir, AppName), nil
}

func joinPath(elem ...string) string { return filepath.Join(elem...) }

// FilePath returns the config file location that Load would read when no
// explicit path is given, whether or not the file exists.
func FilePath(opts LoadOptions) (types.FilesystemPath, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it was read from,
// which is empty when only defaults and environment overrides applied.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := newViper()

	resolvedPath := ""

	// An explicit --config path must exist.
	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'registry config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", cueLoadError(path, err)
		}
		resolvedPath = path
	} else {
		cfgPath, err := FilePath(opts)
		if err != nil {
			return nil, "", err
		}

		// Fall back to ./config.cue, then to defaults.
		for _, candidate := range []string{cfgPath.String(), ConfigFileName + "." + ConfigFileExt} {
			if !fileExists(candidate) {
				continue
			}
			if err := loadCUEIntoViper(v, candidate); err != nil {
				return nil, "", cueLoadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("decode configuration").
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for malformed values").
			Wrap(err).
			BuildError()
	}

	// Environment overrides never pass through the CUE schema.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables and the config file").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// newViper returns a Viper instance holding the defaults and bound to
// REGISTRY_* environment variables (REGISTRY_DATABASE_PATH and so on).
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("database.path", defaults.Database.Path.String())
	v.SetDefault("database.cache_ttl", defaults.Database.CacheTTL)
	v.SetDefault("publish.max_manifest_bytes", defaults.Publish.MaxManifestBytes)
	v.SetDefault("publish.default_format", defaults.Publish.DefaultFormat.String())
	v.SetDefault("log.level", defaults.Log.Level.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func cueLoadError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId)

	var verr *cueutil.ValidationError
	if errors.As(err, &verr) && verr.CUEPath.Validate() == nil {
		ctx.WithSuggestion(fmt.Sprintf("Fix the value at %s", verr.CUEPath))
	}
	return ctx.
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("See 'registry config show' for the expected layout").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath types.FilesystemPath) (string, error) {
	if configDirPath != "" {
		return configDirPath.String(), nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper, so unset fields keep their defaults and env overrides still apply.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecode[map[string]any](
		[]byte(configSchema), data, "#Config",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to path unless a file
// already exists there and force is false. It reports whether it wrote.
func CreateDefaultConfig(path types.FilesystemPath, force bool) (bool, error) {
	if err := path.Validate(); err != nil {
		return false, err
	}
	if !force && fileExists(path.String()) {
		return false, nil
	}
	if err := Save(DefaultConfig(), path); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes cfg as CUE to path, creating the parent directory.
func Save(cfg *Config, path types.FilesystemPath) error {
	if err := os.MkdirAll(path.Dir().String(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path.String(), []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Registry configuration file.\n")
	sb.WriteString("// Every field may also be set through " + EnvPrefix + "_<SECTION>_<FIELD>.\n\n")

	sb.WriteString("database: {\n")
	fmt.Fprintf(&sb, "\tpath:      %q\n", cfg.Database.Path)
	fmt.Fprintf(&sb, "\tcache_ttl: %q\n", cfg.Database.CacheTTL.String())
	sb.WriteString("}\n")

	sb.WriteString("\npublish: {\n")
	fmt.Fprintf(&sb, "\tmax_manifest_bytes: %d\n", cfg.Publish.MaxManifestBytes)
	fmt.Fprintf(&sb, "\tdefault_format:     %q\n", cfg.Publish.DefaultFormat)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}
