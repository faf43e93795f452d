// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cratehub/registry/pkg/cueutil"
	"github.com/cratehub/registry/pkg/types"
	"github.com/cratehub/registry/pkg/wire"
)

const (
	// LogLevelDebug logs every storage query and cache decision.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidCacheTTL is the sentinel error wrapped by InvalidCacheTTLError.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL")
	// ErrInvalidManifestLimit is the sentinel error wrapped by InvalidManifestLimitError.
	ErrInvalidManifestLimit = errors.New("invalid manifest size limit")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level the CLI logger emits.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidCacheTTLError is returned when the cache TTL is negative.
	InvalidCacheTTLError struct {
		Value time.Duration
	}

	// InvalidManifestLimitError is returned when the manifest size limit is
	// not positive or exceeds cueutil.DefaultMaxFileSize.
	InvalidManifestLimitError struct {
		Value int64
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Database configures the download counter store.
		Database DatabaseConfig `json:"database" mapstructure:"database"`
		// Publish configures manifest validation.
		Publish PublishConfig `json:"publish" mapstructure:"publish"`
		// Log configures the CLI logger.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// DatabaseConfig configures the SQLite store.
	DatabaseConfig struct {
		// Path is the SQLite database file.
		Path types.FilesystemPath `json:"path" mapstructure:"path"`
		// CacheTTL is how long looked-up rows stay cached. Zero disables the cache.
		CacheTTL time.Duration `json:"cache_ttl" mapstructure:"cache_ttl"`
	}

	// PublishConfig configures manifest decoding.
	PublishConfig struct {
		// MaxManifestBytes caps the size of a manifest accepted for validation.
		MaxManifestBytes int64 `json:"max_manifest_bytes" mapstructure:"max_manifest_bytes"`
		// DefaultFormat is used when the format cannot be inferred from a file name.
		DefaultFormat wire.Format `json:"default_format" mapstructure:"default_format"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the level is not one of the defined levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Level converts the level to a charmbracelet/log level. Invalid levels map
// to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface for InvalidCacheTTLError.
func (e *InvalidCacheTTLError) Error() string {
	return fmt.Sprintf("invalid cache TTL %s: must not be negative", e.Value)
}

// Unwrap returns ErrInvalidCacheTTL for errors.Is() compatibility.
func (e *InvalidCacheTTLError) Unwrap() error { return ErrInvalidCacheTTL }

// Error implements the error interface for InvalidManifestLimitError.
func (e *InvalidManifestLimitError) Error() string {
	return fmt.Sprintf("invalid manifest size limit %d: must be between 1 and %d bytes",
		e.Value, cueutil.DefaultMaxFileSize)
}

// Unwrap returns ErrInvalidManifestLimit for errors.Is() compatibility.
func (e *InvalidManifestLimitError) Unwrap() error { return ErrInvalidManifestLimit }

// Validate returns every field error of the database section.
func (c DatabaseConfig) Validate() []error {
	var errs []error
	if err := c.Path.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.CacheTTL < 0 {
		errs = append(errs, &InvalidCacheTTLError{Value: c.CacheTTL})
	}
	return errs
}

// Validate returns every field error of the publish section.
func (c PublishConfig) Validate() []error {
	var errs []error
	if c.MaxManifestBytes <= 0 || c.MaxManifestBytes > cueutil.DefaultMaxFileSize {
		errs = append(errs, &InvalidManifestLimitError{Value: c.MaxManifestBytes})
	}
	if err := c.DefaultFormat.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// Validate returns an error collecting every invalid field, or nil.
// Environment overrides bypass the CUE schema, so this runs after every load.
func (c Config) Validate() error {
	errs := c.Database.Validate()
	errs = append(errs, c.Publish.Validate()...)
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid config: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() and
// errors.As() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration. The database lives in
// the platform data directory; if that cannot be resolved it falls back to
// a file in the working directory.
func DefaultConfig() *Config {
	dbPath := types.FilesystemPath(DatabaseFileName)
	if dir, err := DataDir(); err == nil {
		dbPath = types.FilesystemPath(joinPath(dir, DatabaseFileName))
	}
	return &Config{
		Database: DatabaseConfig{
			Path:     dbPath,
			CacheTTL: 5 * time.Minute,
		},
		Publish: PublishConfig{
			MaxManifestBytes: cueutil.DefaultMaxFileSize,
			DefaultFormat:    wire.FormatJSON,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}
