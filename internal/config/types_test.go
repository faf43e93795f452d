// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cratehub/registry/pkg/types"
	"github.com/cratehub/registry/pkg/wire"
)

func TestLogLevel_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   LogLevel
		want    log.Level
		wantErr bool
	}{
		{LogLevelDebug, log.DebugLevel, false},
		{LogLevelInfo, log.InfoLevel, false},
		{LogLevelWarn, log.WarnLevel, false},
		{LogLevelError, log.ErrorLevel, false},
		{"", log.InfoLevel, true},
		{"fatal", log.FatalLevel, true},
		{"DEBUG", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()

			err := tt.level.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLogLevel) {
					t.Fatalf("Validate() = %v, want ErrInvalidLogLevel", err)
				}
				var lvlErr *InvalidLogLevelError
				if !errors.As(err, &lvlErr) || lvlErr.Value != tt.level {
					t.Errorf("error should carry the value, got %#v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() returned unexpected error: %v", err)
			}
			if got := tt.level.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Database: DatabaseConfig{Path: "registry.db", CacheTTL: time.Minute},
		Publish:  PublishConfig{MaxManifestBytes: 1024, DefaultFormat: wire.FormatYAML},
		Log:      LogConfig{Level: LogLevelWarn},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}

	zeroTTL := valid
	zeroTTL.Database.CacheTTL = 0
	if err := zeroTTL.Validate(); err != nil {
		t.Errorf("a zero TTL disables caching and should be valid, got %v", err)
	}

	broken := valid
	broken.Database.Path = "  "
	broken.Database.CacheTTL = -time.Second
	broken.Publish.MaxManifestBytes = 0
	broken.Publish.DefaultFormat = "xml"
	broken.Log.Level = "loud"

	err := broken.Validate()
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() = %v, want *InvalidConfigError", err)
	}
	if len(cfgErr.FieldErrors) != 5 {
		t.Errorf("got %d field errors, want 5: %v", len(cfgErr.FieldErrors), err)
	}
	for _, sentinel := range []error{
		ErrInvalidConfig,
		types.ErrInvalidFilesystemPath,
		ErrInvalidCacheTTL,
		ErrInvalidManifestLimit,
		wire.ErrUnknownFormat,
		ErrInvalidLogLevel,
	} {
		if !errors.Is(err, sentinel) {
			t.Errorf("error should wrap %v", sentinel)
		}
	}
	if !strings.HasPrefix(err.Error(), "invalid config: 5 field error(s)") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestInvalidConfigError_SingleField(t *testing.T) {
	t.Parallel()

	err := &InvalidConfigError{FieldErrors: []error{&InvalidManifestLimitError{Value: -1}}}
	want := "invalid config: invalid manifest size limit -1: must be between 1 and 10485760 bytes"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
