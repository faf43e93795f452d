// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/registry/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/registry/config.cue on macOS, %APPDATA%\registry\config.cue
// on Windows), falling back to ./config.cue and then to built-in defaults. Every field can
// be overridden through REGISTRY_* environment variables (REGISTRY_LOG_LEVEL,
// REGISTRY_DATABASE_PATH and so on).
//
// Config files are validated against an embedded CUE schema (config_schema.cue); the
// merged result, environment overrides included, is validated again in Go.
package config
