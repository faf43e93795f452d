// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for the registry.
//
// This package implements the Cobra command hierarchy: manifest validation,
// download counter lookup and recording, database migration, and
// configuration management. Commands are built from an App so tests can
// swap the configuration source, the store and the output streams.
package cmd
