// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the registry
// packages and the CLI: process exit codes, filesystem paths, and the
// timestamp rendering used by every external record.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types
