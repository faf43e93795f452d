// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It holds the runtime.GOOS names used for per-OS directory lookup and the
// check for Windows reserved file names, which the CLI reports as a warning
// for crate names that could not be unpacked into a directory on Windows.
package platform
