// SPDX-License-Identifier: MPL-2.0

// Package testutil holds fixtures shared by the registry's tests: an isolated
// home directory, file helpers that fail the test on error, and builders for
// release manifests in every supported format.
package testutil
