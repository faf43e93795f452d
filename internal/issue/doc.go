// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. An error may also point at an entry of the issue
// catalog, a Markdown page rendered with glamour when the CLI runs verbosely.
package issue
