// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The catalog maps each launcher and side-loading failure
// class to Markdown guidance rendered with glamour in verbose mode.
package issue
