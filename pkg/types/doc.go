// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the launcher and the
// side-loading tool: exit codes and filesystem paths with validation.
package types
