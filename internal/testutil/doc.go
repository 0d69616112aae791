// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test immediately on error,
// for environment variables (MustSetenv, MustUnsetenv), files (MustWriteFile,
// MustMkdirAll), per-user config directories (SetConfigDir), and cleanup
// (MustClose, DeferClose).
package testutil
