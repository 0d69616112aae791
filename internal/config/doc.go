// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher's diagnostic settings using Viper with
// CUE as the file format.
//
// Settings are read from config.cue in the per-user configuration directory
// (%APPDATA%\pwalauncher on Windows, ~/Library/Application Support/pwalauncher
// on macOS, $XDG_CONFIG_HOME/pwalauncher elsewhere) or from an explicit path,
// validated against the embedded config_schema.cue, and may be overridden by
// PWALAUNCHER_* environment variables. They only affect diagnostics: the
// launch flow itself has no tunables.
package config
