// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pwalaunch/pwalaunch/pkg/types"
)

const (
	// LevelDebug logs every state transition detail.
	LevelDebug LogLevel = "debug"
	// LevelInfo is the default level.
	LevelInfo LogLevel = "info"
	// LevelWarn logs only degraded outcomes and failures.
	LevelWarn LogLevel = "warn"
	// LevelError logs failures only.
	LevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")

	validLevels = []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}
)

type (
	// LogLevel is the minimum diagnostic level.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// Config holds the launcher settings.
	Config struct {
		Diagnostics DiagnosticsConfig `json:"diagnostics" mapstructure:"diagnostics"`
		UI          UIConfig          `json:"ui" mapstructure:"ui"`

		// Source is the settings file that was loaded, empty when only
		// defaults and environment overrides apply.
		Source types.FilesystemPath `json:"-" mapstructure:"-"`
	}

	// DiagnosticsConfig configures the diagnostic session.
	DiagnosticsConfig struct {
		Level    LogLevel             `json:"level" mapstructure:"level"`
		File     types.FilesystemPath `json:"file" mapstructure:"file"`
		EventLog bool                 `json:"event_log" mapstructure:"event_log"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidLoadOptionsError collects every invalid LoadOptions field.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Diagnostics: DiagnosticsConfig{
			Level: LevelInfo,
		},
	}
}

// String returns the level name.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the level is not one of the known names.
func (l LogLevel) Validate() error {
	if slices.Contains(validLevels, LogLevel(strings.ToLower(string(l)))) {
		return nil
	}
	return &InvalidLogLevelError{Value: l}
}

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate checks the decoded settings for values CUE cannot see, such as
// environment overrides.
func (c *Config) Validate() error {
	return c.Diagnostics.Level.Validate()
}

func (e *InvalidLoadOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("%s: %v", ErrInvalidLoadOptions, e.FieldErrors[0])
	}
	return fmt.Sprintf("%s: %d field errors", ErrInvalidLoadOptions, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }
