// SPDX-License-Identifier: MPL-2.0

// Package pwaconfig loads the launch configuration (pwa.json) that ships
// next to the launcher executable.
package pwaconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pwalaunch/pwalaunch/internal/osenv"
	"github.com/pwalaunch/pwalaunch/pkg/cueutil"
)

// FileName is the launch configuration file name.
const FileName = "pwa.json"

// MaxFileSize is the largest pwa.json accepted.
const MaxFileSize = 64 << 10

//go:embed pwa_schema.cue
var schema []byte

var (
	// ErrConfigLoad is returned when the file cannot be read or parsed.
	ErrConfigLoad = errors.New("failed to load launch configuration")
	// ErrConfigFieldMissing is returned when appid or appurl is absent.
	ErrConfigFieldMissing = errors.New("launch configuration is missing a required field")
)

type (
	// LaunchConfig is the parsed pwa.json.
	LaunchConfig struct {
		AppID  string `json:"appid"`
		AppURL string `json:"appurl"`
	}

	// LoadError wraps a read, syntax or schema failure.
	LoadError struct {
		Path string
		Err  error
	}

	// FieldMissingError names the required key absent from the file.
	FieldMissingError struct {
		Path  string
		Field string
	}
)

// Error returns the cause only; callers add the operation and path.
func (e *LoadError) Error() string { return e.Err.Error() }

// Unwrap returns both ErrConfigLoad and the underlying cause.
func (e *LoadError) Unwrap() []error { return []error{ErrConfigLoad, e.Err} }

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("%s: %q in %s", ErrConfigFieldMissing, e.Field, e.Path)
}

// Unwrap returns ErrConfigFieldMissing.
func (e *FieldMissingError) Unwrap() error { return ErrConfigFieldMissing }

// DefaultPath returns pwa.json in the launcher executable's directory.
func DefaultPath(env osenv.Environment) (string, error) {
	dir, err := env.ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads and validates the launch configuration at path. A missing key
// yields *FieldMissingError; everything else that goes wrong yields
// *LoadError. Keys other than appid and appurl are ignored.
func Load(fsys afero.Fs, path string) (*LaunchConfig, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	result, err := cueutil.ParseAndDecode[LaunchConfig](
		schema, data, "#PwaConfig",
		cueutil.WithFilename(path),
		cueutil.WithFormat(cueutil.FormatJSON),
		cueutil.WithRequiredFields("appid", "appurl"),
		cueutil.WithMaxFileSize(MaxFileSize),
		cueutil.WithConcrete(true),
	)
	if err != nil {
		var missing *cueutil.MissingFieldError
		if errors.As(err, &missing) {
			return nil, &FieldMissingError{Path: path, Field: missing.Field}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return result.Value, nil
}
