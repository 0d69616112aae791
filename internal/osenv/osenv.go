// SPDX-License-Identifier: MPL-2.0

// Package osenv answers the questions the launcher asks the operating
// system: environment variables, the package identity of the running
// process and where the launcher executable lives.
package osenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoPackageIdentity is returned when the process was not started from a
// packaged (MSIX/AppX) context.
var ErrNoPackageIdentity = errors.New("process has no package identity")

// AumidSuffix turns a package family name into the application user model ID
// of the package's single "App" entry.
const AumidSuffix = "!App"

type (
	// Environment is the OS environment query capability.
	Environment interface {
		// LookupEnv returns the value of an environment variable.
		LookupEnv(key string) (string, bool)
		// PackageFamilyName returns the package family name of the current process.
		PackageFamilyName() (string, error)
		// ExecutableDir returns the directory containing the running executable.
		ExecutableDir() (string, error)
	}

	// System is the Environment backed by the real operating system.
	System struct{}
)

// LookupEnv implements Environment.
func (System) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// PackageFamilyName implements Environment.
func (System) PackageFamilyName() (string, error) { return packageFamilyName() }

// ExecutableDir implements Environment.
func (System) ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Aumid derives the application user model ID from env. Failures degrade to
// an empty string together with the error that explains why.
func Aumid(env Environment) (string, error) {
	family, err := env.PackageFamilyName()
	if err != nil {
		return "", err
	}
	if family == "" {
		return "", ErrNoPackageIdentity
	}
	return family + AumidSuffix, nil
}
