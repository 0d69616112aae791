// SPDX-License-Identifier: MPL-2.0

package sideload

import (
	"context"
	"errors"
	"fmt"

	"github.com/pwalaunch/pwalaunch/pkg/types"
)

const (
	// Success is S_OK.
	Success ResultCode = 0
	// EFail (E_FAIL, 0x80004005) is reported when the package manager
	// could not be invoked at all.
	EFail ResultCode = -0x7FFFBFFB
)

// ErrInstallerUnavailable is returned when no package manager front end is found.
var ErrInstallerUnavailable = errors.New("package installer unavailable")

type (
	// ResultCode is the HRESULT returned by the package manager.
	ResultCode int32

	// Options are the deployment options passed to the package manager.
	Options struct {
		// AllowUnsigned installs packages that carry no signature.
		AllowUnsigned bool
		// DeferRegistration defers registration while the package's
		// applications are running instead of failing.
		DeferRegistration bool
	}

	// Installer installs a package from a local path.
	Installer interface {
		Install(ctx context.Context, path types.FilesystemPath, opts Options) (ResultCode, error)
	}
)

// DefaultOptions returns the options the side-loading utility always uses.
func DefaultOptions() Options {
	return Options{AllowUnsigned: true, DeferRegistration: true}
}

// String formats the code as an HRESULT, e.g. 0x80073CF3.
func (c ResultCode) String() string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// ExitCode returns c as a process exit code.
func (c ResultCode) ExitCode() types.ExitCode { return types.ExitCode(c) }

// resultFromExit reinterprets a 32-bit process exit status as an HRESULT.
// Windows reports statuses as unsigned values, so 0x80070002 arrives as
// 2147942402.
func resultFromExit(code int) ResultCode {
	return ResultCode(int32(uint32(code)))
}
