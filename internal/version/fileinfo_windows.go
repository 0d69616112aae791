// SPDX-License-Identifier: MPL-2.0

//go:build windows

package version

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// fileVersionMS reads dwFileVersionMS from the root block of the version resource.
func fileVersionMS(path string) (uint32, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: GetFileVersionInfoSize: %w", ErrUnavailable, err)
	}
	if size == 0 {
		return 0, fmt.Errorf("%w: empty version resource", ErrUnavailable)
	}

	block := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&block[0])); err != nil {
		return 0, fmt.Errorf("%w: GetFileVersionInfo: %w", ErrUnavailable, err)
	}

	var fixed *windows.VS_FIXEDFILEINFO
	var fixedLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&block[0]), `\`, unsafe.Pointer(&fixed), &fixedLen); err != nil {
		return 0, fmt.Errorf("%w: VerQueryValue: %w", ErrUnavailable, err)
	}
	if fixed == nil || uintptr(fixedLen) < unsafe.Sizeof(*fixed) {
		return 0, fmt.Errorf("%w: truncated fixed file info", ErrUnavailable)
	}
	return fixed.FileVersionMS, nil
}
