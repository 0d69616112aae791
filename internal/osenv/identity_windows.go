// SPDX-License-Identifier: MPL-2.0

//go:build windows

package osenv

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// appmodelErrorNoPackage is APPMODEL_ERROR_NO_PACKAGE from appmodel.h.
const appmodelErrorNoPackage = syscall.Errno(15700)

var procGetCurrentPackageFamilyName = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetCurrentPackageFamilyName")

func packageFamilyName() (string, error) {
	if err := procGetCurrentPackageFamilyName.Find(); err != nil {
		// Pre-Windows 8 kernels do not export the API at all.
		return "", ErrNoPackageIdentity
	}

	var length uint32
	rc, _, _ := procGetCurrentPackageFamilyName.Call(uintptr(unsafe.Pointer(&length)), 0)
	switch errno := syscall.Errno(rc); errno {
	case windows.ERROR_INSUFFICIENT_BUFFER:
	case appmodelErrorNoPackage:
		return "", ErrNoPackageIdentity
	default:
		return "", fmt.Errorf("GetCurrentPackageFamilyName: %w", errno)
	}

	buf := make([]uint16, length)
	rc, _, _ = procGetCurrentPackageFamilyName.Call(
		uintptr(unsafe.Pointer(&length)),
		uintptr(unsafe.Pointer(&buf[0])),
	)
	if errno := syscall.Errno(rc); errno != windows.ERROR_SUCCESS {
		return "", fmt.Errorf("retrieve package family name: %w", errno)
	}
	return windows.UTF16ToString(buf), nil
}
