// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package osenv

// Package identity only exists for MSIX/AppX processes on Windows.
func packageFamilyName() (string, error) {
	return "", ErrNoPackageIdentity
}
