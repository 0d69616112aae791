// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package version

import "fmt"

// PE version resources are only read on Windows.
func fileVersionMS(path string) (uint32, error) {
	return 0, fmt.Errorf("%w: %s", ErrUnavailable, path)
}
