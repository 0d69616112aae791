// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package diag

import "errors"

func openEventLog(string) (eventWriter, error) {
	return nil, errors.New("event log is only available on Windows")
}
