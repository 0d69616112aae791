// SPDX-License-Identifier: MPL-2.0

//go:build windows

package diag

import "golang.org/x/sys/windows/svc/eventlog"

// openEventLog registers source with the Application log.
// The source does not have to be installed; Windows then prints a generic
// message template around the text.
func openEventLog(source string) (eventWriter, error) {
	l, err := eventlog.Open(source)
	if err != nil {
		return nil, err
	}
	return l, nil
}
