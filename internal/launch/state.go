// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"

	"github.com/pwalaunch/pwalaunch/pkg/types"
)

const (
	// LoadConfig reads and validates pwa.json.
	LoadConfig State = iota
	// ResolveIdentity derives the AUMID from the package family name.
	ResolveIdentity
	// DiscoverBrowser locates the Edge installation root and binary.
	DiscoverBrowser
	// CheckVersion applies the minimum version gate.
	CheckVersion
	// Launch starts the browser.
	Launch
	// Await blocks until the browser exits.
	Await
	// Done is the successful terminal state.
	Done
	// NotInstalled is the terminal state when no browser was found.
	NotInstalled
	// TooOld is the terminal state when the browser failed the version gate.
	TooOld
)

// Process exit codes of the launcher.
const (
	ExitOK                 types.ExitCode = 0
	ExitUsage              types.ExitCode = 1
	ExitConfigLoadFailed   types.ExitCode = 2
	ExitConfigFieldMissing types.ExitCode = 3
	ExitNotInstalled       types.ExitCode = 4
	ExitTooOld             types.ExitCode = 5
	ExitLaunchFailed       types.ExitCode = 6
	// ExitCanceled is returned when the run is interrupted before the
	// browser is started.
	ExitCanceled types.ExitCode = 130
)

// State is a step of the launch flow.
type State int

var stateNames = [...]string{
	LoadConfig:      "LoadConfig",
	ResolveIdentity: "ResolveIdentity",
	DiscoverBrowser: "DiscoverBrowser",
	CheckVersion:    "CheckVersion",
	Launch:          "Launch",
	Await:           "Await",
	Done:            "Done",
	NotInstalled:    "NotInstalled",
	TooOld:          "TooOld",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the flow ends in s.
func (s State) Terminal() bool {
	return s == Done || s == NotInstalled || s == TooOld
}
