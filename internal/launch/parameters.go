// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"strings"

	"github.com/pwalaunch/pwalaunch/internal/pwaconfig"
)

const (
	// NotInstalledURL is opened when no Edge installation is found.
	NotInstalledURL = "microsoft-edge:https://go.microsoft.com/fwlink/?linkid=2152620"
	// TooOldURL is opened when Edge is older than the minimum version.
	TooOldURL = "microsoft-edge:https://go.microsoft.com/fwlink/?linkid=2158139"

	// EdgeAumid identifies Edge Stable to the Store app host.
	EdgeAumid = "Microsoft.MicrosoftEdge.stable_8wekyb3d8bbwe!Edge"
	// ProfileDirectory is the browser profile the app opens in.
	ProfileDirectory = "Default"
)

// Parameters is the ordered browser argument list.
type Parameters []string

// BuildParameters returns the flags that start the installed web app.
// aumid may be empty when the package identity could not be resolved.
func BuildParameters(cfg *pwaconfig.LaunchConfig, aumid string) Parameters {
	return Parameters{
		"--windows-store-app",
		"--app-fallback-url=" + cfg.AppURL,
		"--app-id=" + cfg.AppID,
		"--ip-aumid=" + aumid,
		"--profile-directory=" + ProfileDirectory,
		"--ip-edge-aumid=" + EdgeAumid,
	}
}

// String returns the space-joined argument list.
func (p Parameters) String() string { return strings.Join(p, " ") }

// CommandLine prefixes the arguments with the binary path, quoting it when
// it contains spaces.
func (p Parameters) CommandLine(binary string) string {
	if strings.ContainsAny(binary, " \t") {
		binary = `"` + binary + `"`
	}
	if len(p) == 0 {
		return binary
	}
	return binary + " " + p.String()
}
