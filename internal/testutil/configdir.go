// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pwalaunch/pwalaunch/pkg/platform"
)

// SetConfigDir points os.UserConfigDir at base for the current platform and
// returns the directory os.UserConfigDir will now report, together with a
// cleanup function.
//
//   - Windows: APPDATA
//   - macOS: HOME (config lives under Library/Application Support)
//   - others: XDG_CONFIG_HOME
func SetConfigDir(t testing.TB, base string) (string, func()) {
	t.Helper()

	switch runtime.GOOS {
	case platform.Windows:
		return base, MustSetenv(t, "APPDATA", base)
	case platform.Darwin:
		return filepath.Join(base, "Library", "Application Support"), MustSetenv(t, "HOME", base)
	default:
		return base, MustSetenv(t, "XDG_CONFIG_HOME", base)
	}
}
