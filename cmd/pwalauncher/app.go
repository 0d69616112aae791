// SPDX-License-Identifier: MPL-2.0

package main

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/pwalaunch/pwalaunch/internal/config"
	"github.com/pwalaunch/pwalaunch/internal/diag"
	"github.com/pwalaunch/pwalaunch/internal/osenv"
	"github.com/pwalaunch/pwalaunch/internal/shell"
	"github.com/pwalaunch/pwalaunch/internal/version"
)

type (
	// App wires the launcher's capabilities. Every command handler receives
	// it instead of reaching for the OS directly.
	App struct {
		Config   config.Provider
		Env      osenv.Environment
		FS       afero.Fs
		Versions version.Reader
		Shell    shell.Shell
		// OpenDiag acquires the diagnostic session for one run.
		OpenDiag func(diag.Options) (*diag.Session, error)
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies are the injection points for NewApp. Nil fields are
	// replaced with production defaults.
	Dependencies struct {
		Config   config.Provider
		Env      osenv.Environment
		FS       afero.Fs
		Versions version.Reader
		Shell    shell.Shell
		OpenDiag func(diag.Options) (*diag.Session, error)
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp builds an App, filling unset dependencies with the real OS.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:   deps.Config,
		Env:      deps.Env,
		FS:       deps.FS,
		Versions: deps.Versions,
		Shell:    deps.Shell,
		OpenDiag: deps.OpenDiag,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Env == nil {
		app.Env = osenv.System{}
	}
	if app.FS == nil {
		app.FS = afero.NewOsFs()
	}
	if app.Versions == nil {
		app.Versions = version.FileInfoReader{}
	}
	if app.Shell == nil {
		app.Shell = shell.System{}
	}
	if app.OpenDiag == nil {
		app.OpenDiag = diag.Open
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}
