// SPDX-License-Identifier: MPL-2.0

package sideload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pwalaunch/pwalaunch/pkg/types"
)

// PowerShellInstaller drives Add-AppxPackage through PowerShell.
type PowerShellInstaller struct {
	// Shell is the PowerShell executable. Empty means powershell, then pwsh,
	// from PATH.
	Shell string
	// Stdout and Stderr receive PowerShell's output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Install implements Installer. A non-zero ResultCode with a nil error means
// the package manager ran and rejected the package.
func (p *PowerShellInstaller) Install(ctx context.Context, path types.FilesystemPath, opts Options) (ResultCode, error) {
	if err := path.Validate(); err != nil {
		return EFail, err
	}

	shell, err := p.shell()
	if err != nil {
		return EFail, err
	}

	cmd := exec.CommandContext(ctx, shell, "-NoProfile", "-NonInteractive", "-Command", Script(path, opts))
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return resultFromExit(exitErr.ExitCode()), nil
		}
		return EFail, fmt.Errorf("failed to run %s: %w", shell, err)
	}
	return Success, nil
}

func (p *PowerShellInstaller) shell() (string, error) {
	if p.Shell != "" {
		return p.Shell, nil
	}
	return lookupShell(exec.LookPath)
}

// shellCandidates lists the PowerShell executables in preference order.
// Windows PowerShell loads Appx natively; pwsh only reaches it through a
// compatibility session.
var shellCandidates = []string{"powershell", "pwsh"}

func lookupShell(lookPath func(string) (string, error)) (string, error) {
	for _, name := range shellCandidates {
		if found, err := lookPath(name); err == nil {
			return found, nil
		}
	}
	return "", fmt.Errorf("%w: neither powershell nor pwsh is on PATH", ErrInstallerUnavailable)
}

// Script returns the PowerShell program that installs path. The thrown
// exception's HResult becomes the process exit status.
func Script(path types.FilesystemPath, opts Options) string {
	var flags []string
	if opts.AllowUnsigned {
		flags = append(flags, "-AllowUnsigned")
	}
	if opts.DeferRegistration {
		flags = append(flags, "-DeferRegistrationWhenPackagesAreInUse")
	}

	var sb strings.Builder
	sb.WriteString("$ErrorActionPreference = 'Stop'\n")
	// PowerShell 7 loads the Appx module through the Windows PowerShell compatibility layer.
	sb.WriteString("if ($PSVersionTable.PSEdition -eq 'Core') { Import-Module Appx -UseWindowsPowerShell -WarningAction SilentlyContinue }\n")
	sb.WriteString("try {\n")
	fmt.Fprintf(&sb, "\tAdd-AppxPackage -Path %s", quote(path.String()))
	for _, f := range flags {
		sb.WriteString(" " + f)
	}
	sb.WriteString("\n\texit 0\n")
	sb.WriteString("} catch {\n")
	sb.WriteString("\t$ex = $_.Exception\n")
	// Errors from the compatibility session arrive wrapped; the package
	// manager's HRESULT is on the serialized inner exception.
	sb.WriteString("\tif ($ex.SerializedRemoteException) { $ex = $ex.SerializedRemoteException }\n")
	sb.WriteString("\t[Console]::Error.WriteLine($ex.Message)\n")
	sb.WriteString("\texit $ex.HResult\n")
	sb.WriteString("}\n")
	return sb.String()
}

// quote returns s as a single-quoted PowerShell literal. PowerShell also
// treats the typographic single quotes as delimiters, so they are doubled too.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\u2018', '\u2019', '\u201A', '\u201B':
			b.WriteRune(r)
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}
