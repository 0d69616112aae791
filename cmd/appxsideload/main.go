// SPDX-License-Identifier: MPL-2.0

// Command appxsideload installs an application package through the platform
// package manager and exits with the manager's result code.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pwalaunch/pwalaunch/internal/issue"
	"github.com/pwalaunch/pwalaunch/internal/sideload"
	"github.com/pwalaunch/pwalaunch/pkg/types"
)

// ExitUsage is returned when the command line is not exactly one package path.
const ExitUsage types.ExitCode = -1

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"

	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

func main() {
	os.Exit(int(execute(context.Background(), &sideload.PowerShellInstaller{Stdout: os.Stdout, Stderr: os.Stderr}, os.Args[1:])))
}

func execute(ctx context.Context, installer sideload.Installer, args []string) types.ExitCode {
	root := newRootCommand(installer, os.Stdout, os.Stderr)
	root.SetArgs(args)
	if err := fang.Execute(ctx, root, fang.WithVersion(Version)); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return ExitUsage
	}
	return 0
}

func newRootCommand(installer sideload.Installer, stdout, stderr io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "appxsideload <package-path>",
		Short: "Install an MSIX/AppX package, allowing unsigned packages",
		Long: `Install an MSIX/AppX package with Add-AppxPackage, allowing unsigned
packages and deferring registration while the app is running.

The exit code is the package manager's HRESULT (0 on success), or -1 when
the command line is not exactly one package path.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return nil
			}
			fmt.Fprintln(stderr, cmd.UsageString())
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			failure := issue.NewErrorContext().
				WithOperation("parse command line").
				WithSuggestion("Pass exactly one package path, quoted if it contains spaces").
				WithIssue(issue.InstallerUsageId).
				Wrap(fmt.Errorf("expected 1 package path, got %d arguments", len(args))).
				BuildError()
			if verbose {
				renderIssue(stderr, failure)
			}
			return &ExitError{Code: ExitUsage, Err: failure}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, installer, types.FilesystemPath(args[0]), stdout, stderr, verbose)
		},
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "show remediation help for failures")
	return root
}

func runInstall(cmd *cobra.Command, installer sideload.Installer, path types.FilesystemPath, stdout, stderr io.Writer, verbose bool) error {
	code, err := installer.Install(cmd.Context(), path, sideload.DefaultOptions())
	if err == nil && code == sideload.Success {
		fmt.Fprintln(stdout, successStyle.Render("Installed ")+path.String())
		return nil
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	ctx := issue.NewErrorContext().
		WithOperation("install package").
		WithResource(path.String()).
		WithSuggestion("Enable Developer Mode to install unsigned packages").
		WithSuggestion("Close running instances of the app and retry").
		WithIssue(issue.PackageInstallFailedId)
	if err != nil {
		ctx = ctx.Wrap(err)
	} else {
		ctx = ctx.Wrap(fmt.Errorf("package manager returned %s", code))
	}
	failure := ctx.Build()

	fmt.Fprintln(stderr, errorStyle.Render("Error: ")+failure.Format(verbose))
	if verbose {
		renderIssue(stderr, failure)
	}
	return &ExitError{Code: code.ExitCode(), Err: failure}
}

// renderIssue writes the remediation page linked to err, if any.
func renderIssue(w io.Writer, err error) {
	entry := issue.For(err)
	if entry == nil {
		return
	}
	rendered, rerr := entry.Render("dark")
	if rerr != nil {
		fmt.Fprintln(w, entry.Markdown())
		return
	}
	fmt.Fprint(w, rendered)
}
