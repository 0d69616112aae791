// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pwalaunch/pwalaunch/internal/browser"
	"github.com/pwalaunch/pwalaunch/internal/issue"
	"github.com/pwalaunch/pwalaunch/internal/launch"
	"github.com/pwalaunch/pwalaunch/internal/version"
)

func newFindCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find",
		Short: "Show which Microsoft Edge installation would be used",
		Long: `Run browser discovery and the version gate without reading pwa.json or
starting anything. Exits with 4 when no installation is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFind(cmd, app, flags)
		},
	}
}

func runFind(cmd *cobra.Command, app *App, flags *rootFlags) error {
	cfg := loadSettings(cmd.Context(), app, flags)
	verbose := flags.verbose || cfg.UI.Verbose

	session := openSession(app, cfg)
	defer func() { _ = session.Close() }()

	inst, err := browser.NewLocator(app.FS, app.Env, session).Locate()
	if err != nil {
		failure := issue.NewErrorContext().
			WithOperation("locate Microsoft Edge").
			WithIssue(issue.BrowserNotInstalledId).
			Wrap(err).
			BuildError()
		renderFailure(app.stderr, failure, verbose)
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: launch.ExitNotInstalled, Err: failure}
	}

	printInstallation(app.stdout, inst, version.Check(app.Versions, inst.Binary))
	return nil
}

func printInstallation(w io.Writer, inst browser.Installation, decision version.Decision) {
	row := func(key, value string) {
		fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(fmt.Sprintf("%-8s", key+":")), value)
	}

	fmt.Fprintln(w, TitleStyle.Render("Microsoft Edge"))
	row("Root", inst.Root)
	row("Binary", inst.Binary)

	major := SubtitleStyle.Render("(unreadable)")
	if decision.Verdict != version.Unknown {
		major = strconv.Itoa(decision.Major)
	}
	row("Version", major)

	switch decision.Verdict {
	case version.Supported:
		row("Launch", SuccessStyle.Render("allowed"))
	case version.Unknown:
		row("Launch", WarningStyle.Render("allowed (version unknown)"))
	default:
		row("Launch", ErrorStyle.Render(fmt.Sprintf("blocked (requires %d or later)", version.MinimumMajor)))
	}
}
