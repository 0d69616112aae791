// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/pwalaunch/pwalaunch/internal/config"
	"github.com/pwalaunch/pwalaunch/internal/diag"
	"github.com/pwalaunch/pwalaunch/internal/launch"
	"github.com/pwalaunch/pwalaunch/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	pwaConfig string
	settings  string
	verbose   bool
	dryRun    bool
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// execute runs the command tree and converts the outcome to a process exit code.
func execute(ctx context.Context, app *App, args []string) types.ExitCode {
	root := newRootCommand(app)
	root.SetArgs(args)
	if err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return launch.ExitUsage
	}
	return launch.ExitOK
}

func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "pwalauncher",
		Short: "Start a Store-packaged web app in Microsoft Edge",
		Long: TitleStyle.Render("pwalauncher") + SubtitleStyle.Render(" - Store PWA launcher") + `

Reads pwa.json next to the executable, finds Microsoft Edge and starts it
with the flags that open the installed web app. If Edge is missing or older
than version 88, the matching download page is opened instead.

` + SubtitleStyle.Render("Exit codes:") + `
  0    browser started and exited
  1    invalid command line
  2    pwa.json could not be read or parsed
  3    pwa.json is missing appid or appurl
  4    Microsoft Edge not found
  5    Microsoft Edge too old
  6    Microsoft Edge could not be started
  130  interrupted before Microsoft Edge was started`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLaunch(cmd, app, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.pwaConfig, "pwa-config", "", "launch configuration (default: pwa.json next to the executable)")
	root.PersistentFlags().StringVar(&flags.settings, "settings", "", "settings file (default: config.cue in the user config directory)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "show remediation help for failures")
	root.Flags().BoolVar(&flags.dryRun, "dry-run", false, "resolve everything but print the command line instead of starting the browser")

	root.AddCommand(newFindCommand(app, flags))
	root.AddCommand(newConfigCommand(app, flags))

	return root
}

func runLaunch(cmd *cobra.Command, app *App, flags *rootFlags) error {
	ctx := cmd.Context()
	cfg := loadSettings(ctx, app, flags)
	verbose := flags.verbose || cfg.UI.Verbose

	session := openSession(app, cfg)
	defer func() { _ = session.Close() }()

	launcher := &launch.Launcher{
		Env:        app.Env,
		FS:         app.FS,
		Versions:   app.Versions,
		Shell:      app.Shell,
		Sink:       session,
		ConfigPath: types.FilesystemPath(flags.pwaConfig),
		DryRun:     flags.dryRun,
	}
	res := launcher.Run(ctx)
	session.Logger().Debug("run finished", "state", res.State, "code", res.Code, "child", res.ChildExitCode)

	if res.DryRun && res.CommandLine != "" {
		fmt.Fprintln(app.stdout, res.CommandLine)
	}

	if res.Code.IsSuccess() {
		return nil
	}

	renderFailure(app.stderr, res.Err, verbose)
	if verbose {
		// Matches the run field on every diagnostic record of this session.
		fmt.Fprintln(app.stderr, KeyStyle.Render("Run ID: ")+session.RunID())
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: res.Code, Err: res.Err}
}

// loadSettings never fails the run: settings only shape diagnostics, so a
// broken settings file is reported and defaults are used.
func loadSettings(ctx context.Context, app *App, flags *rootFlags) *config.Config {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(flags.settings)})
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		return config.DefaultConfig()
	}
	return cfg
}

// openSession opens the diagnostic session described by cfg, falling back to
// a console-only session when the log file or level is unusable.
func openSession(app *App, cfg *config.Config) *diag.Session {
	opts := diag.Options{
		Prefix:   "pwalauncher",
		Level:    cfg.Diagnostics.Level.String(),
		Writer:   app.stderr,
		FilePath: cfg.Diagnostics.File.String(),
		EventLog: cfg.Diagnostics.EventLog,
		Source:   diag.DefaultEventSource,
	}
	session, err := app.OpenDiag(opts)
	if err == nil {
		return session
	}

	fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+err.Error())
	// Console-only options with the default level cannot fail.
	session, _ = diag.Open(diag.Options{Prefix: opts.Prefix, Writer: app.stderr})
	return session
}
