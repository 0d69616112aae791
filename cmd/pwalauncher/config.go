// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pwalaunch/pwalaunch/internal/config"
	"github.com/pwalaunch/pwalaunch/pkg/types"
)

func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect launcher settings",
		Long: `Inspect launcher settings.

Settings only affect diagnostics and are read from:
  - Windows: %APPDATA%\pwalauncher\config.cue
  - macOS: ~/Library/Application Support/pwalauncher/config.cue
  - Linux: ~/.config/pwalauncher/config.cue

PWALAUNCHER_DIAGNOSTICS_LEVEL, PWALAUNCHER_DIAGNOSTICS_FILE,
PWALAUNCHER_DIAGNOSTICS_EVENT_LOG and PWALAUNCHER_UI_VERBOSE override the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, app, flags)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlags) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: types.FilesystemPath(flags.settings)})
	if err != nil {
		renderFailure(app.stderr, err, flags.verbose)
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: 1, Err: err}
	}

	w := app.stdout
	row := func(key, value string) {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render(key), value)
	}
	unset := SubtitleStyle.Render("(not set)")

	fmt.Fprintln(w, TitleStyle.Render("Current Settings"))
	fmt.Fprintln(w)

	if cfg.Source != "" {
		row("Settings file", cfg.Source.String())
	} else {
		row("Settings file", SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	row("diagnostics.level", SuccessStyle.Render(cfg.Diagnostics.Level.String()))
	if cfg.Diagnostics.File != "" {
		row("diagnostics.file", SuccessStyle.Render(cfg.Diagnostics.File.String()))
	} else {
		row("diagnostics.file", unset)
	}
	row("diagnostics.event_log", SuccessStyle.Render(fmt.Sprint(cfg.Diagnostics.EventLog)))
	row("ui.verbose", SuccessStyle.Render(fmt.Sprint(cfg.UI.Verbose)))

	if flags.verbose {
		fmt.Fprintln(w)
		fmt.Fprint(w, config.GenerateCUE(cfg))
	}
	return nil
}
