// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/pwalaunch/pwalaunch/internal/browser"
	"github.com/pwalaunch/pwalaunch/internal/diag"
	"github.com/pwalaunch/pwalaunch/internal/issue"
	"github.com/pwalaunch/pwalaunch/internal/osenv"
	"github.com/pwalaunch/pwalaunch/internal/pwaconfig"
	"github.com/pwalaunch/pwalaunch/internal/shell"
	"github.com/pwalaunch/pwalaunch/internal/version"
	"github.com/pwalaunch/pwalaunch/pkg/types"
)

type (
	// Launcher wires the capabilities the launch flow needs. Env, FS,
	// Versions and Shell are required; a nil Sink discards diagnostics.
	Launcher struct {
		Env      osenv.Environment
		FS       afero.Fs
		Versions version.Reader
		Shell    shell.Shell
		Sink     diag.Sink

		// ConfigPath overrides the pwa.json location next to the executable.
		ConfigPath types.FilesystemPath
		// DryRun stops before Launch and reports the command line instead.
		DryRun bool
		// LocatorOptions customize browser discovery.
		LocatorOptions []browser.Option
	}

	// Result describes how a run ended.
	Result struct {
		// State is the state the flow stopped in.
		State State
		// Code is the launcher's process exit code.
		Code types.ExitCode
		// Err explains a non-zero Code; it is an *issue.ActionableError.
		Err error

		Config       *pwaconfig.LaunchConfig
		Aumid        string
		Installation browser.Installation
		Version      version.Decision
		Parameters   Parameters

		// CommandLine is the resolved browser command line.
		CommandLine string
		// ChildExitCode is the browser's exit status, for diagnostics only.
		ChildExitCode int
		// DryRun is set when the browser was not actually started.
		DryRun bool
	}
)

// Run executes the flow once. It blocks until the started browser exits;
// ctx is only consulted between steps, never while waiting on the child.
func (l *Launcher) Run(ctx context.Context) Result {
	sink := l.Sink
	if sink == nil {
		sink = diag.Nop
	}
	res := Result{DryRun: l.DryRun}
	enter := func(s State) {
		res.State = s
		sink.Log("state: " + s.String())
	}

	enter(LoadConfig)
	cfg, err := l.loadConfig(sink)
	if err != nil {
		return l.fail(sink, res, configExitCode(err), err)
	}
	res.Config = cfg

	enter(ResolveIdentity)
	aumid, err := osenv.Aumid(l.Env)
	if err != nil {
		sink.Log(fmt.Sprintf("Package identity unavailable, continuing without AUMID: %v", err))
	} else {
		sink.Log("AUMID: " + aumid)
	}
	res.Aumid = aumid

	if err := ctx.Err(); err != nil {
		return l.fail(sink, res, ExitCanceled, issue.WrapWithOperation(err, "launch app"))
	}

	enter(DiscoverBrowser)
	inst, err := browser.NewLocator(l.FS, l.Env, sink, l.LocatorOptions...).Locate()
	if err != nil {
		sink.Log(fmt.Sprintf("Browser discovery failed: %v", err))
		enter(NotInstalled)
		l.redirect(sink, NotInstalledURL)
		return l.fail(sink, res, ExitNotInstalled, issue.NewErrorContext().
			WithOperation("locate Microsoft Edge").
			WithSuggestion("Install Microsoft Edge from the page that was opened").
			WithIssue(issue.BrowserNotInstalledId).
			Wrap(err).
			BuildError())
	}
	res.Installation = inst

	enter(CheckVersion)
	decision := version.Check(l.Versions, inst.Binary)
	res.Version = decision
	switch decision.Verdict {
	case version.Unknown:
		sink.Log(fmt.Sprintf("Could not read version of %s, continuing: %v", inst.Binary, decision.Err))
	default:
		sink.Log(fmt.Sprintf("Edge major version %d (%s)", decision.Major, decision.Verdict))
	}
	if !decision.Allows() {
		enter(TooOld)
		l.redirect(sink, TooOldURL)
		return l.fail(sink, res, ExitTooOld, issue.NewErrorContext().
			WithOperation("check Microsoft Edge version").
			WithResource(inst.Binary).
			WithSuggestion(fmt.Sprintf("Update Microsoft Edge to version %d or later", version.MinimumMajor)).
			WithIssue(issue.BrowserTooOldId).
			Wrap(fmt.Errorf("major version %d is below %d", decision.Major, version.MinimumMajor)).
			BuildError())
	}

	res.Parameters = BuildParameters(cfg, aumid)
	res.CommandLine = res.Parameters.CommandLine(inst.Binary)

	if err := ctx.Err(); err != nil {
		return l.fail(sink, res, ExitCanceled, issue.WrapWithOperation(err, "launch app"))
	}

	enter(Launch)
	sink.Log("Launching: " + res.CommandLine)
	if l.DryRun {
		sink.Log("Dry run: browser not started")
		enter(Done)
		return res
	}

	proc, err := l.Shell.Start(inst.Binary, res.Parameters, types.FilesystemPath(inst.Binary).Dir().String())
	if err != nil {
		return l.fail(sink, res, ExitLaunchFailed, issue.NewErrorContext().
			WithOperation("start Microsoft Edge").
			WithResource(inst.Binary).
			WithSuggestion("Repair Microsoft Edge from Settings > Apps").
			WithIssue(issue.LaunchFailedId).
			Wrap(err).
			BuildError())
	}

	enter(Await)
	code, err := proc.Wait()
	if err != nil {
		sink.Log(fmt.Sprintf("Waiting for browser failed: %v", err))
	} else {
		sink.Log(fmt.Sprintf("Browser exited with code %d", code))
	}
	res.ChildExitCode = code

	enter(Done)
	res.Code = ExitOK
	return res
}

func (l *Launcher) loadConfig(sink diag.Sink) (*pwaconfig.LaunchConfig, error) {
	path := l.ConfigPath
	if path == "" {
		p, err := pwaconfig.DefaultPath(l.Env)
		if err != nil {
			return nil, &pwaconfig.LoadError{Path: pwaconfig.FileName, Err: fmt.Errorf("locate %s: %w", pwaconfig.FileName, err)}
		}
		path = types.FilesystemPath(p)
	}
	sink.Log("Config file path: " + path.String())

	cfg, err := pwaconfig.Load(l.FS, path.String())
	if err != nil {
		return nil, err
	}
	sink.Log("appid: " + cfg.AppID)
	sink.Log("appurl: " + cfg.AppURL)
	return cfg, nil
}

// redirect opens a fallback URL. Failing to open it does not change the
// outcome of the run.
func (l *Launcher) redirect(sink diag.Sink, url string) {
	if l.DryRun {
		sink.Log("Dry run: would open " + url)
		return
	}
	sink.Log("Opening " + url)
	if err := l.Shell.OpenURL(url); err != nil {
		sink.Log(fmt.Sprintf("Could not open %s: %v", url, err))
	}
}

func (l *Launcher) fail(sink diag.Sink, res Result, code types.ExitCode, err error) Result {
	if !errors.As(err, new(*issue.ActionableError)) {
		err = configError(err)
	}
	outcome := "aborted"
	if res.State.Terminal() {
		outcome = "ended"
	}
	sink.Log(fmt.Sprintf("Launch %s in %s with exit code %s: %v", outcome, res.State, code, err))
	res.Code = code
	res.Err = err
	return res
}

func configExitCode(err error) types.ExitCode {
	if errors.Is(err, pwaconfig.ErrConfigFieldMissing) {
		return ExitConfigFieldMissing
	}
	return ExitConfigLoadFailed
}

func configError(err error) error {
	// Both typed errors already name the file, so no resource is attached.
	ctx := issue.NewErrorContext().WithOperation("load launch configuration")
	var loadErr *pwaconfig.LoadError
	var missingErr *pwaconfig.FieldMissingError
	switch {
	case errors.As(err, &missingErr):
		ctx = ctx.WithSuggestion(fmt.Sprintf("Add the %q key to pwa.json", missingErr.Field)).
			WithIssue(issue.ConfigFieldMissingId)
	case errors.As(err, &loadErr):
		ctx = ctx.WithSuggestion("Reinstall the app or pass --pwa-config").
			WithIssue(issue.ConfigLoadFailedId)
	}
	return ctx.Wrap(err).BuildError()
}
