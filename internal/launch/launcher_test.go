// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/pwalaunch/pwalaunch/internal/issue"
	"github.com/pwalaunch/pwalaunch/internal/osenv"
	"github.com/pwalaunch/pwalaunch/internal/shell"
	"github.com/pwalaunch/pwalaunch/pkg/types"
)

const testFamily = "Contoso.MyApp_8wekyb3d8bbwe"

var (
	appDir       = filepath.FromSlash("/apps/MyApp")
	programFiles = filepath.FromSlash("/pf")
	edgeDir      = filepath.Join(programFiles, "Microsoft", "Edge", "Application")
	edgeBinary   = filepath.Join(edgeDir, "msedge.exe")
)

type fakeEnv struct {
	vars      map[string]string
	family    string
	familyErr error
}

func (e fakeEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e fakeEnv) PackageFamilyName() (string, error) { return e.family, e.familyErr }
func (fakeEnv) ExecutableDir() (string, error)       { return appDir, nil }

type fakeVersions struct {
	major int
	err   error
	paths []string
}

func (f *fakeVersions) MajorVersion(path string) (int, error) {
	f.paths = append(f.paths, path)
	return f.major, f.err
}

type started struct {
	path string
	args []string
	dir  string
}

type fakeShell struct {
	opened   []string
	started  []started
	startErr error
	exitCode int
	waited   bool
}

func (s *fakeShell) OpenURL(url string) error {
	s.opened = append(s.opened, url)
	return nil
}

func (s *fakeShell) Start(path string, args []string, dir string) (shell.Process, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	s.started = append(s.started, started{path: path, args: args, dir: dir})
	return fakeProcess{shell: s}, nil
}

type fakeProcess struct{ shell *fakeShell }

func (p fakeProcess) Wait() (int, error) {
	p.shell.waited = true
	return p.shell.exitCode, nil
}

type recordingSink struct{ messages []string }

func (r *recordingSink) Log(message string) { r.messages = append(r.messages, message) }

func (r *recordingSink) states() []string {
	var out []string
	for _, m := range r.messages {
		if s, ok := strings.CutPrefix(m, "state: "); ok {
			out = append(out, s)
		}
	}
	return out
}

type fixture struct {
	fs       afero.Fs
	env      fakeEnv
	versions *fakeVersions
	shell    *fakeShell
	sink     *recordingSink
}

func newFixture(t *testing.T, pwaJSON string, withEdge bool, major int) *fixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if pwaJSON != "" {
		if err := afero.WriteFile(fsys, filepath.Join(appDir, "pwa.json"), []byte(pwaJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if withEdge {
		if err := afero.WriteFile(fsys, edgeBinary, []byte("MZ"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return &fixture{
		fs:       fsys,
		env:      fakeEnv{vars: map[string]string{"PROGRAMFILES": programFiles}, family: testFamily},
		versions: &fakeVersions{major: major},
		shell:    &fakeShell{},
		sink:     &recordingSink{},
	}
}

func (f *fixture) launcher() *Launcher {
	return &Launcher{Env: f.env, FS: f.fs, Versions: f.versions, Shell: f.shell, Sink: f.sink}
}

const validConfig = `{"appid":"MyApp","appurl":"https://example.com"}`

func TestRun_LaunchesSupportedBrowser(t *testing.T) {
	t.Parallel()

	f := newFixture(t, validConfig, true, 90)
	f.shell.exitCode = 7

	res := f.launcher().Run(context.Background())
	if res.Code != ExitOK || res.Err != nil {
		t.Fatalf("Run() = code %v err %v, want 0", res.Code, res.Err)
	}
	if res.State != Done {
		t.Errorf("State = %v, want Done", res.State)
	}
	if len(f.shell.started) != 1 {
		t.Fatalf("started %d processes, want 1", len(f.shell.started))
	}
	got := f.shell.started[0]
	if got.path != edgeBinary {
		t.Errorf("started %q, want %q", got.path, edgeBinary)
	}
	if got.dir != edgeDir {
		t.Errorf("working dir = %q, want %q", got.dir, edgeDir)
	}
	want := []string{
		"--windows-store-app",
		"--app-fallback-url=https://example.com",
		"--app-id=MyApp",
		"--ip-aumid=" + testFamily + "!App",
		"--profile-directory=Default",
		"--ip-edge-aumid=Microsoft.MicrosoftEdge.stable_8wekyb3d8bbwe!Edge",
	}
	if !slices.Equal(got.args, want) {
		t.Errorf("args = %q, want %q", got.args, want)
	}
	if !f.shell.waited {
		t.Error("Run() should wait for the browser to exit")
	}
	if res.ChildExitCode != 7 {
		t.Errorf("ChildExitCode = %d, want 7", res.ChildExitCode)
	}
	if len(f.shell.opened) != 0 {
		t.Errorf("opened %v, want no redirect", f.shell.opened)
	}

	wantStates := []string{"LoadConfig", "ResolveIdentity", "DiscoverBrowser", "CheckVersion", "Launch", "Await", "Done"}
	if states := f.sink.states(); !slices.Equal(states, wantStates) {
		t.Errorf("states = %v, want %v", states, wantStates)
	}
}

func TestRun_NoBrowserRedirectsToInstall(t *testing.T) {
	t.Parallel()

	f := newFixture(t, validConfig, false, 90)

	res := f.launcher().Run(context.Background())
	if res.Code != ExitNotInstalled {
		t.Errorf("Code = %v, want %v", res.Code, ExitNotInstalled)
	}
	if res.State != NotInstalled {
		t.Errorf("State = %v, want NotInstalled", res.State)
	}
	if !slices.Equal(f.shell.opened, []string{NotInstalledURL}) {
		t.Errorf("opened %v, want [%s]", f.shell.opened, NotInstalledURL)
	}
	if len(f.shell.started) != 0 {
		t.Error("browser must not be started")
	}
	if len(f.versions.paths) != 0 {
		t.Error("version gate must not run without a browser")
	}
	assertIssue(t, res.Err, issue.BrowserNotInstalledId)
}

func TestRun_RootWithoutBinaryIsNotInstalled(t *testing.T) {
	t.Parallel()

	f := newFixture(t, validConfig, false, 90)
	if err := f.fs.MkdirAll(edgeDir, 0o755); err != nil {
		t.Fatal(err)
	}

	res := f.launcher().Run(context.Background())
	if res.Code != ExitNotInstalled {
		t.Errorf("Code = %v, want %v", res.Code, ExitNotInstalled)
	}
	if res.Installation.Root != "" {
		t.Errorf("Installation = %+v, want zero value", res.Installation)
	}
}

func TestRun_VersionGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		major      int
		err        error
		wantCode   int
		wantState  State
		wantOpened []string
		wantStart  bool
	}{
		{name: "87 is too old", major: 87, wantCode: 5, wantState: TooOld, wantOpened: []string{TooOldURL}},
		{name: "88 is supported", major: 88, wantCode: 0, wantState: Done, wantStart: true},
		{name: "unreadable fails open", major: -1, err: errors.New("no resource"), wantCode: 0, wantState: Done, wantStart: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, validConfig, true, tt.major)
			f.versions.err = tt.err

			res := f.launcher().Run(context.Background())
			if int(res.Code) != tt.wantCode {
				t.Errorf("Code = %v, want %d", res.Code, tt.wantCode)
			}
			if res.State != tt.wantState {
				t.Errorf("State = %v, want %v", res.State, tt.wantState)
			}
			if !slices.Equal(f.shell.opened, tt.wantOpened) {
				t.Errorf("opened %v, want %v", f.shell.opened, tt.wantOpened)
			}
			if (len(f.shell.started) == 1) != tt.wantStart {
				t.Errorf("started = %v, want start %v", f.shell.started, tt.wantStart)
			}
			if !slices.Equal(f.versions.paths, []string{edgeBinary}) {
				t.Errorf("version read for %v, want %s", f.versions.paths, edgeBinary)
			}
		})
	}
}

func TestRun_ConfigFailuresStopBeforeDiscovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pwaJSON   string
		wantCode  int
		wantIssue issue.Id
	}{
		{name: "missing appurl", pwaJSON: `{"appid":"MyApp"}`, wantCode: 3, wantIssue: issue.ConfigFieldMissingId},
		{name: "missing appid", pwaJSON: `{"appurl":"https://example.com"}`, wantCode: 3, wantIssue: issue.ConfigFieldMissingId},
		{name: "malformed", pwaJSON: `{"appid":`, wantCode: 2, wantIssue: issue.ConfigLoadFailedId},
		{name: "file absent", pwaJSON: "", wantCode: 2, wantIssue: issue.ConfigLoadFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.pwaJSON, true, 90)

			res := f.launcher().Run(context.Background())
			if int(res.Code) != tt.wantCode {
				t.Errorf("Code = %v, want %d", res.Code, tt.wantCode)
			}
			if res.State != LoadConfig {
				t.Errorf("State = %v, want LoadConfig", res.State)
			}
			if len(f.shell.started)+len(f.shell.opened) != 0 || len(f.versions.paths) != 0 {
				t.Error("nothing past LoadConfig may run")
			}
			if states := f.sink.states(); !slices.Equal(states, []string{"LoadConfig"}) {
				t.Errorf("states = %v, want [LoadConfig]", states)
			}
			assertIssue(t, res.Err, tt.wantIssue)

			msg := res.Err.Error()
			if n := strings.Count(msg, "failed to load launch configuration"); n != 1 {
				t.Errorf("operation appears %d times in %q, want 1", n, msg)
			}
			if n := strings.Count(msg, "pwa.json"); n != 1 {
				t.Errorf("file name appears %d times in %q, want 1", n, msg)
			}
		})
	}
}

func TestRun_EmptyValuesAreAccepted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pwaJSON string
		wantArg string
	}{
		{name: "empty appid", pwaJSON: `{"appid":"","appurl":"https://example.com"}`, wantArg: "--app-id="},
		{name: "empty appurl", pwaJSON: `{"appid":"MyApp","appurl":""}`, wantArg: "--app-fallback-url="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.pwaJSON, true, 90)
			res := f.launcher().Run(context.Background())
			if res.Code != ExitOK {
				t.Fatalf("Code = %v, want %v (err: %v)", res.Code, ExitOK, res.Err)
			}
			if len(f.shell.started) != 1 {
				t.Fatalf("started = %d, want 1", len(f.shell.started))
			}
			if !slices.Contains(f.shell.started[0].args, tt.wantArg) {
				t.Errorf("args = %v, want %q", f.shell.started[0].args, tt.wantArg)
			}
		})
	}
}

func TestRun_SpawnFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, validConfig, true, 120)
	f.shell.startErr = errors.New("access denied")

	res := f.launcher().Run(context.Background())
	if res.Code != ExitLaunchFailed {
		t.Errorf("Code = %v, want %v", res.Code, ExitLaunchFailed)
	}
	if res.State != Launch {
		t.Errorf("State = %v, want Launch", res.State)
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), "access denied") {
		t.Errorf("Err = %v, want cause", res.Err)
	}
	assertIssue(t, res.Err, issue.LaunchFailedId)
}

func TestRun_MissingIdentityDegradesToEmptyAumid(t *testing.T) {
	t.Parallel()

	f := newFixture(t, validConfig, true, 100)
	f.env.familyErr = osenv.ErrNoPackageIdentity
	f.env.family = ""

	res := f.launcher().Run(context.Background())
	if res.Code != ExitOK {
		t.Fatalf("Code = %v, want 0", res.Code)
	}
	if res.Aumid != "" {
		t.Errorf("Aumid = %q, want empty", res.Aumid)
	}
	if !slices.Contains(f.shell.started[0].args, "--ip-aumid=") {
		t.Errorf("args = %q, want empty --ip-aumid", f.shell.started[0].args)
	}
}

func TestRun_ConfigPathOverride(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "", true, 100)
	custom := filepath.FromSlash("/tmp/custom.json")
	if err := afero.WriteFile(f.fs, custom, []byte(validConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	l := f.launcher()
	l.ConfigPath = types.FilesystemPath(custom)
	res := l.Run(context.Background())
	if res.Code != ExitOK {
		t.Fatalf("Code = %v err %v, want 0", res.Code, res.Err)
	}
	if res.Config.AppID != "MyApp" {
		t.Errorf("Config = %+v", res.Config)
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	t.Run("reports command line without starting", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, validConfig, true, 100)
		l := f.launcher()
		l.DryRun = true

		res := l.Run(context.Background())
		if res.Code != ExitOK || res.State != Done || !res.DryRun {
			t.Fatalf("Run() = %+v", res)
		}
		if len(f.shell.started) != 0 {
			t.Error("dry run must not start the browser")
		}
		if !strings.HasSuffix(res.CommandLine, "--ip-edge-aumid="+EdgeAumid) {
			t.Errorf("CommandLine = %q", res.CommandLine)
		}
	})

	t.Run("does not open fallback URL", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, validConfig, false, 100)
		l := f.launcher()
		l.DryRun = true

		res := l.Run(context.Background())
		if res.Code != ExitNotInstalled {
			t.Errorf("Code = %v, want %v", res.Code, ExitNotInstalled)
		}
		if len(f.shell.opened) != 0 {
			t.Errorf("dry run opened %v", f.shell.opened)
		}
	})
}

func TestRun_CanceledBeforeLaunch(t *testing.T) {
	t.Parallel()

	f := newFixture(t, validConfig, true, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.launcher().Run(ctx)
	if res.Code != ExitCanceled {
		t.Errorf("Code = %v, want %v", res.Code, ExitCanceled)
	}
	if res.State.Terminal() {
		t.Errorf("State = %v, want a non-terminal state", res.State)
	}
	if !slices.ContainsFunc(f.sink.messages, func(m string) bool {
		return strings.HasPrefix(m, "Launch aborted in ResolveIdentity with exit code 130")
	}) {
		t.Errorf("diagnostics should record the abort:\n%s", strings.Join(f.sink.messages, "\n"))
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
	if len(f.shell.started) != 0 {
		t.Error("canceled run must not start the browser")
	}
}

func assertIssue(t *testing.T, err error, want issue.Id) {
	t.Helper()
	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error %v (%T) is not an *issue.ActionableError", err, err)
	}
	if actionable.IssueID != want {
		t.Errorf("IssueID = %v, want %v", actionable.IssueID, want)
	}
}
