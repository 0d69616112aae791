// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ConfigFieldMissingId
	BrowserNotInstalledId
	BrowserTooOldId
	LaunchFailedId
	InstallerUsageId
	PackageInstallFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the failure class
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the remediation text followed by a "See also" list of
// the issue's links.
func (i *Issue) Markdown() string {
	var md strings.Builder
	md.WriteString(string(i.MarkdownMsg()))
	links := slices.Concat(i.DocLinks(), i.ExtLinks())
	if len(links) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range links {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return md.String()
}

// Render returns the issue as terminal-formatted markdown.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Could not read pwa.json

The launcher reads ` + "`pwa.json`" + ` from the folder that contains the
launcher executable. The file is missing, unreadable or not valid JSON.

## Things you can try:
- Reinstall the app from the Store to restore the packaged files
- When testing a local build, point the launcher at a file explicitly:
~~~
> pwalauncher --pwa-config C:\path\to\pwa.json
~~~

## Expected shape:
~~~json
{
  "appid": "MyApp",
  "appurl": "https://example.com"
}
~~~`,
	}

	configFieldMissingIssue = &Issue{
		id: ConfigFieldMissingId,
		mdMsg: `
# pwa.json is incomplete

Both ` + "`appid`" + ` and ` + "`appurl`" + ` must be present. The launcher stops
before looking for a browser so nothing is started with a partial identity.

## Things you can try:
- Regenerate the package so the launcher configuration is written again
- Add the missing key by hand when testing a local build`,
	}

	browserNotInstalledIssue = &Issue{
		id: BrowserNotInstalledId,
		mdMsg: `
# Microsoft Edge was not found

The app runs inside Microsoft Edge. None of the standard install locations
contain an Edge Stable installation with ` + "`msedge.exe`" + `.

## Locations searched (in order):
1. %PROGRAMFILES%\Microsoft\Edge\Application
2. %PROGRAMFILES(X86)%\Microsoft\Edge\Application
3. %PROGRAMW6432%\Microsoft\Edge\Application
4. %LOCALAPPDATA%\Microsoft\Edge\Application

The download page has been opened in your default browser.`,
		extLinks: []HttpLink{"https://go.microsoft.com/fwlink/?linkid=2152620"},
	}

	browserTooOldIssue = &Issue{
		id: BrowserTooOldId,
		mdMsg: `
# Microsoft Edge is too old

Store PWAs need Microsoft Edge 88 or later. The update page has been opened
in your default browser.

## Things you can try:
- Open ` + "`edge://settings/help`" + ` to trigger an update
- Ask your administrator whether updates are held back by policy`,
		extLinks: []HttpLink{"https://go.microsoft.com/fwlink/?linkid=2158139"},
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Microsoft Edge could not be started

Edge was found but the operating system refused to start it.

## Things you can try:
- Start Edge once by hand to finish any pending update
- Run the launcher with ` + "`--verbose`" + ` and check the diagnostic log`,
	}

	installerUsageIssue = &Issue{
		id: InstallerUsageId,
		mdMsg: `
# Wrong number of arguments

` + "`appxsideload`" + ` installs exactly one package per run.

~~~
> appxsideload C:\path\to\app.msix
~~~`,
	}

	packageInstallFailedIssue = &Issue{
		id: PackageInstallFailedId,
		mdMsg: `
# The package could not be installed

The result code printed above comes straight from the Windows package
manager.

## Things you can try:
- Enable Developer Mode so unsigned packages can be side-loaded
- Close running instances of the app and retry
- Look the code up with:
~~~
> Get-AppPackageLog -ActivityID <id>
~~~`,
		docLinks: []HttpLink{"https://learn.microsoft.com/windows/win32/appxpkg/troubleshooting"},
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		configFieldMissingIssue.Id():   configFieldMissingIssue,
		browserNotInstalledIssue.Id():  browserNotInstalledIssue,
		browserTooOldIssue.Id():        browserTooOldIssue,
		launchFailedIssue.Id():         launchFailedIssue,
		installerUsageIssue.Id():       installerUsageIssue,
		packageInstallFailedIssue.Id(): packageInstallFailedIssue,
	}
)

// Values returns every catalog entry ordered by ID.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
