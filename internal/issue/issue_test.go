// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func stubRender(t *testing.T) {
	t.Helper()
	originalRender := render
	t.Cleanup(func() { render = originalRender })
	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}
}

func TestId_Constants(t *testing.T) {
	ids := []Id{
		ConfigLoadFailedId,
		ConfigFieldMissingId,
		BrowserNotInstalledId,
		BrowserTooOldId,
		LaunchFailedId,
		InstallerUsageId,
		PackageInstallFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id      Id
		wantNil bool
	}{
		{ConfigLoadFailedId, false},
		{BrowserNotInstalledId, false},
		{BrowserTooOldId, false},
		{PackageInstallFailedId, false},
		{Id(0), true},
		{Id(999), true},
	}

	for _, tt := range tests {
		got := Get(tt.id)
		if (got == nil) != tt.wantNil {
			t.Errorf("Get(%d) nil = %v, want %v", tt.id, got == nil, tt.wantNil)
		}
		if got != nil && got.Id() != tt.id {
			t.Errorf("Get(%d).Id() = %d", tt.id, got.Id())
		}
	}
}

func TestValues_OrderedByID(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered: %d before %d", values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	issue := Get(BrowserNotInstalledId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("BrowserNotInstalled issue should carry the download link")
	}
	links[0] = "mutated"
	if issue.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() returned the internal slice")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	stubRender(t)

	rendered, err := Get(BrowserTooOldId).Render("")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("rendered output should include the See also section")
	}
	if !strings.Contains(rendered, "linkid=2158139") {
		t.Error("rendered output should include the update link")
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	stubRender(t)

	rendered, err := Get(LaunchFailedId).Render("")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("issue without links should not render a See also section")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(BrowserTooOldId).Markdown()
	msg := string(Get(BrowserTooOldId).MarkdownMsg())
	if !strings.HasPrefix(md, msg) {
		t.Error("Markdown() should start with the remediation text")
	}
	if !strings.Contains(md, "\n- <https://go.microsoft.com/fwlink/?linkid=2158139>") {
		t.Errorf("Markdown() missing link list:\n%s", md)
	}

	if plain := Get(LaunchFailedId).Markdown(); strings.Contains(plain, "See also") {
		t.Error("issue without links should not list any")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	stubRender(t)

	for _, issue := range Values() {
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("Issue %d has empty markdown", issue.Id())
		}
		rendered, err := issue.Render("")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
