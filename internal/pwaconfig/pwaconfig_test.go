// SPDX-License-Identifier: MPL-2.0

package pwaconfig

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const testPath = "/apps/MyApp/pwa.json"

func memFile(t *testing.T, content string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, testPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return fsys
}

func TestLoad_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    LaunchConfig
	}{
		{
			name:    "both keys",
			content: `{"appid":"MyApp","appurl":"https://example.com"}`,
			want:    LaunchConfig{AppID: "MyApp", AppURL: "https://example.com"},
		},
		{
			name:    "unknown keys ignored",
			content: `{"appid":"MyApp","appurl":"https://example.com","theme":"dark","scope":"/"}`,
			want:    LaunchConfig{AppID: "MyApp", AppURL: "https://example.com"},
		},
		{
			name:    "whitespace and key order",
			content: "\n{\n  \"appurl\": \"https://example.com/start\",\n  \"appid\": \"Contoso.App\"\n}\n",
			want:    LaunchConfig{AppID: "Contoso.App", AppURL: "https://example.com/start"},
		},
		{
			name:    "empty values are present",
			content: `{"appid":"","appurl":""}`,
			want:    LaunchConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(memFile(t, tt.content), testPath)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Load() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestLoad_MissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{name: "appid missing", content: `{"appurl":"https://example.com"}`, wantField: "appid"},
		{name: "appurl missing", content: `{"appid":"MyApp"}`, wantField: "appurl"},
		{name: "empty object", content: `{}`, wantField: "appid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(memFile(t, tt.content), testPath)
			if !errors.Is(err, ErrConfigFieldMissing) {
				t.Fatalf("Load() error = %v, want ErrConfigFieldMissing", err)
			}
			if errors.Is(err, ErrConfigLoad) {
				t.Error("missing field should not be reported as a load failure")
			}
			var missing *FieldMissingError
			if !errors.As(err, &missing) {
				t.Fatalf("Load() error type = %T", err)
			}
			if missing.Field != tt.wantField || missing.Path != testPath {
				t.Errorf("FieldMissingError = %+v", *missing)
			}
		})
	}
}

func TestLoad_LoadFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed JSON", content: `{"appid":"MyApp",`},
		{name: "empty file", content: ``},
		{name: "wrong type", content: `{"appid":42,"appurl":"https://example.com"}`},
		{name: "top level array", content: `[{"appid":"MyApp"}]`},
		{name: "oversized", content: `{"appid":"` + strings.Repeat("a", MaxFileSize) + `","appurl":"https://example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(memFile(t, tt.content), testPath)
			if !errors.Is(err, ErrConfigLoad) {
				t.Fatalf("Load() error = %v, want ErrConfigLoad", err)
			}
			if errors.Is(err, ErrConfigFieldMissing) {
				t.Error("load failure should not be reported as a missing field")
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load(afero.NewMemMapFs(), testPath)
	if !errors.Is(err, ErrConfigLoad) {
		t.Fatalf("Load() error = %v, want ErrConfigLoad", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error should wrap fs.ErrNotExist, got %v", err)
	}
}

type dirEnv struct {
	dir string
	err error
}

func (dirEnv) LookupEnv(string) (string, bool)    { return "", false }
func (dirEnv) PackageFamilyName() (string, error) { return "", nil }
func (e dirEnv) ExecutableDir() (string, error)   { return e.dir, e.err }

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	dir := filepath.Join("apps", "MyApp")
	got, err := DefaultPath(dirEnv{dir: dir})
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if want := filepath.Join(dir, FileName); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}

	boom := errors.New("no executable")
	if _, err := DefaultPath(dirEnv{err: boom}); !errors.Is(err, boom) {
		t.Errorf("DefaultPath() error = %v, want %v", err, boom)
	}
}
