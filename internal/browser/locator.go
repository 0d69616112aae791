// SPDX-License-Identifier: MPL-2.0

package browser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pwalaunch/pwalaunch/internal/diag"
	"github.com/pwalaunch/pwalaunch/pkg/platform"

	"github.com/spf13/afero"
)

// BinaryName is the file the launcher starts.
const BinaryName = "msedge.exe"

var (
	// ErrNotInstalled reports that no Edge installation was found.
	ErrNotInstalled = errors.New("browser not installed")
	// ErrSearch is the sentinel error wrapped by SearchError.
	ErrSearch = errors.New("browser search failed")

	// DefaultRootTemplates lists the candidate roots in search order.
	// PROGRAMFILES follows the bitness of the launcher, PROGRAMFILES(X86) is
	// always the 32-bit folder and PROGRAMW6432 is the 64-bit folder under WoW64.
	DefaultRootTemplates = []string{
		"${PROGRAMFILES}",
		"${PROGRAMFILES(X86)}",
		"${PROGRAMW6432}",
		"${LOCALAPPDATA}",
	}

	// DefaultSubPath is appended to every expanded root.
	DefaultSubPath = []string{"Microsoft", "Edge", "Application"}

	// errStopWalk ends the walk at the first match.
	errStopWalk = errors.New("stop walk")
)

type (
	// EnvLookup is the part of osenv.Environment discovery needs.
	EnvLookup interface {
		LookupEnv(key string) (string, bool)
	}

	// Installation is a discovered browser, valid for a single launch attempt.
	Installation struct {
		// Root is the Edge application folder that was searched.
		Root string
		// Binary is the full path of the browser executable.
		Binary string
	}

	// SearchError is returned when walking an installation root fails for a
	// reason other than a missing file or folder.
	SearchError struct {
		Root string
		Err  error
	}

	// Locator discovers the browser installation.
	Locator struct {
		fs        afero.Fs
		env       EnvLookup
		sink      diag.Sink
		templates []string
		subPath   []string
		foldCase  bool
	}

	// Option customizes a Locator.
	Option func(*Locator)
)

// Error implements the error interface.
func (e *SearchError) Error() string {
	return fmt.Sprintf("search %s: %v", e.Root, e.Err)
}

// Unwrap returns ErrSearch and the underlying I/O error.
func (e *SearchError) Unwrap() []error { return []error{ErrSearch, e.Err} }

// WithTemplates replaces the candidate root templates.
func WithTemplates(templates ...string) Option {
	return func(l *Locator) { l.templates = templates }
}

// WithFoldCase controls whether file names match case-insensitively.
func WithFoldCase(fold bool) Option {
	return func(l *Locator) { l.foldCase = fold }
}

// NewLocator creates a Locator over fsys. A nil sink discards diagnostics.
func NewLocator(fsys afero.Fs, env EnvLookup, sink diag.Sink, opts ...Option) *Locator {
	if sink == nil {
		sink = diag.Nop
	}
	l := &Locator{
		fs:        fsys,
		env:       env,
		sink:      sink,
		templates: DefaultRootTemplates,
		subPath:   DefaultSubPath,
		foldCase:  platform.IsWindows(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FindRoot returns the first candidate root that exists. Later candidates
// are not examined once one is found.
func (l *Locator) FindRoot() (string, bool) {
	for _, tmpl := range l.templates {
		base, ok := l.expand(tmpl)
		if !ok {
			l.sink.Log(fmt.Sprintf("Failed to expand %s", tmpl))
			continue
		}

		candidate := filepath.Join(append([]string{base}, l.subPath...)...)
		exists, err := afero.Exists(l.fs, candidate)
		if err != nil {
			l.sink.Log(fmt.Sprintf("Failed to query %s: %v", candidate, err))
			continue
		}
		if !exists {
			l.sink.Log(fmt.Sprintf("Failed to find Edge binary at %s", candidate))
			continue
		}

		l.sink.Log(fmt.Sprintf("Found Edge Stable channel installation under %s", candidate))
		return candidate, true
	}
	return "", false
}

// FindFile walks root depth-first and returns the first file whose base name
// is name. Sibling order is whatever the file system reports.
func (l *Locator) FindFile(root, name string) (string, bool, error) {
	var found string
	err := afero.Walk(l.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if info.IsDir() || !l.sameName(info.Name(), name) {
			return nil
		}
		found = path
		return errStopWalk
	})
	switch {
	case errors.Is(err, errStopWalk):
		return found, true, nil
	case err != nil:
		return "", false, &SearchError{Root: root, Err: err}
	default:
		return "", false, nil
	}
}

// Locate runs both discovery steps.
func (l *Locator) Locate() (Installation, error) {
	root, ok := l.FindRoot()
	if !ok {
		return Installation{}, ErrNotInstalled
	}

	binary, ok, err := l.FindFile(root, BinaryName)
	if err != nil {
		return Installation{Root: root}, err
	}
	if !ok {
		l.sink.Log(fmt.Sprintf("Failed to find %s under path %s", BinaryName, root))
		return Installation{Root: root}, fmt.Errorf("%w: no %s under %s", ErrNotInstalled, BinaryName, root)
	}
	return Installation{Root: root, Binary: binary}, nil
}

// expand substitutes ${VAR} references. A reference to an unset or empty
// variable makes the whole template unusable.
func (l *Locator) expand(tmpl string) (string, bool) {
	ok := true
	expanded := os.Expand(tmpl, func(key string) string {
		value, found := l.env.LookupEnv(key)
		if !found || value == "" {
			ok = false
		}
		return value
	})
	return expanded, ok && expanded != ""
}

func (l *Locator) sameName(a, b string) bool {
	if l.foldCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}
