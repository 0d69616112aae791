// SPDX-License-Identifier: MPL-2.0

// Package version reads the browser's embedded file version and decides
// whether it is new enough to host a Store PWA.
package version

import (
	"errors"
	"fmt"
)

// MinimumMajor is the first Edge major version that supports Store PWAs.
const MinimumMajor = 88

// ErrUnavailable is returned by readers that cannot read version metadata.
var ErrUnavailable = errors.New("version metadata unavailable")

// Verdict values, in the order the gate evaluates them.
const (
	// Unknown means the version could not be read; the launch proceeds.
	Unknown Verdict = iota
	// TooOld means the major version is below MinimumMajor; the launch is blocked.
	TooOld
	// Supported means the major version is at or above MinimumMajor.
	Supported
)

type (
	// Reader extracts the major version from a binary's version metadata.
	Reader interface {
		MajorVersion(path string) (int, error)
	}

	// Verdict is the outcome of the version gate.
	Verdict int

	// Decision carries the verdict together with what the gate saw.
	Decision struct {
		Verdict Verdict
		// Major is the major version read from the binary; -1 when unknown.
		Major int
		// Err is the read failure behind an Unknown verdict.
		Err error
	}

	// FileInfoReader reads the fixed file-info block of a PE version resource.
	FileInfoReader struct{}
)

// String returns a lower-case name for the verdict.
func (v Verdict) String() string {
	switch v {
	case Unknown:
		return "unknown"
	case TooOld:
		return "too old"
	case Supported:
		return "supported"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Allows reports whether the launch may proceed. Unreadable metadata fails
// open: a user whose binary carries an unexpected resource layout still gets
// the app.
func (d Decision) Allows() bool { return d.Verdict != TooOld }

// Check runs the gate for the binary at path.
func Check(r Reader, path string) Decision {
	major, err := r.MajorVersion(path)
	if err != nil {
		return Decision{Verdict: Unknown, Major: -1, Err: err}
	}
	if major < MinimumMajor {
		return Decision{Verdict: TooOld, Major: major}
	}
	return Decision{Verdict: Supported, Major: major}
}

// MajorVersion implements Reader.
func (FileInfoReader) MajorVersion(path string) (int, error) {
	ms, err := fileVersionMS(path)
	if err != nil {
		return -1, err
	}
	return MajorFromMS(ms), nil
}

// MajorFromMS returns the high word of VS_FIXEDFILEINFO.dwFileVersionMS.
func MajorFromMS(ms uint32) int {
	return int(ms >> 16)
}
