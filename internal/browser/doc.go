// SPDX-License-Identifier: MPL-2.0

// Package browser finds the Microsoft Edge Stable installation the launcher
// hands the PWA to.
//
// Discovery has two steps. FindRoot expands a fixed, ordered list of root
// templates and keeps the first one whose Edge application folder exists.
// FindFile then walks that folder depth-first for msedge.exe. Not finding
// anything is an expected outcome and is reported without an error; only a
// walk that fails for a reason other than "not found" yields a SearchError.
package browser
