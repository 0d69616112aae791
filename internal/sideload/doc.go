// SPDX-License-Identifier: MPL-2.0

// Package sideload installs an application package (.msix, .appx or a
// bundle) through the platform package manager and reports the manager's
// HRESULT verbatim.
package sideload
