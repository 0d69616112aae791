// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes the GOOS names the launcher branches on.
package platform
