// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates configuration documents against embedded CUE
// schemas and decodes them into Go structs.
//
// Both CUE and JSON documents are accepted. JSON input is extracted into a
// CUE expression first so schema errors carry the same field paths either
// way:
//
//	//go:embed pwa_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[LaunchConfig](
//	    schema,
//	    data,
//	    "#PwaConfig",
//	    cueutil.WithFilename("pwa.json"),
//	    cueutil.WithFormat(cueutil.FormatJSON),
//	    cueutil.WithRequiredFields("appid", "appurl"),
//	)
package cueutil
