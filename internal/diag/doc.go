// SPDX-License-Identifier: MPL-2.0

// Package diag provides the per-process diagnostic session.
//
// A Session is opened once when a tool starts and closed when it exits.
// Everything the launch flow wants to record goes through Sink.Log; the
// session fans each message out to a charmbracelet/log logger (console and
// optional file) and, on Windows, to the Application event log.
package diag
