// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultEventSource is the event log source name used when Options.Source is empty.
const DefaultEventSource = "PWALauncher"

type (
	// Sink receives free-text diagnostic events.
	Sink interface {
		Log(message string)
	}

	// Options configures a diagnostic session.
	Options struct {
		// Prefix labels every console/file record (e.g. "pwalauncher").
		Prefix string
		// Level is a charmbracelet/log level name; empty means "info".
		Level string
		// Writer receives console output; nil means os.Stderr.
		Writer io.Writer
		// FilePath appends records to this file when set.
		FilePath string
		// EventLog mirrors Log messages to the Windows Application event log.
		EventLog bool
		// Source is the event log source name.
		Source string
	}

	// Session is the scoped diagnostic resource for one process run.
	Session struct {
		logger *log.Logger
		runID  string
		events eventWriter
		file   *os.File

		closeOnce sync.Once
		closeErr  error
	}

	// eventWriter is the subset of the Windows event log the session needs.
	eventWriter interface {
		Info(eid uint32, msg string) error
		Close() error
	}

	nopSink struct{}
)

// eventID is the event identifier attached to every event log record.
const eventID uint32 = 1

// Nop is a Sink that drops every message.
var Nop Sink = nopSink{}

func (nopSink) Log(string) {}

// Open acquires a diagnostic session. The caller must Close it.
func Open(opts Options) (*Session, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var w io.Writer = os.Stderr
	if opts.Writer != nil {
		w = opts.Writer
	}

	s := &Session{runID: uuid.NewString()}

	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.file = f
		w = io.MultiWriter(w, f)
	}

	if opts.EventLog {
		source := opts.Source
		if source == "" {
			source = DefaultEventSource
		}
		events, err := openEventLog(source)
		if err != nil {
			// The event log is best-effort; console/file logging still works.
			fmt.Fprintf(w, "event log unavailable: %v\n", err)
		} else {
			s.events = events
		}
	}

	s.logger = log.NewWithOptions(w, log.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		ReportTimestamp: true,
	}).With("run", s.runID)

	return s, nil
}

// Log records a free-text diagnostic event.
func (s *Session) Log(message string) {
	s.logger.Info(message)
	if s.events != nil {
		if err := s.events.Info(eventID, message); err != nil {
			s.logger.Debug("event log write failed", "error", err)
		}
	}
}

// Logger exposes the structured logger for callers that want levels and fields.
func (s *Session) Logger() *log.Logger { return s.logger }

// RunID returns the identifier stamped on every record of this session.
func (s *Session) RunID() string { return s.runID }

// Close releases the event log handle and log file. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.events != nil {
			if err := s.events.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close event log: %w", err))
			}
		}
		if s.file != nil {
			if err := s.file.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close log file: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
