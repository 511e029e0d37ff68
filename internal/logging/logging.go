// Package logging writes a rotating per-run session log. The log is an
// audit trail of decisions and tool results, not user-facing output;
// progress messages go to stdout/stderr directly.
package logging

import (
	"fmt"
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Session appends run events to a rotating log file. Every line carries
// the run ID so overlapping log files from multiple runs stay readable.
type Session struct {
	logger *log.Logger
	runID  string
	closer io.Closer
}

// NewSession opens (or creates) the session log at filePath. Rotation
// keeps the file bounded; old runs age out on their own.
func NewSession(filePath, runID string) *Session {
	sink := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
	return &Session{
		logger: log.New(sink, "", log.LstdFlags),
		runID:  runID,
		closer: sink,
	}
}

// Nop returns a session that discards everything. Used by tests and by
// code paths that run before the home directory exists.
func Nop() *Session {
	return &Session{logger: log.New(io.Discard, "", 0)}
}

// Eventf records one run event.
func (s *Session) Eventf(format string, args ...any) {
	if s == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if s.runID != "" {
		s.logger.Printf("[%s] %s", s.runID, msg)
		return
	}
	s.logger.Print(msg)
}

// Close flushes and closes the underlying log file.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
