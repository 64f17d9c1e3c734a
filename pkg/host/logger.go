// Package host provides the engine-side services a processor may reach for:
// structured logging and (elsewhere) transport/track context. Unlike the
// teacher framework this package talks to a real host process over a C ABI,
// here "host" means the engine itself — there is no external process, so the
// logger is a thin wrapper over github.com/charmbracelet/log rather than a
// cgo bridge.
package host

import (
	"os"

	"github.com/charmbracelet/log"
)

// Severity mirrors the CLAP log-extension severities so callers ported from
// that convention keep the same call shape.
type Severity int32

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityFatal
)

// Logger is a structured logger handed to processors for main-thread and
// rebuild-path diagnostics. It must never be called from the audio render
// path — see pkg/thread for the assertions that guard against that.
type Logger struct {
	l      *log.Logger
	prefix string
}

// NewLogger creates a logger that writes to stderr with the given prefix
// (typically a processor or subsystem name).
func NewLogger(prefix string) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return &Logger{l: l, prefix: prefix}
}

// With returns a logger scoped to a child prefix, e.g. NewLogger("engine").With("graph").
func (lg *Logger) With(suffix string) *Logger {
	if lg == nil {
		return nil
	}
	return NewLogger(lg.prefix + "." + suffix)
}

func (lg *Logger) log(sev Severity, msg string, args ...interface{}) {
	if lg == nil || lg.l == nil {
		return
	}
	switch sev {
	case SeverityDebug:
		lg.l.Debugf(msg, args...)
	case SeverityInfo:
		lg.l.Infof(msg, args...)
	case SeverityWarning:
		lg.l.Warnf(msg, args...)
	case SeverityError, SeverityFatal:
		lg.l.Errorf(msg, args...)
	}
}

// Log writes a message at the given severity, printf-style.
func (lg *Logger) Log(sev Severity, msg string, args ...interface{}) { lg.log(sev, msg, args...) }

// Debug logs at debug severity.
func (lg *Logger) Debug(msg string, args ...interface{}) { lg.log(SeverityDebug, msg, args...) }

// Info logs at info severity.
func (lg *Logger) Info(msg string, args ...interface{}) { lg.log(SeverityInfo, msg, args...) }

// Warning logs at warning severity.
func (lg *Logger) Warning(msg string, args ...interface{}) { lg.log(SeverityWarning, msg, args...) }

// Error logs at error severity.
func (lg *Logger) Error(msg string, args ...interface{}) { lg.log(SeverityError, msg, args...) }
