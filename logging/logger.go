// Package logging provides the pluggable diagnostic logger used by the adkit
// API client, together with request lifecycle events and secret redaction.
//
// Any type implementing Logger can be supplied by the caller. When none is
// supplied, New picks a zerolog console logger in debug or verbose mode and a
// discarding logger otherwise, so the default configuration does no log
// formatting or I/O at all.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is the set of severity-tagged emission operations the client uses.
// keyvals are alternating string keys and values.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// LevelSetter is implemented by loggers whose minimum level can change after
// construction.
type LevelSetter interface {
	SetLevel(Level)
}

// Options drives the logger factory
type Options struct {
	// Logger is a caller supplied logger. It always wins.
	Logger Logger
	// Verbose requests debug level console output.
	Verbose bool
	// Level is the minimum level for the console logger.
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns the caller's logger if one is set, a console logger when verbose
// output or a non-default level is requested, and a discarding logger otherwise.
func New(opts Options) Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if !opts.Verbose && opts.Level == LevelInfo {
		return Nop()
	}

	level := opts.Level
	if opts.Verbose {
		level = LevelDebug
	}
	return NewConsole(opts.Output, level)
}

// ZerologLogger adapts a zerolog.Logger to Logger.
type ZerologLogger struct {
	zl    zerolog.Logger
	level atomic.Int32
}

// NewConsole creates a human readable logger that timestamps every line and
// tags it with the adkit component.
func NewConsole(w io.Writer, level Level) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}

	zl := zerolog.New(output).With().Timestamp().Str("component", "adkit").Logger()
	l := &ZerologLogger{zl: zl}
	l.SetLevel(level)
	return l
}

// FromZerolog wraps an existing zerolog logger. The minimum level starts at
// the logger's own level.
func FromZerolog(zl zerolog.Logger) *ZerologLogger {
	l := &ZerologLogger{zl: zl}
	l.SetLevel(fromZerologLevel(zl.GetLevel()))
	return l
}

// SetLevel changes the minimum level. Safe for concurrent use.
func (l *ZerologLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Level returns the current minimum level
func (l *ZerologLogger) Level() Level {
	return Level(l.level.Load())
}

func (l *ZerologLogger) Debug(msg string, keyvals ...any) { l.log(LevelDebug, msg, keyvals) }
func (l *ZerologLogger) Info(msg string, keyvals ...any)  { l.log(LevelInfo, msg, keyvals) }
func (l *ZerologLogger) Warn(msg string, keyvals ...any)  { l.log(LevelWarn, msg, keyvals) }
func (l *ZerologLogger) Error(msg string, keyvals ...any) { l.log(LevelError, msg, keyvals) }

func (l *ZerologLogger) log(level Level, msg string, keyvals []any) {
	if level < l.Level() {
		return
	}

	zl := l.zl.Level(zerolog.DebugLevel)
	event := zl.WithLevel(level.zerolog())
	if event == nil {
		return
	}
	if len(keyvals) > 0 {
		event = event.Fields(keyvals)
	}
	event.Msg(msg)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

// IsNop reports whether l is the discarding logger
func IsNop(l Logger) bool {
	_, ok := l.(nopLogger)
	return ok
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
