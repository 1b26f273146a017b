// Package logging provides the component loggers used across questtool.
//
// Loggers are plain *log.Logger values with a bracketed component prefix
// ("[sync] ", "[cache] "). Debug output is gated per logger so callers can
// log freely without checking flags themselves.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures log output.
type Options struct {
	// Debug enables Debugf output.
	Debug bool

	// File, when set, receives a copy of all log output. The file is
	// rotated by size.
	File string

	// MaxSizeMB is the rotation threshold for File (default 10).
	MaxSizeMB int

	// MaxBackups is how many rotated files to keep (default 3).
	MaxBackups int
}

// Logger is a component logger with an optional debug level.
type Logger struct {
	*log.Logger
	debug bool
}

// Debugf logs only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}
	l.Printf("DEBUG: "+format, args...)
}

// DebugEnabled reports whether Debugf produces output.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("WARNING: "+format, args...)
}

// Factory creates component loggers sharing one output.
type Factory struct {
	out   io.Writer
	debug bool
	file  *lumberjack.Logger
}

// NewFactory builds a Factory writing to stderr and, when opts.File is set,
// to a size-rotated log file.
func NewFactory(opts Options) *Factory {
	f := &Factory{out: os.Stderr, debug: opts.Debug}

	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		f.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		}
		f.out = io.MultiWriter(os.Stderr, f.file)
	}

	return f
}

// NewFactoryWriter builds a Factory writing to w. Used by tests.
func NewFactoryWriter(w io.Writer, debug bool) *Factory {
	return &Factory{out: w, debug: debug}
}

// New returns a logger for the named component.
func (f *Factory) New(component string) *Logger {
	flags := 0
	if f.debug {
		flags = log.LstdFlags
	}
	return &Logger{
		Logger: log.New(f.out, "["+component+"] ", flags),
		debug:  f.debug,
	}
}

// Close releases the log file, if any.
func (f *Factory) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// Default returns a stderr logger for the named component with debug off.
func Default(component string) *Logger {
	return &Logger{Logger: log.New(os.Stderr, "["+component+"] ", 0)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard, "", 0)}
}
