// Package log provides a minimal solve-trace logger, wrapping an
// io.Writer the way the rest of the structured-logging stack wraps a
// handler.
package log

import (
	"fmt"
	"io"
)

// Logger is a minimal wrapper around an io.Writer used for solve-trace
// output: which packages were visited, skipped, or failed.
type Logger struct {
	io.Writer
}

// New returns a new logger which writes to w.
func New(w io.Writer) *Logger {
	return &Logger{Writer: w}
}

// Logln logs a line.
func (l *Logger) Logln(args ...interface{}) {
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string.
func (l *Logger) Logf(f string, args ...interface{}) {
	fmt.Fprintf(l, f, args...)
}

// LogSolvefln logs a formatted line, prefixed with `solve: `, used for
// the resolver's decision points (load, skip, failure).
func (l *Logger) LogSolvefln(format string, args ...interface{}) {
	fmt.Fprintf(l, "solve: "+format+"\n", args...)
}
