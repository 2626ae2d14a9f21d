// Package logger provides leveled logging for fff.
//
// Warnings always reach stderr. Debug and info messages, which trace how the
// native library was found and what each engine call returned, are only
// printed once verbose mode is enabled with the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level orders messages by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

func (l Level) prefix() string {
	switch l {
	case LevelDebug:
		return "[DEBUG] "
	case LevelInfo:
		return "[INFO] "
	default:
		return "[WARN] "
	}
}

var (
	mu       sync.RWMutex
	minLevel           = LevelWarn
	output   io.Writer = os.Stderr
)

// SetVerbose enables or disables debug and info output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		minLevel = LevelDebug
	} else {
		minLevel = LevelWarn
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return Enabled(LevelDebug)
}

// Enabled reports whether messages at l are printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= minLevel
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < minLevel {
		return
	}
	fmt.Fprintf(output, l.prefix()+format+"\n", args...)
}

func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Section prints a header separating verbose output of one stage.
func Section(name string) {
	if Enabled(LevelDebug) {
		mu.RLock()
		defer mu.RUnlock()
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs how long an operation took. Use as:
//
//	defer logger.Timed("fff_search")()
func Timed(op string) func() {
	if !IsVerbose() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Debug("%s took %s", op, time.Since(start).Round(time.Microsecond))
	}
}
