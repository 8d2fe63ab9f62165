// Package mlog writes the server's structured diagnostic log: one line
// per event, tagged with a facility and an event code, filtered by a
// severity mask.
package mlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Severity selects which classes of event reach the log
type Severity uint32

const (
	Bugs     Severity = 1 << 0 // internal-consistency problems
	Security Severity = 1 << 1
	Network  Severity = 1 << 2
	Startup  Severity = 1 << 3
	Problems Severity = 1 << 4 // routine trouble: broken locks, bad refs
	AllLog   Severity = ^Severity(0)
)

func (s Severity) String() string {
	switch s {
	case Bugs:
		return "BUG"
	case Security:
		return "SEC"
	case Network:
		return "NET"
	case Startup:
		return "INI"
	case Problems:
		return "PRB"
	default:
		return "LOG"
	}
}

// Logger filters and writes diagnostic lines
type Logger struct {
	mu     sync.Mutex
	mask   Severity
	writer io.Writer
}

// Global logger instance
var global *Logger

// Init initializes the global logger. A nil writer means stderr.
func Init(mask Severity, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	global = &Logger{mask: mask, writer: writer}
}

// Write logs one event: severity class, primary and secondary event
// codes, then a formatted message.
// Line shape: 2026-01-02T15:04:05 BUG LOCK: message
func Write(sev Severity, primary, secondary, format string, args ...any) {
	if global == nil {
		Init(AllLog, nil)
	}
	global.Write(sev, primary, secondary, format, args...)
}

// Write logs one event through a specific logger
func (l *Logger) Write(sev Severity, primary, secondary, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mask&sev == 0 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "%s %s %s/%s: %s\n",
		time.Now().Format("2006-01-02T15:04:05"), sev, primary, secondary, msg)
}

// Fatal logs an internal-consistency violation and aborts the process.
// Reserved for states the code promises are unreachable.
func Fatal(format string, args ...any) {
	Write(Bugs, "FATAL", "ABORT", format, args...)
	panic(fmt.Sprintf(format, args...))
}
