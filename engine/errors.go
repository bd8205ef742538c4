// File: engine/errors.go
// Author: momentics <momentics@gmail.com>
//
// Bounded last-error buffer, errno mirror, and log delivery. Error state
// is overwritten by each failing operation and never cleared on success;
// callers read it after a failure returns, before the next call.

package engine

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/momentics/jobmux/api"
)

// MaxErrorSize bounds the last-error text, terminator included.
const MaxErrorSize = 1024

// SetError records a formatted message as the engine's last error,
// prefixed with the originating function, and delivers it to the log sink
// at ERROR level. Reports whether the message was truncated to fit the
// fixed buffer. The errno mirror is left untouched.
func (e *Engine) SetError(origin, format string, args ...any) bool {
	msg := origin + ": " + fmt.Sprintf(format, args...)
	truncated := false
	if len(msg) > MaxErrorSize-1 {
		msg = msg[:MaxErrorSize-1]
		truncated = true
	}
	e.errLen = copy(e.lastError[:], msg)
	e.logf(api.VerboseError, "%s", msg)
	return truncated
}

// SetErrorWithErrno records a system failure: the formatted message plus
// the OS error code behind it.
func (e *Engine) SetErrorWithErrno(origin string, errno int, format string, args ...any) bool {
	e.lastErrno = errno
	return e.SetError(origin, format, args...)
}

// LastError returns the last recorded error text; empty means none.
func (e *Engine) LastError() string {
	return string(e.lastError[:e.errLen])
}

// Errno returns the OS error code from the most recent system failure,
// or zero when none was recorded.
func (e *Engine) Errno() int { return e.lastErrno }

// SetLogFn registers the log sink and its verbosity threshold. Messages
// less severe than the threshold are dropped; a nil fn disables logging.
func (e *Engine) SetLogFn(fn api.LogFn, verbosity api.Verbosity) {
	e.logFn = fn
	e.verbosity = verbosity
}

// Verbosity returns the current log threshold.
func (e *Engine) Verbosity() api.Verbosity { return e.verbosity }

// SetEventWatchFn registers the I/O-event-watch callback invoked whenever
// a connection's desired-event mask changes.
func (e *Engine) SetEventWatchFn(fn api.EventWatchFn) {
	e.eventWatchFn = fn
}

// SetWorkloadAllocFn registers a replacement workload buffer allocator.
func (e *Engine) SetWorkloadAllocFn(fn api.AllocFn) {
	e.allocFn = fn
}

// SetWorkloadFreeFn registers the release half of a custom allocator pair.
func (e *Engine) SetWorkloadFreeFn(fn api.FreeFn) {
	e.freeFn = fn
}

func (e *Engine) logf(level api.Verbosity, format string, args ...any) {
	if e.logFn == nil || level > e.verbosity {
		return
	}
	e.logFn(level, fmt.Sprintf(format, args...))
}

// recordIOError captures a per-connection I/O failure: errno when the
// error carries one, message always.
func (e *Engine) recordIOError(origin string, c api.Conn, err error) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.lastErrno = int(errno)
	}
	e.SetError(origin, "fd=%d: %v", c.Fd(), err)
}
