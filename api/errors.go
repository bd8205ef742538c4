// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the jobmux library. Timeout and
// interrupt are first-class statuses rather than hard failures; callers
// classify with errors.Is.

package api

import "fmt"

var (
	// ErrTimeout is returned by Wait when no descriptor became ready
	// within the configured I/O timeout. Not a failure.
	ErrTimeout = fmt.Errorf("i/o activity timeout")

	// ErrInterrupted is returned when the readiness primitive was cut
	// short by a signal. Retryable; no error state is recorded.
	ErrInterrupted = fmt.Errorf("poll interrupted by signal")

	// ErrNoActiveConns is returned by Wait when no connection carries a
	// non-empty desired-event mask.
	ErrNoActiveConns = fmt.Errorf("no active file descriptors")

	// ErrUnknownOption is returned for an option the engine does not know.
	ErrUnknownOption = fmt.Errorf("unknown engine option")

	// ErrEchoDataMismatch is returned when an echo reply does not match
	// the request payload byte-for-byte. A protocol error, not an I/O one.
	ErrEchoDataMismatch = fmt.Errorf("echo reply payload mismatch")

	// ErrConnNotAttached is returned when detaching a connection the
	// engine does not own.
	ErrConnNotAttached = fmt.Errorf("connection not attached to engine")

	// ErrAllocFailed is returned when a workload buffer allocation fails.
	ErrAllocFailed = fmt.Errorf("workload buffer allocation failed")

	// ErrNotSupported is returned by platform stubs without a readiness
	// primitive.
	ErrNotSupported = fmt.Errorf("operation not supported")
)
