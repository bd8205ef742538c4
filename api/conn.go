// File: api/conn.go
// Author: momentics <momentics@gmail.com>
//
// Connection collaborator contract consumed by the engine. A Conn is an
// abstract readiness-pollable endpoint with buffered I/O; the engine never
// touches the transport underneath it.

package api

// EventMask describes descriptor interest or readiness as a bit set.
type EventMask uint32

const (
	// EventRead marks the descriptor readable (or in an error/hangup
	// condition that a read will surface).
	EventRead EventMask = 1 << iota
	// EventWrite marks the descriptor writable.
	EventWrite
)

// Readable reports whether the read bit is set.
func (m EventMask) Readable() bool { return m&EventRead != 0 }

// Writable reports whether the write bit is set.
func (m EventMask) Writable() bool { return m&EventWrite != 0 }

func (m EventMask) String() string {
	switch {
	case m.Readable() && m.Writable():
		return "read|write"
	case m.Readable():
		return "read"
	case m.Writable():
		return "write"
	default:
		return "none"
	}
}

// IOResult classifies the outcome of a single non-blocking I/O step.
type IOResult int

const (
	// IODone means the step completed.
	IODone IOResult = iota
	// IOWouldBlock means the step could not complete without blocking.
	// Not an error; retry after the descriptor polls ready.
	IOWouldBlock
	// IOError means the step failed; the accompanying error carries detail.
	IOError
)

func (r IOResult) String() string {
	switch r {
	case IODone:
		return "done"
	case IOWouldBlock:
		return "would-block"
	case IOError:
		return "error"
	default:
		return "unknown"
	}
}

// Conn abstracts a full-duplex endpoint owned by an engine.
//
// Implementations supply the descriptor and interest mask the engine polls
// on, accept readiness flags back from the poll cycle, and perform their
// own buffered I/O one non-blocking step at a time.
type Conn interface {
	// Fd returns the pollable OS-level descriptor.
	Fd() int

	// Events returns the desired-event mask for the next poll cycle.
	// A zero mask excludes the connection from the poll set.
	Events() EventMask

	// SetRevents records readiness observed by the most recent poll.
	SetRevents(revents EventMask)

	// Revents returns the most recently recorded readiness flags.
	Revents() EventMask

	// Buffered reports whether unsent output remains queued.
	Buffered() bool

	// Flush attempts one step of draining buffered output.
	// IODone means the send buffer is empty.
	Flush() (IOResult, error)

	// SendEcho queues and sends an echo request carrying payload.
	SendEcho(payload []byte) (IOResult, error)

	// RecvEchoReply attempts to read one echo reply. On IODone the
	// returned slice is the reply payload, valid until the next call.
	RecvEchoReply() ([]byte, IOResult, error)

	// Close releases the transport resources held by the connection.
	Close() error
}
