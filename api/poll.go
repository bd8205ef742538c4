// File: api/poll.go
// Author: momentics <momentics@gmail.com>
//
// Readiness-poll primitive seam. The engine builds a flat PollFD set from
// its connection list and hands it to a ReadinessPoller; the default
// implementation lives in internal/poll, tests substitute scripted ones.

package api

// PollFD pairs a descriptor with its interest set and, after a poll call,
// its observed readiness.
type PollFD struct {
	FD      int
	Events  EventMask
	Revents EventMask
}

// ReadinessPoller blocks until any descriptor in fds is ready, the timeout
// elapses, or a signal interrupts the call.
type ReadinessPoller interface {
	// Poll waits up to timeoutMs milliseconds for readiness on fds,
	// filling each entry's Revents in place. A negative timeout blocks
	// indefinitely; zero polls without blocking. Returns the number of
	// entries with non-empty Revents.
	Poll(fds []PollFD, timeoutMs int) (int, error)
}
