//go:build unix

// File: internal/poll/poll_unix.go
// Author: momentics <momentics@gmail.com>
//
// poll(2)-backed readiness primitive for Unix platforms.

package poll

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/jobmux/api"
)

// SysPoller adapts poll(2) to api.ReadinessPoller. The conversion buffer
// grows to the largest set seen and is reused across calls.
type SysPoller struct {
	pfds []unix.PollFd
}

// New returns a poller backed by the platform poll(2) syscall.
func New() *SysPoller {
	return &SysPoller{}
}

// Poll performs a single poll(2) call over fds, writing observed
// readiness back into each entry's Revents.
func (p *SysPoller) Poll(fds []api.PollFD, timeoutMs int) (int, error) {
	if cap(p.pfds) < len(fds) {
		p.pfds = make([]unix.PollFd, len(fds))
	}
	pfds := p.pfds[:len(fds)]
	for i := range fds {
		pfds[i] = unix.PollFd{
			Fd:     int32(fds[i].FD),
			Events: sysEvents(fds[i].Events),
		}
	}

	n, err := unix.Poll(pfds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, api.ErrInterrupted
		}
		return 0, err
	}
	for i := range pfds {
		fds[i].Revents = maskEvents(pfds[i].Revents)
	}
	return n, nil
}

func sysEvents(m api.EventMask) int16 {
	var ev int16
	if m.Readable() {
		ev |= unix.POLLIN
	}
	if m.Writable() {
		ev |= unix.POLLOUT
	}
	return ev
}

// maskEvents folds error and hangup conditions into the read bit so the
// next read attempt observes the failure.
func maskEvents(revents int16) api.EventMask {
	var m api.EventMask
	if revents&(unix.POLLIN|unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		m |= api.EventRead
	}
	if revents&unix.POLLOUT != 0 {
		m |= api.EventWrite
	}
	return m
}
