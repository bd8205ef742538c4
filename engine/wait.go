// File: engine/wait.go
// Author: momentics <momentics@gmail.com>
//
// Readiness polling and the per-cycle ready iterator.

package engine

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/momentics/jobmux/api"
)

// Wait polls every connection with a non-empty desired-event mask and
// marks readiness on the ones that polled ready, queuing them for Ready
// in attach order. It blocks for up to the configured timeout (negative
// blocks indefinitely, zero polls without blocking) and performs exactly
// one underlying poll call per invocation.
//
// api.ErrTimeout and api.ErrInterrupted are statuses, not failures:
// neither records error state, and an interrupted call may simply be
// retried. Any other failure records errno and the error text.
func (e *Engine) Wait() error {
	if cap(e.pfds) < len(e.conns) {
		e.pfds = make([]api.PollFD, 0, len(e.conns))
		e.polled = make([]api.Conn, 0, len(e.conns))
	}
	pfds := e.pfds[:0]
	polled := e.polled[:0]
	for _, c := range e.conns {
		ev := c.Events()
		if ev == 0 {
			continue
		}
		pfds = append(pfds, api.PollFD{FD: c.Fd(), Events: ev})
		polled = append(polled, c)
	}
	e.pfds = pfds
	e.polled = polled

	e.drainReady()

	if len(pfds) == 0 {
		e.SetError("Wait", "no active file descriptors")
		return api.ErrNoActiveConns
	}

	e.logf(api.VerboseDebug, "engine %s: polling %d fds timeout=%dms", e.id, len(pfds), e.timeoutMs)
	n, err := e.poller.Poll(pfds, e.timeoutMs)
	if err != nil {
		if errors.Is(err, api.ErrInterrupted) {
			return err
		}
		var errno syscall.Errno
		if errors.As(err, &errno) {
			e.lastErrno = int(errno)
		}
		e.SetError("Wait", "poll: %v", err)
		return fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		return api.ErrTimeout
	}

	for i := range pfds {
		if pfds[i].Revents == 0 {
			continue
		}
		c := polled[i]
		c.SetRevents(pfds[i].Revents)
		e.readyQ.Add(c)
	}
	return nil
}

// Ready returns the next connection marked ready by the most recent Wait,
// in attach order, or nil once the cycle is exhausted. Each connection is
// surfaced at most once per Wait cycle; connections detached since that
// Wait are skipped. Without a prior Wait there is nothing pending.
func (e *Engine) Ready() api.Conn {
	for e.readyQ.Length() > 0 {
		c := e.readyQ.Remove().(api.Conn)
		if !e.attached(c) {
			continue
		}
		return c
	}
	return nil
}

func (e *Engine) drainReady() {
	for e.readyQ.Length() > 0 {
		e.readyQ.Remove()
	}
}
