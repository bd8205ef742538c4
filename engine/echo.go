// File: engine/echo.go
// Author: momentics <momentics@gmail.com>
//
// Round-trip liveness check across every attached connection.

package engine

import (
	"bytes"
	"fmt"

	"github.com/momentics/jobmux/api"
)

// Echo sends payload as an echo request on every connection and waits,
// through the engine's own Wait/Ready loop and timeout, for each reply.
// It fails if any reply differs from payload byte-for-byte; a mismatch is
// a protocol error and sets no errno. With no connections attached Echo
// succeeds trivially.
func (e *Engine) Echo(payload []byte) error {
	if len(e.conns) == 0 {
		return nil
	}

	// The outbound copy goes through the workload allocator so custom
	// alloc/free pairs see echo traffic too.
	buf := e.WorkloadAlloc(len(payload))
	if len(payload) > 0 && buf == nil {
		e.SetError("Echo", "workload allocation of %d bytes failed", len(payload))
		return api.ErrAllocFailed
	}
	copy(buf, payload)
	defer e.WorkloadFree(buf)

	awaiting := make(map[api.Conn]bool, len(e.conns))
	for _, c := range e.conns {
		if err := e.echoSend(c, buf); err != nil {
			return err
		}
		awaiting[c] = true
	}

	for len(awaiting) > 0 {
		progress := false
		for _, c := range e.conns {
			if !awaiting[c] {
				continue
			}
			reply, res, err := c.RecvEchoReply()
			switch res {
			case api.IODone:
				if !bytes.Equal(reply, payload) {
					e.SetError("Echo", "reply payload mismatch on fd=%d", c.Fd())
					return api.ErrEchoDataMismatch
				}
				delete(awaiting, c)
				progress = true
			case api.IOWouldBlock:
				// retried after the next Wait
			case api.IOError:
				e.recordIOError("Echo", c, err)
				return fmt.Errorf("echo recv fd=%d: %w", c.Fd(), err)
			}
		}
		if len(awaiting) == 0 || progress {
			continue
		}
		if err := e.Wait(); err != nil {
			return err
		}
		e.consumeReady()
	}
	return nil
}

func (e *Engine) echoSend(c api.Conn, payload []byte) error {
	for {
		res, err := c.SendEcho(payload)
		switch res {
		case api.IODone:
			return nil
		case api.IOWouldBlock:
			if err := e.Wait(); err != nil {
				return err
			}
			e.consumeReady()
		case api.IOError:
			e.recordIOError("Echo", c, err)
			return fmt.Errorf("echo send fd=%d: %w", c.Fd(), err)
		}
	}
}

// consumeReady drains the ready iterator; echo retries every awaiting
// connection on the next pass rather than tracking readiness per entry.
func (e *Engine) consumeReady() {
	for c := e.Ready(); c != nil; c = e.Ready() {
	}
}
