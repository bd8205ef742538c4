// File: engine/flush.go
// Author: momentics <momentics@gmail.com>

package engine

import (
	"fmt"

	"github.com/momentics/jobmux/api"
)

// FlushAll attempts one flush step on every connection holding buffered
// output, in attach order. A connection that would block is skipped and
// stays counted as sending. The first hard I/O failure records error
// state and aborts the pass; later connections are not attempted.
func (e *Engine) FlushAll() error {
	for _, c := range e.conns {
		if !c.Buffered() {
			continue
		}
		res, err := c.Flush()
		switch res {
		case api.IODone:
			if e.sending > 0 {
				e.sending--
			}
		case api.IOWouldBlock:
			// left pending for the next cycle
		case api.IOError:
			e.recordIOError("FlushAll", c, err)
			return fmt.Errorf("flush fd=%d: %w", c.Fd(), err)
		}
	}
	return nil
}
