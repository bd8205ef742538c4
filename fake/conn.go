// File: fake/conn.go
// Author: momentics <momentics@gmail.com>

package fake

import "github.com/momentics/jobmux/api"

var _ api.Conn = (*Conn)(nil)

// Conn is a scripted api.Conn. Result scripts are consumed left to right;
// once a script runs out the call succeeds with api.IODone.
type Conn struct {
	FD       int
	Interest api.EventMask

	// Pending mimics unsent buffered output.
	Pending bool

	// FlushResults scripts successive Flush outcomes; FlushErr is
	// returned alongside api.IOError.
	FlushResults []api.IOResult
	FlushErr     error
	FlushCalls   int

	// SendResults and RecvResults script the echo pair the same way.
	SendResults []api.IOResult
	SendErr     error
	RecvResults []api.IOResult
	RecvErr     error

	// EchoReply overrides the reply payload; when nil the connection
	// echoes back the last sent payload unmodified.
	EchoReply []byte

	CloseCalls int
	CloseErr   error

	revents  api.EventMask
	lastSent []byte
}

// NewConn creates a fake connection with the given descriptor and
// read/write interest.
func NewConn(fd int, interest api.EventMask) *Conn {
	return &Conn{FD: fd, Interest: interest}
}

func (c *Conn) Fd() int { return c.FD }

func (c *Conn) Events() api.EventMask { return c.Interest }

func (c *Conn) SetRevents(revents api.EventMask) { c.revents = revents }

func (c *Conn) Revents() api.EventMask { return c.revents }

func (c *Conn) Buffered() bool { return c.Pending }

func (c *Conn) Flush() (api.IOResult, error) {
	c.FlushCalls++
	res := popResult(&c.FlushResults)
	switch res {
	case api.IODone:
		c.Pending = false
		return api.IODone, nil
	case api.IOError:
		return api.IOError, c.FlushErr
	default:
		return res, nil
	}
}

func (c *Conn) SendEcho(payload []byte) (api.IOResult, error) {
	res := popResult(&c.SendResults)
	switch res {
	case api.IODone:
		c.lastSent = append([]byte(nil), payload...)
		return api.IODone, nil
	case api.IOError:
		return api.IOError, c.SendErr
	default:
		return res, nil
	}
}

func (c *Conn) RecvEchoReply() ([]byte, api.IOResult, error) {
	res := popResult(&c.RecvResults)
	switch res {
	case api.IODone:
		if c.EchoReply != nil {
			return c.EchoReply, api.IODone, nil
		}
		return c.lastSent, api.IODone, nil
	case api.IOError:
		return nil, api.IOError, c.RecvErr
	default:
		return nil, res, nil
	}
}

func (c *Conn) Close() error {
	c.CloseCalls++
	return c.CloseErr
}

func popResult(script *[]api.IOResult) api.IOResult {
	if len(*script) == 0 {
		return api.IODone
	}
	res := (*script)[0]
	*script = (*script)[1:]
	return res
}
