// File: fake/poller.go
// Author: momentics <momentics@gmail.com>

package fake

import "github.com/momentics/jobmux/api"

var _ api.ReadinessPoller = (*Poller)(nil)

// Poller is a scripted api.ReadinessPoller. With no configuration every
// call reports zero ready descriptors, which the engine classifies as a
// timeout.
type Poller struct {
	// ReadySet maps descriptors to the readiness to report for them.
	ReadySet map[int]api.EventMask

	// Err, when set, fails every call.
	Err error

	// PollFunc overrides all other behavior when non-nil.
	PollFunc func(fds []api.PollFD, timeoutMs int) (int, error)

	Calls       int
	LastTimeout int
	LastFDs     int
}

// NewPoller creates an empty scripted poller.
func NewPoller() *Poller {
	return &Poller{}
}

func (p *Poller) Poll(fds []api.PollFD, timeoutMs int) (int, error) {
	p.Calls++
	p.LastTimeout = timeoutMs
	p.LastFDs = len(fds)
	if p.PollFunc != nil {
		return p.PollFunc(fds, timeoutMs)
	}
	if p.Err != nil {
		return 0, p.Err
	}
	n := 0
	for i := range fds {
		m, ok := p.ReadySet[fds[i].FD]
		if !ok || m == 0 {
			continue
		}
		fds[i].Revents = m
		n++
	}
	return n, nil
}
