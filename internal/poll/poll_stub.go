//go:build !unix

// File: internal/poll/poll_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub readiness primitive for platforms without poll(2).

package poll

import "github.com/momentics/jobmux/api"

// SysPoller is a placeholder on non-Unix platforms.
type SysPoller struct{}

// New returns a poller whose Poll always fails with api.ErrNotSupported.
func New() *SysPoller {
	return &SysPoller{}
}

// Poll reports that no readiness primitive is available.
func (p *SysPoller) Poll(_ []api.PollFD, _ int) (int, error) {
	return 0, api.ErrNotSupported
}
