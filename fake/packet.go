// File: fake/packet.go
// Author: momentics <momentics@gmail.com>

package fake

import "github.com/momentics/jobmux/api"

var _ api.Packet = (*Packet)(nil)

// Packet counts release calls so tests can assert exactly-once teardown.
type Packet struct {
	Releases int
}

func (p *Packet) Release() { p.Releases++ }
