// File: api/packet.go
// Author: momentics <momentics@gmail.com>
//
// Packet collaborator contract. The engine treats packets as opaque units;
// encoding and command semantics belong to the codec layer above.

package api

// Packet is an opaque protocol payload unit.
//
// When the engine tracks packets it calls Release exactly once during
// teardown; with tracking disabled the caller owns the lifecycle.
type Packet interface {
	// Release frees the resources backing the packet. A released packet
	// must not be used again.
	Release()
}
