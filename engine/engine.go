// File: engine/engine.go
// Author: momentics <momentics@gmail.com>
//
// Engine lifecycle, connection/packet ownership, and callback wiring.

package engine

import (
	"github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/momentics/jobmux/api"
	"github.com/momentics/jobmux/internal/poll"
	"github.com/momentics/jobmux/pool"
)

// Engine owns an ordered set of connections and outstanding packets and
// multiplexes I/O readiness across them. All iteration (Ready, FlushAll,
// Echo) follows attach order.
type Engine struct {
	id string

	ownsAllocation    bool
	trackPackets      bool
	nonBlocking       bool
	storedNonBlocking bool

	verbosity api.Verbosity
	timeoutMs int

	conns   []api.Conn
	packets []api.Packet
	sending int

	// Poll-set buffers grow to the connection high-water mark and are
	// reused across Wait calls; they never shrink.
	pfds   []api.PollFD
	polled []api.Conn
	readyQ *queue.Queue

	poller api.ReadinessPoller

	logFn        api.LogFn
	eventWatchFn api.EventWatchFn
	allocFn      api.AllocFn
	freeFn       api.FreeFn

	lastError [MaxErrorSize]byte
	errLen    int
	lastErrno int
}

// New allocates and initializes an Engine, applying each option as if
// passed to SetOption with value true.
func New(options ...Option) *Engine {
	return Init(nil, options...)
}

// Init initializes caller-provided storage in place; the storage need not
// be zeroed beforehand. Passing nil behaves like New. The returned engine
// reclaims its own storage on Free only when it allocated it itself.
func Init(e *Engine, options ...Option) *Engine {
	owns := false
	if e == nil {
		e = new(Engine)
		owns = true
	} else {
		*e = Engine{}
	}
	e.id = uuid.NewString()
	e.ownsAllocation = owns
	e.trackPackets = true
	e.timeoutMs = -1
	e.readyQ = queue.New()
	e.poller = poll.New()
	for _, opt := range options {
		_ = e.SetOption(opt, true)
	}
	return e
}

// Clone creates an engine inheriting src's configuration: option flags,
// timeout, verbosity threshold, callback registrations, and poller. It
// never copies session state; the clone starts with empty connection and
// packet collections. dst follows the same storage rules as Init.
func Clone(dst *Engine, src *Engine) *Engine {
	e := Init(dst)
	e.nonBlocking = src.nonBlocking
	e.storedNonBlocking = src.storedNonBlocking
	e.trackPackets = src.trackPackets
	e.verbosity = src.verbosity
	e.timeoutMs = src.timeoutMs
	e.logFn = src.logFn
	e.eventWatchFn = src.eventWatchFn
	e.allocFn = src.allocFn
	e.freeFn = src.freeFn
	if src.poller != nil {
		e.poller = src.poller
	}
	e.logf(api.VerboseDebug, "engine %s: cloned from %s", e.id, src.id)
	return e
}

// Free releases every owned connection and tracked packet and drops all
// internal buffers. There is no already-freed guard; calling Free twice
// on the same instance is a caller error, and the engine must not be used
// afterwards.
func (e *Engine) Free() {
	e.FreeAllConns()
	e.FreeAllPackets()
	e.pfds = nil
	e.polled = nil
	e.readyQ = nil
	e.poller = nil
	e.logFn = nil
	e.eventWatchFn = nil
	e.allocFn = nil
	e.freeFn = nil
}

// ID returns the engine's instance identifier, used in log lines.
func (e *Engine) ID() string { return e.id }

// ConnCount returns the number of attached connections.
func (e *Engine) ConnCount() int { return len(e.conns) }

// PacketCount returns the number of tracked packets.
func (e *Engine) PacketCount() int { return len(e.packets) }

// Sending returns the number of connections holding unsent output.
func (e *Engine) Sending() int { return e.sending }

// AttachConn hands exclusive ownership of c to the engine and appends it
// to the iteration order.
func (e *Engine) AttachConn(c api.Conn) {
	e.conns = append(e.conns, c)
	if c.Buffered() {
		e.sending++
	}
	e.WatchEvents(c, c.Events())
	e.logf(api.VerboseDebug, "engine %s: attach conn fd=%d events=%v", e.id, c.Fd(), c.Events())
}

// DetachConn removes c from the engine without closing it; ownership
// returns to the caller.
func (e *Engine) DetachConn(c api.Conn) error {
	for i, have := range e.conns {
		if have != c {
			continue
		}
		e.conns = append(e.conns[:i], e.conns[i+1:]...)
		if c.Buffered() && e.sending > 0 {
			e.sending--
		}
		e.logf(api.VerboseDebug, "engine %s: detach conn fd=%d", e.id, c.Fd())
		return nil
	}
	return api.ErrConnNotAttached
}

// AttachPacket links p into the engine's packet list for lifecycle
// tracking. With OptionDontTrackPackets set this is a no-op and the
// caller keeps ownership.
func (e *Engine) AttachPacket(p api.Packet) {
	if !e.trackPackets {
		return
	}
	e.packets = append(e.packets, p)
}

// DetachPacket unlinks p without releasing it. Unknown or untracked
// packets are ignored.
func (e *Engine) DetachPacket(p api.Packet) {
	for i, have := range e.packets {
		if have == p {
			e.packets = append(e.packets[:i], e.packets[i+1:]...)
			return
		}
	}
}

// FreeAllConns closes and releases every attached connection and clears
// pending readiness. The engine itself stays usable.
func (e *Engine) FreeAllConns() {
	for _, c := range e.conns {
		if err := c.Close(); err != nil {
			e.logf(api.VerboseInfo, "engine %s: close fd=%d: %v", e.id, c.Fd(), err)
		}
	}
	e.conns = nil
	e.sending = 0
	e.drainReady()
}

// FreeAllPackets releases every tracked packet exactly once.
func (e *Engine) FreeAllPackets() {
	for _, p := range e.packets {
		p.Release()
	}
	e.packets = nil
}

// SetPoller replaces the readiness primitive behind Wait. Intended for
// alternative reactors and tests; the default is the platform poller.
func (e *Engine) SetPoller(p api.ReadinessPoller) {
	if p != nil {
		e.poller = p
	}
}

// WatchEvents delivers a connection's desired-event mask to the
// registered I/O-event watcher. Connection implementations call this
// whenever their interest set changes.
func (e *Engine) WatchEvents(c api.Conn, events api.EventMask) {
	if e.eventWatchFn != nil {
		e.eventWatchFn(c, events)
	}
}

// NoteSendPending adjusts the sending count. Connection implementations
// call it with pending=true when output is first buffered and with
// pending=false once their buffer fully drains outside FlushAll.
func (e *Engine) NoteSendPending(pending bool) {
	if pending {
		e.sending++
		return
	}
	if e.sending > 0 {
		e.sending--
	}
}

// WorkloadAlloc allocates a payload buffer through the registered
// allocator, falling back to the shared default pool.
func (e *Engine) WorkloadAlloc(size int) []byte {
	if e.allocFn != nil {
		return e.allocFn(size)
	}
	return pool.Default().Get(size)
}

// WorkloadFree releases a buffer obtained from WorkloadAlloc. Registered
// alloc and free functions form a pair; mixing them with the default pool
// is a caller error.
func (e *Engine) WorkloadFree(buf []byte) {
	if e.freeFn != nil {
		e.freeFn(buf)
		return
	}
	pool.Default().Put(buf)
}

// Stats exposes engine bookkeeping for debug probes.
func (e *Engine) Stats() map[string]any {
	ready := 0
	if e.readyQ != nil {
		ready = e.readyQ.Length()
	}
	return map[string]any{
		"id":            e.id,
		"conns":         len(e.conns),
		"packets":       len(e.packets),
		"sending":       e.sending,
		"ready_pending": ready,
		"poll_set_cap":  cap(e.pfds),
		"non_blocking":  e.nonBlocking,
		"timeout_ms":    e.timeoutMs,
	}
}

func (e *Engine) attached(c api.Conn) bool {
	for _, have := range e.conns {
		if have == c {
			return true
		}
	}
	return false
}
