package engine_test

import (
	"testing"

	"github.com/momentics/jobmux/api"
	"github.com/momentics/jobmux/engine"
	"github.com/momentics/jobmux/fake"
)

func TestNewDefaults(t *testing.T) {
	e := engine.New()
	if e == nil {
		t.Fatal("New returned nil")
	}
	if e.ConnCount() != 0 || e.PacketCount() != 0 {
		t.Errorf("fresh engine has conns=%d packets=%d", e.ConnCount(), e.PacketCount())
	}
	if e.IsNonBlocking() {
		t.Error("fresh engine is non-blocking")
	}
	if e.Timeout() >= 0 {
		t.Errorf("default timeout = %d, want negative (block indefinitely)", e.Timeout())
	}
	if e.LastError() != "" {
		t.Errorf("fresh engine has error %q", e.LastError())
	}
	if e.Errno() != 0 {
		t.Errorf("fresh engine has errno %d", e.Errno())
	}
	if e.ID() == "" {
		t.Error("engine has empty ID")
	}
}

func TestNewAppliesOptions(t *testing.T) {
	e := engine.New(engine.OptionNonBlocking)
	if !e.IsNonBlocking() {
		t.Error("OptionNonBlocking not applied by New")
	}
}

func TestInitReusesDirtyStorage(t *testing.T) {
	var storage engine.Engine
	e := engine.Init(&storage)
	e.AttachConn(fake.NewConn(1, api.EventRead))
	e.SetTimeout(250)

	// Re-initializing the same storage must not inherit prior session state.
	e = engine.Init(&storage)
	if e.ConnCount() != 0 {
		t.Errorf("re-initialized engine has %d conns", e.ConnCount())
	}
	if e.Timeout() != -1 {
		t.Errorf("re-initialized timeout = %d, want -1", e.Timeout())
	}
}

func TestCloneCopiesConfigurationNotState(t *testing.T) {
	var logged int
	var watched int

	src := engine.New(engine.OptionNonBlocking, engine.OptionDontTrackPackets)
	src.SetTimeout(5000)
	src.SetLogFn(func(level api.Verbosity, msg string) { logged++ }, api.VerboseError)
	src.SetEventWatchFn(func(c api.Conn, ev api.EventMask) { watched++ })
	src.SetPoller(fake.NewPoller())
	src.AttachConn(fake.NewConn(1, api.EventRead))
	pkt := &fake.Packet{}
	src.AttachPacket(pkt) // untracked: OptionDontTrackPackets is set

	dup := engine.Clone(nil, src)
	if dup.ID() == src.ID() {
		t.Error("clone shares the source ID")
	}
	if !dup.IsNonBlocking() {
		t.Error("clone lost non-blocking option")
	}
	if dup.Timeout() != 5000 {
		t.Errorf("clone timeout = %d, want 5000", dup.Timeout())
	}
	if dup.Verbosity() != api.VerboseError {
		t.Errorf("clone verbosity = %v, want %v", dup.Verbosity(), api.VerboseError)
	}
	if dup.ConnCount() != 0 || dup.PacketCount() != 0 {
		t.Errorf("clone inherited session state: conns=%d packets=%d", dup.ConnCount(), dup.PacketCount())
	}
	if dup.AttachPacket(&fake.Packet{}); dup.PacketCount() != 0 {
		t.Error("clone lost the dont-track-packets option")
	}

	// Registered callbacks must be live on the clone.
	dup.SetError("test", "boom")
	if logged == 0 {
		t.Error("clone did not inherit the log sink")
	}
	before := watched
	dup.AttachConn(fake.NewConn(2, api.EventWrite))
	if watched != before+1 {
		t.Error("clone did not inherit the event watcher")
	}
}

func TestFreeReleasesEverythingExactlyOnce(t *testing.T) {
	e := engine.New()
	conns := []*fake.Conn{
		fake.NewConn(1, api.EventRead),
		fake.NewConn(2, api.EventRead),
		fake.NewConn(3, api.EventWrite),
	}
	for _, c := range conns {
		e.AttachConn(c)
	}
	packets := []*fake.Packet{{}, {}}
	for _, p := range packets {
		e.AttachPacket(p)
	}

	e.Free()

	for i, c := range conns {
		if c.CloseCalls != 1 {
			t.Errorf("conn %d closed %d times, want 1", i, c.CloseCalls)
		}
	}
	for i, p := range packets {
		if p.Releases != 1 {
			t.Errorf("packet %d released %d times, want 1", i, p.Releases)
		}
	}
}

func TestFreeAllConnsResetsCountAndSending(t *testing.T) {
	e := engine.New()
	a := fake.NewConn(1, api.EventWrite)
	a.Pending = true
	e.AttachConn(a)
	e.AttachConn(fake.NewConn(2, api.EventRead))
	if e.Sending() != 1 {
		t.Fatalf("sending = %d, want 1", e.Sending())
	}

	e.FreeAllConns()
	if e.ConnCount() != 0 {
		t.Errorf("conn count = %d after FreeAllConns", e.ConnCount())
	}
	if e.Sending() != 0 {
		t.Errorf("sending = %d after FreeAllConns", e.Sending())
	}
	if a.CloseCalls != 1 {
		t.Errorf("conn closed %d times, want 1", a.CloseCalls)
	}
}

func TestFreeAllPacketsReleasesTrackedOnly(t *testing.T) {
	e := engine.New()
	tracked := &fake.Packet{}
	e.AttachPacket(tracked)

	if err := e.SetOption(engine.OptionDontTrackPackets, true); err != nil {
		t.Fatalf("SetOption: %v", err)
	}
	borrowed := &fake.Packet{}
	e.AttachPacket(borrowed)
	if e.PacketCount() != 1 {
		t.Fatalf("packet count = %d, want 1 (borrowed packet must not be linked)", e.PacketCount())
	}

	e.FreeAllPackets()
	if tracked.Releases != 1 {
		t.Errorf("tracked packet released %d times, want 1", tracked.Releases)
	}
	if borrowed.Releases != 0 {
		t.Errorf("borrowed packet released %d times, want 0", borrowed.Releases)
	}
	if e.PacketCount() != 0 {
		t.Errorf("packet count = %d after FreeAllPackets", e.PacketCount())
	}
}

func TestDetachConn(t *testing.T) {
	e := engine.New()
	c := fake.NewConn(1, api.EventRead)
	e.AttachConn(c)
	if err := e.DetachConn(c); err != nil {
		t.Fatalf("DetachConn: %v", err)
	}
	if e.ConnCount() != 0 {
		t.Errorf("conn count = %d after detach", e.ConnCount())
	}
	if c.CloseCalls != 0 {
		t.Error("detach must not close the connection")
	}
	if err := e.DetachConn(c); err != api.ErrConnNotAttached {
		t.Errorf("second detach err = %v, want ErrConnNotAttached", err)
	}
}

func TestDetachPacket(t *testing.T) {
	e := engine.New()
	p := &fake.Packet{}
	e.AttachPacket(p)
	e.DetachPacket(p)
	if e.PacketCount() != 0 {
		t.Errorf("packet count = %d after detach", e.PacketCount())
	}
	e.FreeAllPackets()
	if p.Releases != 0 {
		t.Error("detached packet released on teardown")
	}
}

func TestEventWatchOnAttach(t *testing.T) {
	e := engine.New()
	var gotConn api.Conn
	var gotMask api.EventMask
	e.SetEventWatchFn(func(c api.Conn, ev api.EventMask) {
		gotConn = c
		gotMask = ev
	})
	c := fake.NewConn(7, api.EventRead|api.EventWrite)
	e.AttachConn(c)
	if gotConn != api.Conn(c) {
		t.Error("event watch not invoked with attached conn")
	}
	if gotMask != api.EventRead|api.EventWrite {
		t.Errorf("event watch mask = %v", gotMask)
	}

	e.WatchEvents(c, api.EventWrite)
	if gotMask != api.EventWrite {
		t.Errorf("event watch mask after change = %v, want write", gotMask)
	}
}

func TestNoteSendPendingFloorsAtZero(t *testing.T) {
	e := engine.New()
	e.NoteSendPending(false)
	if e.Sending() != 0 {
		t.Errorf("sending = %d, want 0", e.Sending())
	}
	e.NoteSendPending(true)
	e.NoteSendPending(true)
	if e.Sending() != 2 {
		t.Errorf("sending = %d, want 2", e.Sending())
	}
	e.NoteSendPending(false)
	if e.Sending() != 1 {
		t.Errorf("sending = %d, want 1", e.Sending())
	}
}

func TestWorkloadAllocDefaultPool(t *testing.T) {
	e := engine.New()
	buf := e.WorkloadAlloc(64)
	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	e.WorkloadFree(buf)
}

func TestWorkloadAllocCustomPair(t *testing.T) {
	e := engine.New()
	allocs, frees := 0, 0
	e.SetWorkloadAllocFn(func(size int) []byte {
		allocs++
		return make([]byte, size)
	})
	e.SetWorkloadFreeFn(func(buf []byte) { frees++ })

	buf := e.WorkloadAlloc(16)
	e.WorkloadFree(buf)
	if allocs != 1 || frees != 1 {
		t.Errorf("allocs=%d frees=%d, want 1/1", allocs, frees)
	}
}

func TestStats(t *testing.T) {
	e := engine.New()
	e.AttachConn(fake.NewConn(1, api.EventRead))
	e.AttachPacket(&fake.Packet{})
	stats := e.Stats()
	if stats["conns"] != 1 {
		t.Errorf("stats conns = %v, want 1", stats["conns"])
	}
	if stats["packets"] != 1 {
		t.Errorf("stats packets = %v, want 1", stats["packets"])
	}
	if stats["id"] != e.ID() {
		t.Errorf("stats id = %v, want %s", stats["id"], e.ID())
	}
}
