// File: engine/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package engine implements the jobmux connection/packet multiplexing
// core: a single-threaded session object that owns a set of abstract
// connections and outstanding protocol packets, polls them for readiness,
// and provides the flush, echo, and teardown primitives the job-queue
// client and worker layers are built on.
//
// There is no locking inside an Engine. For threaded applications either
// keep one Engine per goroutine or wrap every call into a shared instance
// with external mutual exclusion. Wait is the only call that blocks (for
// up to the configured timeout); detaching a connection while a Wait is
// in flight on another goroutine is unsupported.
package engine
