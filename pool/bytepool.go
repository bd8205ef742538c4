// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
//
// bytebufferpool-backed workload buffer pool. Handed-out slices are
// tracked by their base pointer so Put can return the backing buffer.

package pool

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// BytePool hands out workload payload buffers backed by a shared
// bytebufferpool. Safe for concurrent use; engines on different threads
// may share one pool.
type BytePool struct {
	mu   sync.Mutex
	live map[*byte]*bytebufferpool.ByteBuffer
}

// NewBytePool creates an empty workload buffer pool.
func NewBytePool() *BytePool {
	return &BytePool{
		live: make(map[*byte]*bytebufferpool.ByteBuffer),
	}
}

// Get returns a buffer of exactly size bytes. Size zero or below yields nil.
func (p *BytePool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	bb := bytebufferpool.Get()
	if cap(bb.B) < size {
		bb.B = make([]byte, size)
	} else {
		bb.B = bb.B[:size]
	}
	buf := bb.B
	p.mu.Lock()
	p.live[&buf[0]] = bb
	p.mu.Unlock()
	return buf
}

// Put returns a buffer obtained from Get. Buffers the pool does not
// recognize (or nil) are left to the GC.
func (p *BytePool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	key := &buf[0]
	p.mu.Lock()
	bb, ok := p.live[key]
	if ok {
		delete(p.live, key)
	}
	p.mu.Unlock()
	if ok {
		bytebufferpool.Put(bb)
	}
}

// Outstanding reports how many buffers are handed out and not yet returned.
func (p *BytePool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}
