// File: pool/default.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

var (
	defaultOnce sync.Once
	defaultPool *BytePool
)

// Default returns the process-wide workload buffer pool so all engines
// without a custom allocator reuse the same backing storage.
func Default() *BytePool {
	defaultOnce.Do(func() {
		defaultPool = NewBytePool()
	})
	return defaultPool
}
