// File: core/concurrency/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded single-writer ring buffer that overwrites the oldest entries on
// overflow. Used as the per-worker profile event stream: the owning worker
// is the only pusher, observers drain a prefix of recent history.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/hioload-sched/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*ConcurrentRingBuffer[any])(nil)

// ConcurrentRingBuffer is a bounded circular buffer (power-of-two
// capacity). Push is reserved to a single writer; PopAll may run on any
// thread. On overflow the oldest values are overwritten so the buffer
// always holds the latest N pushes.
type ConcurrentRingBuffer[T any] struct {
	head atomic.Uint64
	_    [cacheLinePad]byte
	tail atomic.Uint64
	_    [cacheLinePad]byte
	mask uint64
	data []T
}

// NewConcurrentRingBuffer allocates a ring of the given capacity, which
// must be a power of two.
func NewConcurrentRingBuffer[T any](capacity int) *ConcurrentRingBuffer[T] {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("concurrency: ring buffer capacity must be a power of two")
	}
	return &ConcurrentRingBuffer[T]{
		mask: uint64(capacity - 1),
		data: make([]T, capacity),
	}
}

// Push writes v at the tail, advancing the head past overwritten entries.
// Only one goroutine may push; concurrent pushes are a contract violation.
func (r *ConcurrentRingBuffer[T]) Push(v T) {
	tail := r.tail.Load()
	r.data[tail&r.mask] = v
	r.tail.Store(tail + 1)
	if tail+1-r.head.Load() > uint64(len(r.data)) {
		r.head.Store(tail + 1 - uint64(len(r.data)))
	}
}

// PopAll drains up to len(dst) buffered values in insertion order, oldest
// first, and advances the head past the drained range. Returns the number
// of values copied. Values drained while the writer races ahead may be
// lost; observers see a prefix of recent history.
func (r *ConcurrentRingBuffer[T]) PopAll(dst []T) int {
	head := r.head.Load()
	tail := r.tail.Load()
	n := int(tail - head)
	if n <= 0 {
		return 0
	}
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = r.data[(head+uint64(i))&r.mask]
	}
	r.head.Store(head + uint64(n))
	return n
}

// Len returns the number of buffered values.
func (r *ConcurrentRingBuffer[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the fixed capacity.
func (r *ConcurrentRingBuffer[T]) Cap() int {
	return len(r.data)
}
