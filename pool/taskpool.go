// File: pool/taskpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"

	"github.com/momentics/hioload-sched/core/atomics"
)

// TaskPool is a fixed-capacity circular slab of T payloads. Capacity must
// be a power of two. Allocation is lock-free: one atomic fetch-add picks
// the slot, a per-slot generation stamp publishes it.
type TaskPool[T any] struct {
	headers []slotHeader
	slots   []T
	destroy func(*T)
	idGen   atomics.Int32
	index   atomics.Int32
	mask    int32
}

// New creates a pool of the given capacity (power of two). destroy, when
// non-nil, tears down a payload as its slot is released.
func New[T any](capacity int, destroy func(*T)) *TaskPool[T] {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("pool: capacity must be a power of two")
	}
	p := &TaskPool[T]{
		headers: make([]slotHeader, capacity),
		slots:   make([]T, capacity),
		destroy: destroy,
		mask:    int32(capacity - 1),
	}
	for i := range p.headers {
		p.headers[i].id.StoreRelaxed(IDUnused)
	}
	return p
}

// Cap returns the pool capacity.
func (p *TaskPool[T]) Cap() int { return len(p.slots) }

// TryAlloc places task into the next circular slot and returns a handle
// for it. If that slot still holds a live payload the pool is full at this
// position and the zero (invalid) handle is returned; the caller may back
// off and retry.
func (p *TaskPool[T]) TryAlloc(task T) TaskHandle {
	idx := (p.index.IncFetch() - 1) & p.mask
	hdr := &p.headers[idx]

	if hdr.id.Load()&1 == 0 {
		// Slot still live: next element in the circular buffer is in use.
		return TaskHandle{}
	}

	id := p.idGen.AddFetch(2) // fresh even generation
	p.slots[idx] = task
	hdr.id.Store(id) // publish last
	return TaskHandle{check: id, index: idx, hdr: hdr}
}

// Alloc is TryAlloc that treats exhaustion as a programming error.
func (p *TaskPool[T]) Alloc(task T) TaskHandle {
	h := p.TryAlloc(task)
	if !h.IsValid() {
		panic(fmt.Sprintf("pool: allocation failed, pool of %d slots exhausted", len(p.slots)))
	}
	return h
}

// Get resolves a handle to its payload. Returns nil for stale or zero
// handles.
func (p *TaskPool[T]) Get(h TaskHandle) *T {
	if !h.IsValid() {
		return nil
	}
	return &p.slots[h.index]
}

// DestroyByHandle tears down the payload referenced by h and releases its
// slot by advancing the generation to the next odd id. Stale handles are
// ignored: the call is idempotent and returns false.
func (p *TaskPool[T]) DestroyByHandle(h TaskHandle) bool {
	if h.hdr == nil {
		return false
	}
	// Claim the slot with an even (still-live) intermediate so allocators
	// keep skipping it while the payload is torn down. Only the holder of
	// the current generation wins the claim.
	if p.headers[h.index].id.CompareAndSwap(h.check, h.check+2) != h.check {
		return false
	}
	if p.destroy != nil {
		p.destroy(&p.slots[h.index])
	}
	var zero T
	p.slots[h.index] = zero
	p.headers[h.index].id.Store(h.check + 1) // release: next odd id
	return true
}
