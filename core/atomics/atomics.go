// File: core/atomics/atomics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomics

import "sync/atomic"

// Int32 is a 32-bit atomic integer.
//
// All operations are sequentially consistent unless the name says
// otherwise. Store returns the previous value (exchange semantics), which
// is what pool generation bookkeeping relies on.
type Int32 struct {
	v atomic.Int32
}

// NewInt32 returns an Int32 holding val.
func NewInt32(val int32) *Int32 {
	i := &Int32{}
	i.v.Store(val)
	return i
}

// Load returns the current value.
func (i *Int32) Load() int32 { return i.v.Load() }

// Store sets the value and returns the previous one.
func (i *Int32) Store(val int32) int32 { return i.v.Swap(val) }

// StoreRelaxed sets the value without ordering guarantees beyond what the
// Go memory model provides. Go exposes no relaxed atomics; the distinction
// is kept at the API level so call sites document their intent.
func (i *Int32) StoreRelaxed(val int32) { i.v.Store(val) }

// IncFetch increments and returns the new value.
func (i *Int32) IncFetch() int32 { return i.v.Add(1) }

// DecFetch decrements and returns the new value.
func (i *Int32) DecFetch() int32 { return i.v.Add(-1) }

// AddFetch adds delta and returns the new value.
func (i *Int32) AddFetch(delta int32) int32 { return i.v.Add(delta) }

// CompareAndSwap sets the value to newVal iff it currently equals expected.
// It returns the value observed before the operation: equal to expected on
// success, the conflicting value otherwise.
func (i *Int32) CompareAndSwap(expected, newVal int32) int32 {
	for {
		cur := i.v.Load()
		if cur != expected {
			return cur
		}
		if i.v.CompareAndSwap(expected, newVal) {
			return expected
		}
	}
}

// Pointer is an atomic typed pointer.
type Pointer[T any] struct {
	p atomic.Pointer[T]
}

// Load returns the current pointer.
func (p *Pointer[T]) Load() *T { return p.p.Load() }

// Store sets the pointer and returns the previous one.
func (p *Pointer[T]) Store(val *T) *T { return p.p.Swap(val) }

// StoreRelaxed sets the pointer. See Int32.StoreRelaxed.
func (p *Pointer[T]) StoreRelaxed(val *T) { p.p.Store(val) }

// CompareAndSwap sets the pointer to newVal iff it currently equals
// expected, returning the pointer observed before the operation.
func (p *Pointer[T]) CompareAndSwap(expected, newVal *T) *T {
	for {
		cur := p.p.Load()
		if cur != expected {
			return cur
		}
		if p.p.CompareAndSwap(expected, newVal) {
			return expected
		}
	}
}
