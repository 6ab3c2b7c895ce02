// File: core/concurrency/lock_free_stack.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Treiber stack: lock-free LIFO over a CAS'd head pointer. Node identity
// is never reused across pops, so the classic ABA hazard does not apply
// under Go's garbage collector.

package concurrency

import "sync/atomic"

// LockFreeStack is an unbounded lock-free LIFO stack.
type LockFreeStack[T any] struct {
	head atomic.Pointer[stackNode[T]]
	size atomic.Int64
}

type stackNode[T any] struct {
	next *stackNode[T]
	v    T
}

// Push adds v on top of the stack.
func (s *LockFreeStack[T]) Push(v T) {
	n := &stackNode[T]{v: v}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			s.size.Add(1)
			return
		}
	}
}

// TryPop removes and returns the most recently pushed element.
func (s *LockFreeStack[T]) TryPop() (T, bool) {
	for {
		old := s.head.Load()
		if old == nil {
			var zero T
			return zero, false
		}
		if s.head.CompareAndSwap(old, old.next) {
			s.size.Add(-1)
			return old.v, true
		}
	}
}

// PopAll detaches the whole stack and returns its contents, most recent
// first.
func (s *LockFreeStack[T]) PopAll() []T {
	var old *stackNode[T]
	for {
		old = s.head.Load()
		if old == nil {
			return nil
		}
		if s.head.CompareAndSwap(old, nil) {
			break
		}
	}
	var out []T
	for n := old; n != nil; n = n.next {
		out = append(out, n.v)
		s.size.Add(-1)
	}
	return out
}

// Len returns the approximate element count.
func (s *LockFreeStack[T]) Len() int {
	return int(s.size.Load())
}
