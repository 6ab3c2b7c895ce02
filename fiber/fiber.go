// File: fiber/fiber.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fiber

import (
	"github.com/momentics/hioload-sched/core/atomics"
	"github.com/momentics/hioload-sched/core/stackmem"
)

// EntryPoint is a fiber entry function.
type EntryPoint func(userData any)

type signal uint8

const (
	sigResume signal = iota
	sigRelease
)

// fiberReleased unwinds a disposed fiber's goroutine through its deferred
// handlers.
type fiberReleased struct{}

// Fiber is a cooperative execution context.
//
// Exactly one of two modes holds: the fiber owns a fresh stack region and
// a parked goroutine (Create), or it borrows the calling thread's context
// (AdoptCurrent). Only owned stacks are freed by Dispose. A fiber may be
// active on at most one thread at any time.
type Fiber struct {
	entry       EntryPoint
	userData    any
	stack       stackmem.Desc
	resume      chan signal
	initialized bool
	finished    atomics.Int32
}

// New returns an uninitialized carrier. Initialize it with AdoptCurrent or
// Create before use.
func New() *Fiber {
	return &Fiber{}
}

// AdoptCurrent initializes f from the calling goroutine: the caller's own
// execution context becomes this fiber, with its stack borrowed rather
// than owned. The adopted fiber must be switched FROM before the thread
// can run any other fiber.
func (f *Fiber) AdoptCurrent() {
	if f.initialized {
		panic("fiber: already initialized")
	}
	f.entry = nil
	f.userData = nil
	f.resume = make(chan signal, 1)
	f.initialized = true
}

// Create initializes f with a fresh guarded stack region of at least
// stackSize bytes (never below stackmem.DefaultStackSize, rounded up to
// whole pages) and an entry point. No user code runs until the first
// SwitchTo targeting f.
func (f *Fiber) Create(stackSize int, entry EntryPoint, userData any) {
	if f.initialized {
		panic("fiber: already initialized")
	}
	if entry == nil {
		panic("fiber: nil entry point")
	}
	if stackSize < stackmem.DefaultStackSize {
		stackSize = stackmem.DefaultStackSize
	}
	f.entry = entry
	f.userData = userData
	f.stack = stackmem.Alloc(stackSize)
	f.resume = make(chan signal, 1)
	f.initialized = true

	go f.trampoline()
}

// trampoline parks until the first switch-in, then runs the entry point.
// A release signal, before or during execution, unwinds cleanly.
func (f *Fiber) trampoline() {
	defer func() {
		f.finished.Store(1)
		if r := recover(); r != nil {
			if _, ok := r.(fiberReleased); ok {
				return
			}
			panic(r)
		}
	}()
	if s := <-f.resume; s == sigRelease {
		return
	}
	f.entry(f.userData)
}

// Stack returns the fiber's stack descriptor. Zero for adopted fibers.
func (f *Fiber) Stack() stackmem.Desc { return f.stack }

// IsInitialized reports whether the fiber can be switched to.
func (f *Fiber) IsInitialized() bool { return f != nil && f.initialized }

// ownsStack reports stack ownership: created fibers own, adopted borrow.
func (f *Fiber) ownsStack() bool { return f.entry != nil }

// SwitchTo transfers control from the currently running fiber to another.
// It must be called on from's thread. All stores made by from before the
// call are visible to to after it resumes, on whichever CPU that happens.
func SwitchTo(from, to *Fiber) {
	if !from.IsInitialized() || !to.IsInitialized() {
		panic("fiber: switch between uninitialized fibers")
	}
	atomics.FullBarrier()
	to.resume <- sigResume
	if s := <-from.resume; s == sigRelease {
		panic(fiberReleased{})
	}
}

// Dispose releases the fiber. For created fibers parked at a switch point
// the carrier goroutine is unwound; the owned stack region is freed. The
// fiber must not be running. Adopted fibers only drop their borrowed
// state. Dispose is idempotent.
func (f *Fiber) Dispose() {
	if f == nil || !f.initialized {
		return
	}
	f.initialized = false
	if f.ownsStack() {
		if f.finished.Load() == 0 {
			// Parked at <-resume inside trampoline or SwitchTo.
			f.resume <- sigRelease
		}
		stackmem.Free(f.stack)
		f.stack = stackmem.Desc{}
	}
}
