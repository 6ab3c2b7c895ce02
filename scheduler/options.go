// File: scheduler/options.go
// Package scheduler defines functional options for Scheduler construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"runtime"
	"time"

	"github.com/momentics/hioload-sched/api"
	"github.com/momentics/hioload-sched/core/stackmem"
)

// Config holds the resource bounds of a scheduler. All bounds are fixed
// at construction. The runtime still allocates in the steady state: each
// wake signal creates a new channel, each idle wait a timer, and each
// submission and pooled-fiber push allocates small objects.
type Config struct {
	// WorkerCount is the number of worker threads. Defaults to the
	// hardware concurrency.
	WorkerCount int

	// FiberPoolSize caps how many fibers may exist at once.
	FiberPoolSize int

	// StackSize is the per-fiber scratch stack size. Rounded up to the
	// build's minimum and to whole pages.
	StackSize int

	// TaskPoolSize is the task pool capacity, a power of two.
	TaskPoolSize int

	// IdleTimeout bounds how long an idle worker sleeps between re-checks
	// of its queues.
	IdleTimeout time.Duration

	// SpillThreshold is the local queue depth at or above which
	// submissions spill to the global overflow queue.
	SpillThreshold int

	// ProfileRingSize is the per-worker profile event ring capacity
	// (power of two). Zero disables profile events.
	ProfileRingSize int

	// PinWorkers binds each worker thread to a CPU.
	PinWorkers bool

	// Observer receives lifecycle callbacks. Nil disables them.
	Observer api.Observer
}

func defaultConfig() Config {
	return Config{
		WorkerCount:    runtime.NumCPU(),
		FiberPoolSize:  128,
		StackSize:      stackmem.DefaultStackSize,
		TaskPoolSize:   4096,
		IdleTimeout:    10 * time.Millisecond,
		SpillThreshold: 256,
	}
}

func (c *Config) normalize() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if c.FiberPoolSize <= 0 {
		c.FiberPoolSize = 128
	}
	if c.StackSize < stackmem.DefaultStackSize {
		c.StackSize = stackmem.DefaultStackSize
	}
	if c.TaskPoolSize < 2 {
		c.TaskPoolSize = 4096
	}
	for c.TaskPoolSize&(c.TaskPoolSize-1) != 0 {
		c.TaskPoolSize++
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 10 * time.Millisecond
	}
	if c.SpillThreshold <= 0 {
		c.SpillThreshold = 256
	}
	if c.ProfileRingSize < 0 {
		c.ProfileRingSize = 0
	}
	for c.ProfileRingSize != 0 && c.ProfileRingSize&(c.ProfileRingSize-1) != 0 {
		c.ProfileRingSize++
	}
}

// Option customizes scheduler construction.
type Option func(*Config)

// WithWorkerCount sets the number of worker threads.
func WithWorkerCount(n int) Option {
	return func(c *Config) { c.WorkerCount = n }
}

// WithFiberPoolSize caps the fiber pool.
func WithFiberPoolSize(n int) Option {
	return func(c *Config) { c.FiberPoolSize = n }
}

// WithStackSize sets the per-fiber scratch stack size.
func WithStackSize(n int) Option {
	return func(c *Config) { c.StackSize = n }
}

// WithTaskPoolSize sets the task pool capacity (rounded up to a power of
// two).
func WithTaskPoolSize(n int) Option {
	return func(c *Config) { c.TaskPoolSize = n }
}

// WithIdleTimeout sets the idle worker re-check interval.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Config) { c.IdleTimeout = d }
}

// WithObserver attaches lifecycle callbacks.
func WithObserver(o api.Observer) Option {
	return func(c *Config) { c.Observer = o }
}

// WithPinning binds worker threads to CPUs.
func WithPinning() Option {
	return func(c *Config) { c.PinWorkers = true }
}

// WithProfiling enables per-worker profile event rings of the given
// capacity (rounded up to a power of two).
func WithProfiling(ringSize int) Option {
	return func(c *Config) { c.ProfileRingSize = ringSize }
}
