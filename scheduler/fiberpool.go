// File: scheduler/fiberpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded LIFO pool of idle fibers, populated lazily up to the configured
// cap. LIFO reuse keeps recently warm stacks in cache.

package scheduler

import (
	"fmt"

	"github.com/momentics/hioload-sched/core/atomics"
	"github.com/momentics/hioload-sched/core/concurrency"
	"github.com/momentics/hioload-sched/fiber"
)

type fiberPool struct {
	idle      concurrency.LockFreeStack[*Context]
	created   atomics.Int32
	cap       int32
	stackSize int
	sched     *Scheduler
}

func newFiberPool(s *Scheduler, capacity, stackSize int) *fiberPool {
	return &fiberPool{
		cap:       int32(capacity),
		stackSize: stackSize,
		sched:     s,
	}
}

// acquire pops an idle fiber or creates one while under the cap. Returns
// nil when the pool is exhausted.
func (p *fiberPool) acquire() *Context {
	if c, ok := p.idle.TryPop(); ok {
		return c
	}
	for {
		n := p.created.Load()
		if n >= p.cap {
			return nil
		}
		if p.created.CompareAndSwap(n, n+1) == n {
			break
		}
	}
	c := &Context{sched: p.sched}
	f := fiber.New()
	f.Create(p.stackSize, c.fiberLoop, nil)
	c.fib = f
	return c
}

// release returns a finished fiber to the pool.
func (p *fiberPool) release(c *Context) {
	if c.state.Load() != ctxIdle {
		panic(fmt.Sprintf("scheduler: releasing fiber in state %d", c.state.Load()))
	}
	p.idle.Push(c)
}

// disposeAll unwinds every pooled fiber. Called once during shutdown,
// after all workers have exited.
func (p *fiberPool) disposeAll() {
	for _, c := range p.idle.PopAll() {
		c.fib.Dispose()
	}
}
