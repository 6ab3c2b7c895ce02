// File: scheduler/context.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Execution context handed to every running task. The context is bound to
// the fiber carrying the task; it survives suspension and resumption.

package scheduler

import (
	"time"

	"github.com/momentics/hioload-sched/api"
	"github.com/momentics/hioload-sched/core/atomics"
	"github.com/momentics/hioload-sched/fiber"
	"github.com/momentics/hioload-sched/pool"
)

const (
	ctxIdle int32 = iota
	ctxRunning
	ctxSuspended
	ctxFinished
)

// Context is the per-fiber task execution context. It is valid only
// inside Task.Run on the fiber it was handed to; it must not be retained
// past task completion or shared with other goroutines.
type Context struct {
	sched  *Scheduler
	worker *worker
	fib    *fiber.Fiber
	state  atomics.Int32

	handle pool.TaskHandle
	slot   *taskSlot
}

// Scheduler returns the owning scheduler.
func (c *Context) Scheduler() *Scheduler { return c.sched }

// WorkerID returns the id of the worker currently running the fiber.
func (c *Context) WorkerID() int { return c.worker.id }

// Group returns the group the current task was submitted under, or nil.
func (c *Context) Group() *TaskGroup {
	if c.slot == nil {
		return nil
	}
	return c.slot.group
}

// Scratch exposes the fiber's guard-protected stack region as a
// task-local arena. Contents are undefined across suspension points and
// between tasks; never retain the slice past Run.
func (c *Context) Scratch() []byte { return c.fib.Stack().Bytes() }

// WaitGroup suspends the calling fiber until g completes. The worker is
// not blocked: it returns to its scheduling loop and keeps executing
// other work. The fiber resumes on the same worker once g's outstanding
// count reaches zero.
func (c *Context) WaitGroup(g *TaskGroup) {
	if !g.park(c) {
		return // already complete
	}
	c.state.Store(ctxSuspended)
	c.worker.emit(api.EventFiberSwitch, "", 0)
	c.sched.observer.OnFiberSwitch(c.worker.id)
	fiber.SwitchTo(c.fib, c.worker.main)
	c.state.Store(ctxRunning)
}

// RunSubtasksAndWait submits tasks under a fresh child group of the
// current task's group and suspends until they all complete.
func (c *Context) RunSubtasksAndWait(tasks ...Task) error {
	g := c.sched.CreateGroup(c.Group())
	if err := c.sched.Submit(g, tasks...); err != nil {
		return err
	}
	c.WaitGroup(g)
	return nil
}

// fiberLoop is the entry point of every pooled fiber. It runs one task
// per wakeup, reports completion, and hands control back to the worker's
// main fiber. The loop never returns; the fiber is recycled or disposed
// through the fiber pool.
func (c *Context) fiberLoop(any) {
	for {
		w := c.worker
		s := c.sched
		slot := c.slot

		c.state.Store(ctxRunning)
		s.observer.OnTaskStart(w.id, slot.debugID, slot.color)
		w.emit(api.EventTaskStart, slot.debugID, slot.color)
		started := time.Now()

		slot.run(c)

		group := slot.group
		debugID := slot.debugID
		s.taskPool.DestroyByHandle(c.handle)
		c.handle = pool.TaskHandle{}
		c.slot = nil
		c.state.Store(ctxFinished)

		s.stats.tasksCompleted.Add(1)
		s.stats.busyNanos.Add(uint64(time.Since(started).Nanoseconds()))
		remaining := s.inFlight.Add(-1)
		s.observer.OnTaskStop(w.id, debugID)
		w.emit(api.EventTaskStop, debugID, 0)

		if group != nil {
			group.complete(1)
		}
		if remaining == 0 && s.shuttingDown() {
			s.wake.Signal()
		}

		fiber.SwitchTo(c.fib, w.main)
	}
}
