// File: scheduler/group.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task group: a completion barrier over a set of related tasks. Groups
// form chains through an optional parent; a group holds its parent open
// while it has outstanding work of its own.

package scheduler

import (
	"fmt"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-sched/core/atomics"
	"github.com/momentics/hioload-sched/core/concurrency"
)

// TaskGroup tracks the number of outstanding tasks submitted under it.
// The group completes when the counter reaches zero and every child
// group has completed. Create groups with Scheduler.CreateGroup.
//
// Contract: transitioning the counter from zero back to positive while a
// wait is in progress is forbidden; only the group's owner adds tasks
// around a wait.
type TaskGroup struct {
	outstanding atomics.Int32
	parent      *TaskGroup

	mu      sync.Mutex
	waiters *queue.Queue // parked *Context, resumed oldest first
	pulse   *concurrency.Event
}

func newTaskGroup(parent *TaskGroup) *TaskGroup {
	return &TaskGroup{
		parent:  parent,
		waiters: queue.New(),
		pulse:   concurrency.NewEvent(),
	}
}

// Outstanding returns the current count of unfinished tasks.
func (g *TaskGroup) Outstanding() int { return int(g.outstanding.Load()) }

// Parent returns the enclosing group, or nil.
func (g *TaskGroup) Parent() *TaskGroup { return g.parent }

// add registers n more outstanding tasks. The first transition from zero
// to positive holds the parent open with one unit.
func (g *TaskGroup) add(n int32) {
	if n <= 0 {
		return
	}
	if g.outstanding.AddFetch(n) == n && g.parent != nil {
		g.parent.add(1)
	}
}

// complete retires n tasks. On reaching zero the group resumes its parked
// fibers, pulses external waiters and releases its unit on the parent.
func (g *TaskGroup) complete(n int32) {
	v := g.outstanding.AddFetch(-n)
	if v < 0 {
		panic(fmt.Sprintf("scheduler: group outstanding went negative (%d)", v))
	}
	if v != 0 {
		return
	}
	g.signalCompletion()
	if g.parent != nil {
		g.parent.complete(1)
	}
}

func (g *TaskGroup) signalCompletion() {
	g.mu.Lock()
	var resumed []*Context
	for g.waiters.Length() > 0 {
		resumed = append(resumed, g.waiters.Remove().(*Context))
	}
	g.mu.Unlock()

	for _, c := range resumed {
		// Parked fibers are pinned: each resumes on the worker that last
		// ran it.
		c.worker.pendingResumes.Push(c)
		c.sched.wake.Signal()
	}
	g.pulse.Signal()
}

// park enqueues c as a waiter unless the group is already complete.
// Returns false if no wait is needed.
func (g *TaskGroup) park(c *Context) bool {
	g.mu.Lock()
	if g.outstanding.Load() == 0 {
		g.mu.Unlock()
		return false
	}
	g.waiters.Add(c)
	g.mu.Unlock()
	return true
}
