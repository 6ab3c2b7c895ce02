// File: scheduler/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-sched/api"
	"github.com/momentics/hioload-sched/core/atomics"
	"github.com/momentics/hioload-sched/core/concurrency"
	"github.com/momentics/hioload-sched/pool"
)

// Scheduler owns the workers, the task pool, the fiber pool and the
// global wake event. All resource bounds are fixed at construction.
type Scheduler struct {
	cfg Config

	workers  []*worker
	taskPool *pool.TaskPool[taskSlot]
	fibers   *fiberPool
	overflow *concurrency.LockFreeQueue[pool.TaskHandle]
	wake     *concurrency.Event

	rr       atomics.Int32
	shutdown atomics.Int32
	inFlight atomic.Int64

	observer api.Observer
	stats    statCounters
	probes   probeRegistry
	wg       sync.WaitGroup
}

// New constructs a scheduler and starts its worker threads.
func New(opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.normalize()

	s := &Scheduler{
		cfg:      cfg,
		overflow: concurrency.NewLockFreeQueue[pool.TaskHandle](cfg.TaskPoolSize),
		wake:     concurrency.NewEvent(),
		observer: cfg.Observer,
	}
	if s.observer == nil {
		s.observer = api.NopObserver{}
	}
	s.taskPool = pool.New(cfg.TaskPoolSize, destroySlot)
	s.fibers = newFiberPool(s, cfg.FiberPoolSize, cfg.StackSize)

	s.workers = make([]*worker, cfg.WorkerCount)
	for i := range s.workers {
		s.workers[i] = newWorker(i, s)
	}
	for _, w := range s.workers {
		s.wg.Add(1)
		go w.run()
	}
	return s
}

// WorkerCount returns the number of worker threads.
func (s *Scheduler) WorkerCount() int { return len(s.workers) }

// CreateGroup creates a task group, optionally nested under parent.
// A group with outstanding work holds its parent open.
func (s *Scheduler) CreateGroup(parent *TaskGroup) *TaskGroup {
	return newTaskGroup(parent)
}

// Submit allocates pool slots for the tasks, registers them with g (which
// may be nil for fire-and-forget work) and distributes the handles
// round-robin over the worker queues, spilling to the global overflow
// queue when a local queue is saturated. One wake signal is raised after
// the batch. Returns ErrSchedulerClosed once Shutdown has started.
func (s *Scheduler) Submit(g *TaskGroup, tasks ...Task) error {
	if s.shuttingDown() {
		return ErrSchedulerClosed
	}
	if g != nil {
		// One batch add: the counter never transiently hits zero while
		// early tasks of the batch complete ahead of later pushes.
		g.add(int32(len(tasks)))
	}
	for _, t := range tasks {
		h := s.taskPool.Alloc(makeSlot(t, g))
		s.inFlight.Add(1)
		s.stats.tasksSubmitted.Add(1)

		idx := int(s.rr.IncFetch() - 1)
		if idx < 0 {
			idx = -idx
		}
		w := s.workers[idx%len(s.workers)]
		if w.localQueue.Len() >= s.cfg.SpillThreshold && s.overflow.Enqueue(h) {
			continue
		}
		w.localQueue.Push(h)
	}
	s.wake.Signal()
	return nil
}

// WaitGroup blocks the calling thread until g completes. This is the
// entry point for code running outside any task; a blocking OS wait is
// performed. Inside a task use Context.WaitGroup, which suspends the
// fiber instead of blocking the worker.
func (s *Scheduler) WaitGroup(g *TaskGroup) {
	s.waitGroup(g, 0)
}

// WaitGroupTimeout is WaitGroup with a deadline. Returns false on
// timeout. A non-positive timeout waits indefinitely.
func (s *Scheduler) WaitGroupTimeout(g *TaskGroup, timeout time.Duration) bool {
	return s.waitGroup(g, timeout)
}

func (s *Scheduler) waitGroup(g *TaskGroup, timeout time.Duration) bool {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		ch := g.pulse.Chan()
		if g.outstanding.Load() == 0 {
			return true
		}
		if timeout <= 0 {
			<-ch
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		t := time.NewTimer(remaining)
		select {
		case <-ch:
			t.Stop()
		case <-t.C:
			return false
		}
	}
}

// Shutdown rejects further submissions, runs all queued tasks to
// completion, joins the workers and disposes pooled fibers. Idempotent;
// concurrent calls block until the first one finishes.
func (s *Scheduler) Shutdown() {
	first := s.shutdown.CompareAndSwap(0, 1) == 0
	if first {
		s.wake.Signal()
		s.wg.Wait()
		s.fibers.disposeAll()
		s.shutdown.Store(2)
		return
	}
	for s.shutdown.Load() != 2 {
		time.Sleep(time.Millisecond)
	}
}

func (s *Scheduler) shuttingDown() bool { return s.shutdown.Load() != 0 }

// DrainProfile copies buffered profile events from all worker rings into
// dst, oldest first per worker. Returns the number of events copied.
// Profiling must be enabled with WithProfiling.
func (s *Scheduler) DrainProfile(dst []api.ProfileEvent) int {
	total := 0
	for _, w := range s.workers {
		if w.events == nil || total == len(dst) {
			break
		}
		total += w.events.PopAll(dst[total:])
	}
	return total
}
