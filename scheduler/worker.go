// File: scheduler/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker thread: owns a local LIFO task queue and a pending-resume list,
// runs the scheduling loop, steals from siblings when starved. Owners pop
// the back of their queue for locality; thieves take the front so the two
// ends do not contend.

package scheduler

import (
	"log"
	"runtime"
	"time"

	"github.com/momentics/hioload-sched/affinity"
	"github.com/momentics/hioload-sched/api"
	"github.com/momentics/hioload-sched/core/atomics"
	"github.com/momentics/hioload-sched/core/concurrency"
	"github.com/momentics/hioload-sched/fiber"
	"github.com/momentics/hioload-sched/pool"
)

type worker struct {
	id    int
	sched *Scheduler

	localQueue     concurrency.ConcurrentQueueLIFO[pool.TaskHandle]
	pendingResumes concurrency.ConcurrentQueueLIFO[*Context]

	main       *fiber.Fiber
	stealNonce atomics.Int32
	events     *concurrency.ConcurrentRingBuffer[api.ProfileEvent]
}

func newWorker(id int, s *Scheduler) *worker {
	w := &worker{id: id, sched: s}
	if s.cfg.ProfileRingSize > 0 {
		w.events = concurrency.NewConcurrentRingBuffer[api.ProfileEvent](s.cfg.ProfileRingSize)
	}
	return w
}

// emit records a profile event. Only this worker's thread pushes into its
// ring, honoring the single-writer contract.
func (w *worker) emit(kind api.ProfileEventKind, debugID string, color uint32) {
	if w.events == nil {
		return
	}
	w.events.Push(api.ProfileEvent{
		Kind:      kind,
		WorkerID:  int32(w.id),
		DebugID:   debugID,
		Color:     color,
		Timestamp: time.Now().UnixNano(),
	})
}

// run is the worker thread body.
func (w *worker) run() {
	defer w.sched.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if w.sched.cfg.PinWorkers {
		if err := affinity.PinCurrentThread(w.id % affinity.NumCPUs()); err != nil {
			log.Printf("scheduler: worker %d pinning failed: %v", w.id, err)
		}
	}

	w.main = fiber.New()
	w.main.AdoptCurrent()
	defer w.main.Dispose()

	for {
		// Grab the pulse channel before checking queues so a submission
		// racing with the checks is not lost.
		wakeCh := w.sched.wake.Chan()

		// 1. Resume a fiber waking from a wait.
		if c, ok := w.pendingResumes.TryPopBack(); ok {
			w.switchIn(c)
			continue
		}
		// 2. Most recent local work first.
		if h, ok := w.localQueue.TryPopBack(); ok {
			w.runTask(h)
			continue
		}
		// 3. Overflow spill.
		if h, ok := w.sched.overflow.Dequeue(); ok {
			w.runTask(h)
			continue
		}
		// 4. Steal from a sibling.
		if h, ok := w.steal(); ok {
			w.runTask(h)
			continue
		}
		// 5. Exit once shutdown is set and nothing is in flight anywhere.
		if w.sched.shuttingDown() && w.sched.inFlight.Load() == 0 {
			return
		}
		// 6. Idle.
		w.sched.observer.OnWorkerIdle(w.id)
		w.emit(api.EventWorkerIdle, "", 0)
		t := time.NewTimer(w.sched.cfg.IdleTimeout)
		select {
		case <-wakeCh:
		case <-t.C:
		}
		t.Stop()
		w.sched.observer.OnWorkerResume(w.id)
		w.emit(api.EventWorkerResume, "", 0)
	}
}

// runTask executes one queued task on a pool fiber.
func (w *worker) runTask(h pool.TaskHandle) {
	slot := w.sched.taskPool.Get(h)
	if slot == nil {
		return // stale handle, task already reclaimed
	}
	c := w.sched.fibers.acquire()
	if c == nil {
		panic("scheduler: fiber pool exhausted; raise FiberPoolSize or reduce concurrent waits")
	}
	c.handle = h
	c.slot = slot
	w.switchIn(c)
}

// switchIn transfers control to a fiber and sorts out its state when it
// hands control back.
func (w *worker) switchIn(c *Context) {
	c.worker = w
	w.sched.observer.OnFiberSwitch(w.id)
	w.emit(api.EventFiberSwitch, "", 0)
	fiber.SwitchTo(w.main, c.fib)

	switch c.state.Load() {
	case ctxFinished:
		c.state.Store(ctxIdle)
		w.sched.fibers.release(c)
	case ctxSuspended:
		// Parked on a group's waiter list; the group resumes it.
	default:
		panic("scheduler: fiber returned to worker in an unexpected state")
	}
}

// steal fetches a task from another worker's queue, oldest first.
// Victims are probed in a randomized order derived from the worker id and
// a per-worker nonce.
func (w *worker) steal() (pool.TaskHandle, bool) {
	workers := w.sched.workers
	n := len(workers)
	if n < 2 {
		return pool.TaskHandle{}, false
	}
	offset := w.id + int(w.stealNonce.IncFetch())
	if offset < 0 {
		offset = -offset
	}
	for i := 0; i < n; i++ {
		victim := workers[(offset+i)%n]
		if victim == w {
			continue
		}
		if h, ok := victim.localQueue.TryPopFront(); ok {
			w.sched.stats.steals.Add(1)
			w.emit(api.EventTaskStolen, "", 0)
			return h, true
		}
	}
	return pool.TaskHandle{}, false
}
