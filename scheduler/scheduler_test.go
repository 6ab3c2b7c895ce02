// File: scheduler/scheduler_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

type countTask struct {
	n *atomic.Int64
}

func (t countTask) Run(*Context) { t.n.Add(1) }

func TestFanOut(t *testing.T) {
	const k = 10000

	s := New(WithTaskPoolSize(16384))
	defer s.Shutdown()

	var n atomic.Int64
	tasks := make([]Task, k)
	for i := range tasks {
		tasks[i] = countTask{n: &n}
	}

	g := s.CreateGroup(nil)
	if err := s.Submit(g, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 30*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	if got := n.Load(); got != k {
		t.Fatalf("lost increments: got %d, want %d", got, k)
	}
	if g.Outstanding() != 0 {
		t.Fatalf("group outstanding after wait: %d", g.Outstanding())
	}
}

func TestFanOutSingleWorker(t *testing.T) {
	const k = 1000

	s := New(WithWorkerCount(1), WithTaskPoolSize(2048))
	defer s.Shutdown()

	var n atomic.Int64
	tasks := make([]Task, k)
	for i := range tasks {
		tasks[i] = countTask{n: &n}
	}
	g := s.CreateGroup(nil)
	if err := s.Submit(g, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 30*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	if got := n.Load(); got != k {
		t.Fatalf("got %d increments, want %d", got, k)
	}
}

// A task that suspends on a child group must not block its worker: with a
// single worker, an independent task queued behind the parent's children
// runs while the parent is parked, before those children complete.
func TestNestedWaitDoesNotBlockWorker(t *testing.T) {
	s := New(WithWorkerCount(1), WithTaskPoolSize(64))
	defer s.Shutdown()

	var (
		childrenQueued      atomic.Int32
		p2Submitted         atomic.Int32
		p2SawChildrenAlive  atomic.Int32
		childRuns           atomic.Int32
		p1ResumedAfterChild atomic.Int32
	)

	childGroup := s.CreateGroup(nil)

	p1 := TaskFunc(func(ctx *Context) {
		// Queue the children, then hold the worker until the independent
		// task is in the queue behind them, then park. The worker pops
		// LIFO, so it reaches the independent task first.
		err := ctx.Scheduler().Submit(childGroup,
			TaskFunc(func(*Context) { childRuns.Add(1) }),
			TaskFunc(func(*Context) { childRuns.Add(1) }),
		)
		if err != nil {
			t.Errorf("child submit: %v", err)
			return
		}
		childrenQueued.Store(1)
		deadline := time.Now().Add(10 * time.Second)
		for p2Submitted.Load() == 0 {
			if time.Now().After(deadline) {
				t.Error("independent task was never submitted")
				return
			}
			runtime.Gosched()
		}
		ctx.WaitGroup(childGroup)
		if childRuns.Load() == 2 {
			p1ResumedAfterChild.Store(1)
		}
	})

	p2 := TaskFunc(func(*Context) {
		if childGroup.Outstanding() == 2 {
			p2SawChildrenAlive.Store(1)
		}
	})

	g1 := s.CreateGroup(nil)
	if err := s.Submit(g1, p1); err != nil {
		t.Fatalf("Submit p1: %v", err)
	}
	for childrenQueued.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	g2 := s.CreateGroup(nil)
	if err := s.Submit(g2, p2); err != nil {
		t.Fatalf("Submit p2: %v", err)
	}
	p2Submitted.Store(1)

	if !s.WaitGroupTimeout(g1, 30*time.Second) {
		t.Fatal("parent group timed out: suspension blocked the worker")
	}
	if !s.WaitGroupTimeout(g2, 30*time.Second) {
		t.Fatal("independent group timed out")
	}
	if p2SawChildrenAlive.Load() != 1 {
		t.Fatal("independent task must run before the parked task's children complete")
	}
	if p1ResumedAfterChild.Load() != 1 {
		t.Fatal("parent must resume only after its children completed")
	}
}

func TestRunSubtasksAndWait(t *testing.T) {
	s := New(WithWorkerCount(2), WithTaskPoolSize(256))
	defer s.Shutdown()

	var leaves atomic.Int64
	root := TaskFunc(func(ctx *Context) {
		children := make([]Task, 8)
		for i := range children {
			children[i] = TaskFunc(func(ctx *Context) {
				grand := []Task{
					TaskFunc(func(*Context) { leaves.Add(1) }),
					TaskFunc(func(*Context) { leaves.Add(1) }),
				}
				if err := ctx.RunSubtasksAndWait(grand...); err != nil {
					t.Errorf("grandchildren: %v", err)
				}
			})
		}
		if err := ctx.RunSubtasksAndWait(children...); err != nil {
			t.Errorf("children: %v", err)
		}
	})

	g := s.CreateGroup(nil)
	if err := s.Submit(g, root); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 30*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	if got := leaves.Load(); got != 16 {
		t.Fatalf("leaf executions: got %d, want 16", got)
	}
}

func TestShutdownDrainsQueuedTasks(t *testing.T) {
	const n = 1000

	s := New(WithTaskPoolSize(2048))

	var done atomic.Int64
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = countTask{n: &done}
	}
	if err := s.Submit(nil, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	s.Shutdown()

	if got := done.Load(); got != n {
		t.Fatalf("shutdown returned before drain: %d of %d tasks ran", got, n)
	}
}

func TestSubmitAfterShutdownRejected(t *testing.T) {
	s := New()
	s.Shutdown()
	if err := s.Submit(nil, TaskFunc(func(*Context) {})); err != ErrSchedulerClosed {
		t.Fatalf("Submit after shutdown: got %v, want ErrSchedulerClosed", err)
	}
	// Shutdown is idempotent.
	s.Shutdown()
}

func TestGroupParentChain(t *testing.T) {
	s := New(WithWorkerCount(2))
	defer s.Shutdown()

	parent := s.CreateGroup(nil)
	child := s.CreateGroup(parent)
	if child.Parent() != parent {
		t.Fatal("Parent accessor")
	}

	var ran atomic.Int64
	if err := s.Submit(child, countTask{n: &ran}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// The parent is held open by the child's outstanding work.
	if !s.WaitGroupTimeout(parent, 30*time.Second) {
		t.Fatal("parent group never completed")
	}
	if ran.Load() != 1 {
		t.Fatal("child task did not run")
	}
	if child.Outstanding() != 0 || parent.Outstanding() != 0 {
		t.Fatalf("counters not drained: child=%d parent=%d",
			child.Outstanding(), parent.Outstanding())
	}
}

func TestWaitOnEmptyGroupReturnsImmediately(t *testing.T) {
	s := New(WithWorkerCount(1))
	defer s.Shutdown()
	g := s.CreateGroup(nil)
	if !s.WaitGroupTimeout(g, time.Second) {
		t.Fatal("wait on an empty group must return immediately")
	}
}

func TestSchedulerScratchArena(t *testing.T) {
	s := New(WithWorkerCount(1), WithStackSize(64*1024))
	defer s.Shutdown()

	var size atomic.Int64
	g := s.CreateGroup(nil)
	err := s.Submit(g, TaskFunc(func(ctx *Context) {
		b := ctx.Scratch()
		b[0] = 1
		b[len(b)-1] = 2
		size.Store(int64(len(b)))
	}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 10*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	if size.Load() < 64*1024 {
		t.Fatalf("scratch arena %d bytes, want at least %d", size.Load(), 64*1024)
	}
}
