// File: scheduler/worker_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-sched/api"
)

// recordingObserver counts hook invocations.
type recordingObserver struct {
	mu       sync.Mutex
	starts   int
	stops    int
	switches int
	idles    int
	resumes  int
}

func (o *recordingObserver) OnTaskStart(int, string, uint32) {
	o.mu.Lock()
	o.starts++
	o.mu.Unlock()
}
func (o *recordingObserver) OnTaskStop(int, string) {
	o.mu.Lock()
	o.stops++
	o.mu.Unlock()
}
func (o *recordingObserver) OnFiberSwitch(int) {
	o.mu.Lock()
	o.switches++
	o.mu.Unlock()
}
func (o *recordingObserver) OnWorkerIdle(int) {
	o.mu.Lock()
	o.idles++
	o.mu.Unlock()
}
func (o *recordingObserver) OnWorkerResume(int) {
	o.mu.Lock()
	o.resumes++
	o.mu.Unlock()
}

type debugTask struct {
	n *atomic.Int64
}

func (t debugTask) Run(*Context) { t.n.Add(1) }

func (t debugTask) DebugID() string { return "debug-task" }

func (t debugTask) DebugColor() uint32 { return 0x00FF00 }

func TestObserverHooks(t *testing.T) {
	obs := &recordingObserver{}
	s := New(WithWorkerCount(2), WithObserver(obs))

	var n atomic.Int64
	const k = 50
	tasks := make([]Task, k)
	for i := range tasks {
		tasks[i] = debugTask{n: &n}
	}
	g := s.CreateGroup(nil)
	if err := s.Submit(g, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 30*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	s.Shutdown()

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.starts != k || obs.stops != k {
		t.Fatalf("task hooks: starts=%d stops=%d, want %d each", obs.starts, obs.stops, k)
	}
	if obs.switches < k {
		t.Fatalf("fiber switch hook fired %d times, want at least %d", obs.switches, k)
	}
}

func TestProfileEventStream(t *testing.T) {
	s := New(WithWorkerCount(2), WithProfiling(1024))

	var n atomic.Int64
	const k = 20
	tasks := make([]Task, k)
	for i := range tasks {
		tasks[i] = debugTask{n: &n}
	}
	g := s.CreateGroup(nil)
	if err := s.Submit(g, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 30*time.Second) {
		t.Fatal("WaitGroup timed out")
	}

	buf := make([]api.ProfileEvent, 4096)
	got := s.DrainProfile(buf)
	if got == 0 {
		t.Fatal("no profile events recorded")
	}
	starts, stops := 0, 0
	for _, ev := range buf[:got] {
		switch ev.Kind {
		case api.EventTaskStart:
			starts++
			if ev.DebugID != "debug-task" {
				t.Fatalf("task start event debug id: %q", ev.DebugID)
			}
		case api.EventTaskStop:
			stops++
		}
	}
	if starts != k || stops != k {
		t.Fatalf("profile stream: starts=%d stops=%d, want %d each", starts, stops, k)
	}
	s.Shutdown()
}

func TestWorkStealingSpreadsLoad(t *testing.T) {
	const workers = 4
	s := New(WithWorkerCount(workers), WithTaskPoolSize(4096))
	defer s.Shutdown()

	// Submit spreads the tasks round-robin over the worker queues; the
	// tasks are slow enough that workers which drain early may steal from
	// the others.
	var n atomic.Int64
	const k = 400
	tasks := make([]Task, k)
	for i := range tasks {
		tasks[i] = TaskFunc(func(*Context) {
			time.Sleep(time.Millisecond)
			n.Add(1)
		})
	}
	g := s.CreateGroup(nil)
	if err := s.Submit(g, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 60*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	if n.Load() != k {
		t.Fatalf("ran %d of %d tasks", n.Load(), k)
	}
}

func TestStatsAndDumpState(t *testing.T) {
	s := New(WithWorkerCount(2))
	defer s.Shutdown()

	var n atomic.Int64
	g := s.CreateGroup(nil)
	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = countTask{n: &n}
	}
	if err := s.Submit(g, tasks...); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 30*time.Second) {
		t.Fatal("WaitGroup timed out")
	}

	st := s.Stats()
	if st.TasksSubmitted != 10 || st.TasksCompleted != 10 {
		t.Fatalf("stats: %+v", st)
	}
	if st.TasksInFlight != 0 {
		t.Fatalf("in flight after drain: %d", st.TasksInFlight)
	}
	if st.Workers != 2 {
		t.Fatalf("worker count: %d", st.Workers)
	}

	s.RegisterProbe("custom", func() any { return 42 })
	state := s.DumpState()
	if state["custom"] != 42 {
		t.Fatalf("probe output missing: %v", state["custom"])
	}
	if state["tasks_completed"].(uint64) != 10 {
		t.Fatalf("dump state counters: %v", state["tasks_completed"])
	}
}

type finalizedTask struct {
	ran       *atomic.Int64
	finalized *atomic.Int64
}

func (t *finalizedTask) Run(*Context) { t.ran.Add(1) }
func (t *finalizedTask) Destroy()     { t.finalized.Add(1) }

func TestFinalizerRunsOnceOnReclaim(t *testing.T) {
	s := New(WithWorkerCount(1))
	defer s.Shutdown()

	var ran, finalized atomic.Int64
	g := s.CreateGroup(nil)
	if err := s.Submit(g, &finalizedTask{ran: &ran, finalized: &finalized}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.WaitGroupTimeout(g, 10*time.Second) {
		t.Fatal("WaitGroup timed out")
	}
	if ran.Load() != 1 || finalized.Load() != 1 {
		t.Fatalf("ran=%d finalized=%d, want 1 each", ran.Load(), finalized.Load())
	}
}
