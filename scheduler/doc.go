// File: scheduler/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fiber-based task scheduler: the public entry point of the runtime.
//
// A Scheduler owns a fixed set of worker threads, a generation-tagged
// task pool, a pool of reusable fibers and a global wake event. Callers
// submit tasks under a TaskGroup; workers execute them on fibers, steal
// from each other when idle, and a task may suspend itself on a child
// group without blocking its worker thread.
//
//	s := scheduler.New(scheduler.WithWorkerCount(8))
//	defer s.Shutdown()
//
//	g := s.CreateGroup(nil)
//	s.Submit(g, tasks...)
//	s.WaitGroup(g)
//
// Inside a task, Context.RunSubtasksAndWait submits children and parks
// the calling fiber until they complete; the worker keeps executing other
// work in the meantime.
package scheduler
