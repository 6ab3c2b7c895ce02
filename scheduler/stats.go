// File: scheduler/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import "sync/atomic"

type statCounters struct {
	tasksSubmitted atomic.Uint64
	tasksCompleted atomic.Uint64
	steals         atomic.Uint64
	busyNanos      atomic.Uint64
}

// Stats is a point-in-time snapshot of scheduler counters. TasksSubmitted,
// TasksCompleted, Steals and BusyNanos are cumulative since construction;
// the other fields are current values.
type Stats struct {
	TasksSubmitted uint64
	TasksCompleted uint64
	TasksInFlight  int64
	Steals         uint64
	BusyNanos      uint64
	Workers        int
	FibersCreated  int
	FibersIdle     int
}

// Stats returns a snapshot of the runtime counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		TasksSubmitted: s.stats.tasksSubmitted.Load(),
		TasksCompleted: s.stats.tasksCompleted.Load(),
		TasksInFlight:  s.inFlight.Load(),
		Steals:         s.stats.steals.Load(),
		BusyNanos:      s.stats.busyNanos.Load(),
		Workers:        len(s.workers),
		FibersCreated:  int(s.fibers.created.Load()),
		FibersIdle:     s.fibers.idle.Len(),
	}
}
