// File: scheduler/debug.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Live debug introspection: a state snapshot plus dynamically registered
// probes for diagnostics.

package scheduler

import "sync"

type probeRegistry struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// RegisterProbe registers a named debug probe evaluated by DumpState.
func (s *Scheduler) RegisterProbe(name string, fn func() any) {
	s.probes.mu.Lock()
	if s.probes.probes == nil {
		s.probes.probes = make(map[string]func() any)
	}
	s.probes.probes[name] = fn
	s.probes.mu.Unlock()
}

// DumpState emits a snapshot of scheduler state for diagnostics: queue
// depths, counters and the output of every registered probe.
func (s *Scheduler) DumpState() map[string]any {
	st := s.Stats()
	out := map[string]any{
		"workers":         st.Workers,
		"tasks_submitted": st.TasksSubmitted,
		"tasks_completed": st.TasksCompleted,
		"tasks_in_flight": st.TasksInFlight,
		"steals":          st.Steals,
		"fibers_created":  st.FibersCreated,
		"fibers_idle":     st.FibersIdle,
		"overflow_depth":  s.overflow.Len(),
		"shutting_down":   s.shuttingDown(),
	}
	depths := make([]int, len(s.workers))
	pending := make([]int, len(s.workers))
	for i, w := range s.workers {
		depths[i] = w.localQueue.Len()
		pending[i] = w.pendingResumes.Len()
	}
	out["local_queue_depths"] = depths
	out["pending_resume_depths"] = pending

	s.probes.mu.RLock()
	for name, fn := range s.probes.probes {
		out[name] = fn()
	}
	s.probes.mu.RUnlock()
	return out
}
