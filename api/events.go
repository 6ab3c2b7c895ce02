// Package api
// Author: momentics <momentics@gmail.com>
//
// Profile event records. Each worker writes events into its own
// single-writer ring; observers drain a prefix of recent history.

package api

// ProfileEventKind discriminates profile event records.
type ProfileEventKind uint8

const (
	EventTaskStart ProfileEventKind = iota
	EventTaskStop
	EventFiberSwitch
	EventWorkerIdle
	EventWorkerResume
	EventTaskStolen
)

// String returns the metric-safe name of the kind.
func (k ProfileEventKind) String() string {
	switch k {
	case EventTaskStart:
		return "task_start"
	case EventTaskStop:
		return "task_stop"
	case EventFiberSwitch:
		return "fiber_switch"
	case EventWorkerIdle:
		return "worker_idle"
	case EventWorkerResume:
		return "worker_resume"
	case EventTaskStolen:
		return "task_stolen"
	default:
		return "unknown"
	}
}

// ProfileEvent is one instrumentation record.
type ProfileEvent struct {
	Kind      ProfileEventKind
	WorkerID  int32
	DebugID   string
	Color     uint32
	Timestamp int64 // wall-clock Unix nanoseconds
}
