// Package api
// Author: momentics <momentics@gmail.com>
//
// Optional observer callbacks invoked by the scheduler runtime. All hooks
// run on hot paths; implementations must be cheap and must not block.

package api

// Observer receives scheduler lifecycle callbacks. Any method may be a
// no-op; a nil Observer disables instrumentation entirely.
type Observer interface {
	// OnTaskStart fires when a worker begins executing a task.
	OnTaskStart(workerID int, debugID string, color uint32)

	// OnTaskStop fires when a task completes.
	OnTaskStop(workerID int, debugID string)

	// OnFiberSwitch fires when a worker switches into a task fiber and
	// when a task fiber parks on a group. The switch back to the worker
	// after a task finishes does not fire it.
	OnFiberSwitch(workerID int)

	// OnWorkerIdle fires when a worker runs out of work and blocks.
	OnWorkerIdle(workerID int)

	// OnWorkerResume fires when an idle worker wakes.
	OnWorkerResume(workerID int)
}

// NopObserver is an Observer that ignores every callback.
type NopObserver struct{}

func (NopObserver) OnTaskStart(int, string, uint32) {}
func (NopObserver) OnTaskStop(int, string)          {}
func (NopObserver) OnFiberSwitch(int)               {}
func (NopObserver) OnWorkerIdle(int)                {}
func (NopObserver) OnWorkerResume(int)              {}

var _ Observer = NopObserver{}
