// File: scheduler/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

// Task is the unit of caller-supplied work. Any type with a Run method
// qualifies; no registration or embedding is required.
type Task interface {
	// Run executes the task. ctx is valid only for the duration of the
	// call and on later resumes after ctx.WaitGroup.
	Run(ctx *Context)
}

// Finalizer is an optional Task capability: Destroy is called exactly
// once when the task's pool slot is reclaimed after completion.
type Finalizer interface {
	Destroy()
}

// Debuggable is an optional Task capability supplying an instrumentation
// id and color for observer hooks and profile events.
type Debuggable interface {
	DebugID() string
	DebugColor() uint32
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func(ctx *Context)

// Run implements Task.
func (f TaskFunc) Run(ctx *Context) { f(ctx) }

// taskSlot is the type-erased payload stored in the scheduler's task
// pool. Built once at submission; immutable afterwards.
type taskSlot struct {
	run     func(*Context)
	destroy func()
	group   *TaskGroup
	debugID string
	color   uint32
}

func makeSlot(t Task, g *TaskGroup) taskSlot {
	s := taskSlot{run: t.Run, group: g}
	if fin, ok := t.(Finalizer); ok {
		s.destroy = fin.Destroy
	}
	if dbg, ok := t.(Debuggable); ok {
		s.debugID = dbg.DebugID()
		s.color = dbg.DebugColor()
	}
	return s
}

func destroySlot(s *taskSlot) {
	if s.destroy != nil {
		s.destroy()
	}
}
