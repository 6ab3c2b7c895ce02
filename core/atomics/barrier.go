// File: core/atomics/barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomics

import (
	"runtime"
	"sync/atomic"
)

var barrierWord int32

// FullBarrier issues a full memory barrier: all stores issued before the
// call are visible to any CPU that subsequently synchronizes on the same
// word. Go has no fence intrinsic; a sequentially consistent read-modify-
// write on a shared word has the same total-order effect.
func FullBarrier() {
	atomic.AddInt32(&barrierWord, 1)
}

// YieldCPU hints the runtime to let another goroutine run on this thread,
// for use in spin loops between CAS retries.
func YieldCPU() {
	runtime.Gosched()
}
