// File: pool/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-sched/core/atomics"

// IDUnused is the initial odd generation marking a slot free. Odd values
// always denote unused slots, even values live ones.
const IDUnused int32 = 1

// slotHeader is the shared, type-erased head of every pool slot.
type slotHeader struct {
	id atomics.Int32
}

// TaskHandle is a cheap, copyable reference to a pool slot. It does not
// own the slot; once the slot is released or reused the handle cleanly
// reports invalid. The zero value is an invalid handle.
type TaskHandle struct {
	check int32
	index int32
	hdr   *slotHeader
}

// IsValid reports whether the handle still refers to the allocation it
// was issued for.
func (h TaskHandle) IsValid() bool {
	return h.hdr != nil && h.hdr.id.Load() == h.check
}

// Generation returns the generation id the handle was issued under.
func (h TaskHandle) Generation() int32 { return h.check }

// Index returns the slot index inside the owning pool, or -1 for the zero
// handle.
func (h TaskHandle) Index() int {
	if h.hdr == nil {
		return -1
	}
	return int(h.index)
}
