// File: core/stackmem/stack.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stackmem

import (
	"os"
	"unsafe"
)

// Desc describes an allocated stack region. Top is the address one past
// the highest usable byte (stacks grow downward), Bottom the lowest
// usable byte.
type Desc struct {
	raw    []byte // full mapping including the guard page, nil for fallback
	usable []byte
}

// Top returns the address one past the highest usable byte.
func (d Desc) Top() uintptr {
	if len(d.usable) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&d.usable[len(d.usable)-1])) + 1
}

// Bottom returns the address of the lowest usable byte.
func (d Desc) Bottom() uintptr {
	if len(d.usable) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&d.usable[0]))
}

// Size returns the usable size in bytes.
func (d Desc) Size() int { return len(d.usable) }

// Bytes exposes the usable region.
func (d Desc) Bytes() []byte { return d.usable }

// IsZero reports whether the descriptor holds no region.
func (d Desc) IsZero() bool { return d.usable == nil }

// Alloc allocates a guarded stack region of at least size bytes, rounded
// up to the page size.
func Alloc(size int) Desc {
	page := os.Getpagesize()
	if size < page {
		size = page
	}
	size = (size + page - 1) &^ (page - 1)
	return allocPlatform(size, page)
}

// Free releases the region. Descriptors from Alloc must be freed exactly
// once; freeing a zero Desc is a no-op.
func Free(d Desc) {
	if d.IsZero() {
		return
	}
	freePlatform(d)
}
