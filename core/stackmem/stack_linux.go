//go:build linux

// File: core/stackmem/stack_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Anonymous stack-hinted mapping with a PROT_NONE guard page at the low
// end. A wild write below the stack bottom faults instead of corrupting
// neighboring memory.

package stackmem

import (
	"log"

	"golang.org/x/sys/unix"
)

func allocPlatform(size, page int) Desc {
	raw, err := unix.Mmap(-1, 0, size+page,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_STACK)
	if err != nil {
		log.Fatalf("stackmem: mmap of %d bytes failed: %v", size+page, err)
	}
	if err := unix.Mprotect(raw[:page], unix.PROT_NONE); err != nil {
		log.Fatalf("stackmem: guard page mprotect failed: %v", err)
	}
	return Desc{raw: raw, usable: raw[page:]}
}

func freePlatform(d Desc) {
	if d.raw == nil {
		return
	}
	if err := unix.Munmap(d.raw); err != nil {
		log.Fatalf("stackmem: munmap failed: %v", err)
	}
}
