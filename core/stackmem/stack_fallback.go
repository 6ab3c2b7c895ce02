//go:build !linux

// File: core/stackmem/stack_fallback.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Heap-backed fallback for platforms without the mmap path. No guard page;
// the descriptor contract is otherwise identical.

package stackmem

func allocPlatform(size, _ int) Desc {
	return Desc{usable: make([]byte, size)}
}

func freePlatform(Desc) {}
