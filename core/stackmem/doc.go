// File: core/stackmem/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Page-aligned allocation of guarded stack regions. On Linux the region is
// an anonymous, read/write, non-executable, stack-hinted mapping with one
// PROT_NONE guard page at the low end; elsewhere a heap-backed fallback
// provides the same descriptor contract without the guard.
//
// The Go runtime owns execution stacks, so fibers use these regions as
// their per-fiber scratch arenas: fixed-size, guard-protected memory a
// task can use without allocating. The descriptor contract (top, bottom,
// size, ownership) matches what the fiber layer expects from a stack.
package stackmem
