// File: fiber/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cooperative execution contexts with symmetric switching.
//
// A Fiber is either adopted from the calling thread or created fresh with
// an entry point and its own guarded stack region. SwitchTo transfers
// control from one fiber to the other: the switching fiber parks until
// someone switches back to it, and at most one of the two runs at any
// moment. Fibers migrate freely between worker threads; a full memory
// barrier ahead of every switch keeps stores made before the switch
// visible wherever the fiber resumes.
//
// The Go runtime owns machine-level context switching, so a created fiber
// is carried by a dedicated goroutine parked on a resume channel, and its
// allocated stack region serves as the fiber's scratch arena. The
// cooperative contract is the same as a raw swapcontext implementation:
// an entry function must switch away rather than return while a switch
// partner is waiting on it.
package fiber
