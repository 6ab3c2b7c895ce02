// File: core/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency collections for the scheduler runtime: a multi-producer
// multi-consumer LIFO queue with two-ended pop and bulk drain, a bounded
// lock-free MPMC queue (Vyukov sequence cells), a Treiber LIFO stack, a
// single-writer overwrite ring buffer for event streams, and a broadcast
// wake event. All structures are fixed-cost in the steady state.
package concurrency
