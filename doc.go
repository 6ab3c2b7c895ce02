// Package hioloadsched is a fiber-based task scheduler core for CPU-bound,
// fine-grained parallelism on multi-core machines.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The library decomposes work into small tasks, expresses dependencies
// between them through task groups, and executes them on a fixed set of
// worker threads. A task may suspend itself to wait on child tasks without
// blocking its worker: execution runs on cooperatively scheduled fibers
// that can be parked and later resumed.
//
// Package layout:
//
//   - core/atomics      typed atomic primitives and memory barrier
//   - core/concurrency  lock-free and guarded collections, wake event
//   - core/stackmem     page-aligned guarded stack allocation
//   - fiber             cooperative execution contexts with symmetric switch
//   - pool              generation-tagged task pool and handles
//   - scheduler         workers, task groups, work stealing, public surface
//   - api               observer hooks and shared contracts
//   - affinity          optional CPU pinning for worker threads
//   - observability     Prometheus export of runtime statistics
//
// See the scheduler package for the entry point.
package hioloadsched
