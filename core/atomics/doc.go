// File: core/atomics/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Typed atomic primitives used across the scheduler runtime: a 32-bit
// atomic integer, an atomic typed pointer, a full memory barrier and a
// CPU yield hint. The operation set mirrors what the runtime needs for
// generation counters, group bookkeeping and lock-free structures.
package atomics
