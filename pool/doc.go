// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity circular task pool with generation-tagged slots.
//
// Each slot carries a 32-bit generation id: odd means unused, even means a
// live payload. Allocation walks the pool with a single atomic index and
// stamps the slot with a fresh even id drawn from a strictly monotonic
// counter; release advances the slot to the next odd id. Handles pair a
// slot reference with the generation they were issued under, so a handle
// outlives slot reuse safely: validity is a pure comparison, stale handles
// simply report invalid.
package pool
