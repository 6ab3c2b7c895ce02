// Package api
// Author: momentics <momentics@gmail.com>
//
// Shared contracts of the scheduler runtime: observer hooks for
// instrumentation, the profile event record emitted by workers, and the
// ring contract the profile stream is drained through. The core consumes
// these interfaces; implementations are optional and may be no-ops.
package api
