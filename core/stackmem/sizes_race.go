//go:build race

// File: core/stackmem/sizes_race.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stackmem

// DefaultStackSize under the race detector. Instrumented builds need far
// more headroom per region.
const DefaultStackSize = 576 * 1024
