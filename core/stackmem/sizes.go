//go:build !race

// File: core/stackmem/sizes.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package stackmem

// DefaultStackSize is the minimum scratch stack handed to a fiber.
const DefaultStackSize = 32 * 1024
