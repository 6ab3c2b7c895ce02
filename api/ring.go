// Package api
// Author: momentics <momentics@gmail.com>
//
// Contract of the overwrite ring the profile stream flows through.

package api

// Ring is a bounded, lossy-on-overflow buffer of recent values.
type Ring[T any] interface {
	// Push appends a value, overwriting the oldest on overflow.
	Push(v T)
	// PopAll drains up to len(dst) values in insertion order.
	PopAll(dst []T) int
	// Len returns the current number of buffered values.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
}
