//go:build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No-op affinity for platforms without a pinning implementation.

package affinity

func pinPlatform(int) error { return nil }

func unpinPlatform() error { return nil }
