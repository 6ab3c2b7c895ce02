// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity of worker threads. Platform
// implementations live in build-tagged siblings.

package affinity

import "runtime"

// PinCurrentThread binds the calling OS thread to the given logical CPU.
// The caller must already hold the thread (runtime.LockOSThread). On
// unsupported platforms pinning is a no-op and nil is returned.
func PinCurrentThread(cpuID int) error {
	return pinPlatform(cpuID)
}

// UnpinCurrentThread clears any CPU binding of the calling thread.
func UnpinCurrentThread() error {
	return unpinPlatform()
}

// NumCPUs returns the number of logical CPUs.
func NumCPUs() int {
	return runtime.NumCPU()
}
