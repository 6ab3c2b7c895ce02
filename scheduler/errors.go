// File: scheduler/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package scheduler

import "errors"

var (
	// ErrSchedulerClosed indicates a submission after Shutdown started.
	ErrSchedulerClosed = errors.New("scheduler is closed")
)
