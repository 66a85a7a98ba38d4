// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSchedulerRunning is returned when Run is entered twice.
	ErrSchedulerRunning = errors.New("coopsched: scheduler already running")

	// ErrUnknownWaitKind is recorded as a task fault when a suspension
	// carries an unrecognized wait tag. The task is terminated loudly
	// rather than silently dropped.
	ErrUnknownWaitKind = errors.New("coopsched: unknown wait kind")

	// ErrUnsupportedPlatform is returned when no readiness backend exists
	// for the build target.
	ErrUnsupportedPlatform = errors.New("coopsched: no readiness backend for this platform")
)

// TaskPanicError records an unhandled panic escaping a task body.
type TaskPanicError struct {
	Task  TaskID
	Value any
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("coopsched: task %d panicked: %v", e.Task, e.Value)
}
