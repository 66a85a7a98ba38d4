// File: api/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "fmt"

// TaskID identifies a scheduled task for its lifetime.
type TaskID uint64

// TaskState describes where a task sits in its lifecycle.
//
// Created -> Running on first resume. From Running a task either
// terminates, or suspends into a wait registry, or is re-enqueued Ready.
// Terminated is final; a terminated task never reappears in any queue.
type TaskState uint8

const (
	TaskCreated TaskState = iota
	TaskReady
	TaskRunning
	TaskSuspended
	TaskTerminated
)

// String returns the state name for logs and diagnostics.
func (s TaskState) String() string {
	switch s {
	case TaskCreated:
		return "created"
	case TaskReady:
		return "ready"
	case TaskRunning:
		return "running"
	case TaskSuspended:
		return "suspended"
	case TaskTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}
