// File: api/wait.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import (
	"fmt"
	"time"
)

// WaitKind tags the condition a suspended task is blocked on.
type WaitKind uint8

const (
	// WaitImmediate requeues the task for the next tick.
	WaitImmediate WaitKind = iota
	// WaitReadReady blocks the task until its descriptor is readable.
	WaitReadReady
	// WaitWriteReady blocks the task until its descriptor is writable.
	WaitWriteReady
	// WaitDelay blocks the task until a relative delay elapses.
	WaitDelay
)

// String returns the kind name for logs and diagnostics.
func (k WaitKind) String() string {
	switch k {
	case WaitImmediate:
		return "immediate"
	case WaitReadReady:
		return "read-ready"
	case WaitWriteReady:
		return "write-ready"
	case WaitDelay:
		return "delay"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// WaitReason is the tagged descriptor a task yields when it suspends.
// FD is meaningful for the I/O kinds, Delay for WaitDelay. The delay is
// relative; the scheduler converts it to an absolute deadline at the
// moment of suspension.
type WaitReason struct {
	Kind  WaitKind
	FD    int
	Delay time.Duration
}

// Immediate returns a reason that requeues the task on the next tick.
func Immediate() WaitReason {
	return WaitReason{Kind: WaitImmediate}
}

// ReadReady returns a reason blocking on fd readability.
func ReadReady(fd int) WaitReason {
	return WaitReason{Kind: WaitReadReady, FD: fd}
}

// WriteReady returns a reason blocking on fd writability.
func WriteReady(fd int) WaitReason {
	return WaitReason{Kind: WaitWriteReady, FD: fd}
}

// Delay returns a reason blocking until d elapses.
func Delay(d time.Duration) WaitReason {
	return WaitReason{Kind: WaitDelay, Delay: d}
}
