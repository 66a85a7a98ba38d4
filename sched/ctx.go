// File: sched/ctx.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"time"

	"github.com/momentics/coopsched/api"
)

// Ctx is the handle a running task uses to cooperate with its scheduler.
// Every method that suspends returns only after the scheduler has resumed
// the task; no data is threaded back through resumption.
//
// A Ctx is valid only inside the task body it was passed to. A descriptor
// handed to WaitRead or WaitWrite is on loan to the scheduler until the
// call returns; the task regains exclusive use upon resumption.
type Ctx struct {
	s *Scheduler
	t *task
}

// ID returns the identity of the running task.
func (c *Ctx) ID() api.TaskID { return c.t.id }

// Yield gives up the remainder of this tick; the task is re-enqueued at
// the tail of the ready queue and runs again on a later tick.
func (c *Ctx) Yield() {
	c.suspend(api.Immediate())
}

// WaitRead suspends until fd is readable.
func (c *Ctx) WaitRead(fd int) {
	c.suspend(api.ReadReady(fd))
}

// WaitWrite suspends until fd is writable.
func (c *Ctx) WaitWrite(fd int) {
	c.suspend(api.WriteReady(fd))
}

// Sleep suspends until at least d has elapsed. The deadline is fixed at
// the moment of suspension.
func (c *Ctx) Sleep(d time.Duration) {
	c.suspend(api.Delay(d))
}

// Fork requests a new independent sibling task running fn and re-enqueues
// the caller for the next tick. The spawned task is enqueued ahead of the
// caller; there is no join primitive and the caller never observes the
// sibling's termination.
func (c *Ctx) Fork(fn TaskFunc) {
	c.t.yield <- yieldResult{kind: yieldSpawn, spawn: fn}
	c.park()
}

func (c *Ctx) suspend(r api.WaitReason) {
	c.t.yield <- yieldResult{kind: yieldWait, reason: r}
	c.park()
}

// park blocks until the scheduler hands the control token back. When the
// scheduler is abandoning tasks at shutdown the goroutine is unwound
// instead of resumed; deferred cleanup in the task body still runs.
func (c *Ctx) park() {
	<-c.t.resume
	if c.t.abandoned {
		panic(errAbandoned)
	}
}
