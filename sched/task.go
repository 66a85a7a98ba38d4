// File: sched/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"errors"

	"github.com/momentics/coopsched/api"
)

// TaskFunc is the body of a cooperatively scheduled task.
type TaskFunc func(*Ctx)

type taskKind uint8

const (
	taskUser taskKind = iota
	taskPoller
)

type yieldKind uint8

const (
	yieldWait yieldKind = iota
	yieldSpawn
	yieldDone
)

// yieldResult is the tagged value a task hands back when it returns the
// control token: a wait request, a spawn request, or completion.
type yieldResult struct {
	kind   yieldKind
	reason api.WaitReason
	spawn  TaskFunc
	fault  error
}

// errAbandoned unwinds a parked task goroutine when the scheduler stops.
// It is recognized by the task wrapper and never surfaces as a fault.
var errAbandoned = errors.New("coopsched: task abandoned")

// task wraps one resumable computation. The goroutine behind fn runs only
// while the scheduler is blocked in resumeNext; control passes through
// the resume and yield channels, never concurrently.
type task struct {
	id        api.TaskID
	kind      taskKind
	fn        TaskFunc
	ctx       *Ctx
	state     api.TaskState
	resume    chan struct{}
	yield     chan yieldResult
	abandoned bool
	fault     error
}

func newTask(id api.TaskID, kind taskKind, fn TaskFunc) *task {
	return &task{
		id:     id,
		kind:   kind,
		fn:     fn,
		state:  api.TaskCreated,
		resume: make(chan struct{}),
		yield:  make(chan yieldResult),
	}
}

// resumeNext hands the control token to the task and blocks until the
// task yields it back. The first resume starts the goroutine; later
// resumes signal the parked suspension point.
func (t *task) resumeNext() yieldResult {
	first := t.state == api.TaskCreated
	t.state = api.TaskRunning
	if first {
		go t.bootstrap(t.ctx)
	} else {
		t.resume <- struct{}{}
	}
	return <-t.yield
}

func (t *task) bootstrap(c *Ctx) {
	defer func() {
		res := yieldResult{kind: yieldDone}
		if v := recover(); v != nil {
			if err, ok := v.(error); !ok || !errors.Is(err, errAbandoned) {
				res.fault = &api.TaskPanicError{Task: t.id, Value: v}
			}
		}
		t.yield <- res
	}()
	t.fn(c)
}
