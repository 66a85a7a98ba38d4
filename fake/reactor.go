// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/coopsched/api"
)

// WaitCall records one readiness poll as seen by the fake reactor.
type WaitCall struct {
	Read      []int
	Write     []int
	TimeoutMs int
}

// Reactor is a scripted api.Reactor for deterministic scheduler tests.
// Responses come from OnWait when set, otherwise from the scripted queue
// (one entry per call, empty once exhausted).
type Reactor struct {
	mu      sync.Mutex
	calls   []WaitCall
	scripts [][]api.Event
	errs    []error
	wakeups int
	closed  bool

	// OnWait, when non-nil, replaces the scripted queue. Tests use it to
	// advance a fake clock by the observed timeout.
	OnWait func(call WaitCall) ([]api.Event, error)
}

// NewReactor returns an empty fake reactor.
func NewReactor() *Reactor {
	return &Reactor{}
}

// Script appends one Wait response to the queue.
func (r *Reactor) Script(events ...api.Event) {
	r.mu.Lock()
	r.scripts = append(r.scripts, events)
	r.errs = append(r.errs, nil)
	r.mu.Unlock()
}

// ScriptErr appends one failing Wait response to the queue.
func (r *Reactor) ScriptErr(err error) {
	r.mu.Lock()
	r.scripts = append(r.scripts, nil)
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// Wait records the call and replays the next scripted response.
func (r *Reactor) Wait(read, write []int, timeoutMs int) ([]api.Event, error) {
	call := WaitCall{
		Read:      append([]int(nil), read...),
		Write:     append([]int(nil), write...),
		TimeoutMs: timeoutMs,
	}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	onWait := r.OnWait
	var events []api.Event
	var err error
	if onWait == nil && len(r.scripts) > 0 {
		events, err = r.scripts[0], r.errs[0]
		r.scripts, r.errs = r.scripts[1:], r.errs[1:]
	}
	r.mu.Unlock()

	if onWait != nil {
		return onWait(call)
	}
	return events, err
}

// Wakeup counts wakeup requests.
func (r *Reactor) Wakeup() error {
	r.mu.Lock()
	r.wakeups++
	r.mu.Unlock()
	return nil
}

// Close marks the reactor closed.
func (r *Reactor) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Calls returns a copy of all recorded Wait calls.
func (r *Reactor) Calls() []WaitCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]WaitCall(nil), r.calls...)
}

// Wakeups returns the number of Wakeup requests seen.
func (r *Reactor) Wakeups() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wakeups
}

// Closed reports whether Close was called.
func (r *Reactor) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
