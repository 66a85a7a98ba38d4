// File: sched/scheduler.go
// Package sched implements the run loop and the suspension protocol.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"fmt"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/momentics/coopsched/api"
	"github.com/momentics/coopsched/control"
	"github.com/momentics/coopsched/reactor"
)

// Metric keys exported through Scheduler.Metrics.
const (
	MetricTicks        = "ticks"
	MetricSpawned      = "tasks_spawned"
	MetricCompleted    = "tasks_completed"
	MetricFaulted      = "tasks_faulted"
	MetricAbandoned    = "tasks_abandoned"
	MetricPolls        = "polls"
	MetricPollFailures = "poll_failures"
	MetricIOWakes      = "io_wakes"
	MetricDelayWakes   = "delay_wakes"
)

// Scheduler drives cooperative tasks to completion on a single thread.
//
// Spawn and Run must be called from the embedding goroutine; Shutdown may
// be called from anywhere. All queue and registry state is mutated only
// by the loop and by the internal poller tasks, which run strictly
// sequentially, so none of it is locked.
type Scheduler struct {
	cfg     *Config
	log     zerolog.Logger
	clock   Clock
	metrics *control.MetricsRegistry

	reactor    api.Reactor
	ownReactor bool

	ready      *queue.Queue // FIFO of *task
	readyUser  int          // user tasks currently in the ready queue
	readWaits  *ioRegistry
	writeWaits *ioRegistry
	delays     *delayRegistry

	liveUser int // user tasks not yet terminated
	nextID   api.TaskID
	faults   []error
	pollErrs int // consecutive readiness poll failures

	running atomic.Bool
	stop    atomic.Bool
}

// New builds a scheduler from cfg. A nil cfg means DefaultConfig. The
// platform readiness backend is created unless WithReactor overrides it.
func New(cfg *Config, opts ...Option) (*Scheduler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		cfg:        cfg,
		log:        zerolog.Nop(),
		clock:      realClock{},
		metrics:    control.NewMetricsRegistry(),
		ready:      queue.New(),
		readWaits:  newIORegistry(),
		writeWaits: newIORegistry(),
		delays:     newDelayRegistry(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.reactor == nil {
		r, err := reactor.New()
		if err != nil {
			return nil, err
		}
		s.reactor = r
		s.ownReactor = true
	}
	return s, nil
}

// Spawn registers fn as a task at the tail of the ready queue. Initial
// tasks are spawned before Run in the order the caller wants them
// scheduled; running task code spawns siblings through Ctx.Fork instead.
func (s *Scheduler) Spawn(fn TaskFunc) api.TaskID {
	t := s.newTask(taskUser, fn)
	s.liveUser++
	s.enqueue(t)
	s.metrics.Inc(MetricSpawned)
	s.log.Debug().Uint64("task", uint64(t.id)).Msg("task spawned")
	return t.id
}

// Run drives the loop until every user task has terminated or Shutdown
// is delivered. The two poller tasks are appended after the caller's
// tasks and are invisible to task accounting. Run returns nil on a clean
// drain or shutdown; with PropagateFaults set it returns the first fault.
func (s *Scheduler) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		return api.ErrSchedulerRunning
	}
	defer s.running.Store(false)

	s.enqueue(s.newTask(taskPoller, s.readinessPoller))
	s.enqueue(s.newTask(taskPoller, s.delayPoller))

	err := s.loop()
	s.abandonAll()
	if s.ownReactor {
		if cerr := s.reactor.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Shutdown implements api.GracefulShutdown. It sets the stop flag,
// sampled once per tick, and pokes the reactor so an indefinitely
// blocked readiness poll returns. At most one further task resumption
// happens after the flag is set.
func (s *Scheduler) Shutdown() error {
	if s.stop.Swap(true) {
		return nil
	}
	return s.reactor.Wakeup()
}

// Metrics returns a snapshot of the scheduler counters.
func (s *Scheduler) Metrics() map[string]int64 {
	return s.metrics.Snapshot()
}

// Faults returns the faults recorded for isolated task failures, in
// occurrence order. Meaningful only after Run returns.
func (s *Scheduler) Faults() []error {
	return append([]error(nil), s.faults...)
}

func (s *Scheduler) loop() error {
	for {
		if s.stop.Load() {
			s.log.Debug().Msg("shutdown flag observed, stopping")
			return nil
		}
		if s.liveUser == 0 {
			return nil
		}
		if s.ready.Length() == 0 {
			// Live tasks exist but none is runnable or waiting: cannot
			// happen while the membership invariant holds. Stop rather
			// than spin.
			return nil
		}

		t := s.dequeue()
		if t.state == api.TaskTerminated {
			continue
		}
		s.metrics.Inc(MetricTicks)

		res := t.resumeNext()
		switch res.kind {
		case yieldDone:
			s.finish(t, res.fault)
			if res.fault != nil && s.cfg.PropagateFaults {
				return res.fault
			}
		case yieldSpawn:
			nt := s.newTask(taskUser, res.spawn)
			s.liveUser++
			s.metrics.Inc(MetricSpawned)
			s.log.Debug().
				Uint64("task", uint64(nt.id)).
				Uint64("parent", uint64(t.id)).
				Msg("task forked")
			s.enqueue(nt)
			t.state = api.TaskSuspended
			s.enqueue(t) // spawner continues on the next tick
		case yieldWait:
			if err := s.dispatch(t, res.reason); err != nil && s.cfg.PropagateFaults {
				return err
			}
		}
	}
}

// dispatch files a suspended task into the registry matching its wait
// reason. An unrecognized tag terminates the task loudly.
func (s *Scheduler) dispatch(t *task, r api.WaitReason) error {
	t.state = api.TaskSuspended
	switch r.Kind {
	case api.WaitImmediate:
		s.enqueue(t)
	case api.WaitReadReady:
		s.readWaits.add(r.FD, t)
	case api.WaitWriteReady:
		s.writeWaits.add(r.FD, t)
	case api.WaitDelay:
		s.delays.add(s.clock.Now().Add(r.Delay), t)
	default:
		err := fmt.Errorf("%w: %d", api.ErrUnknownWaitKind, r.Kind)
		s.log.Warn().
			Uint64("task", uint64(t.id)).
			Uint8("kind", uint8(r.Kind)).
			Msg("unknown wait kind, terminating task")
		s.unwind(t)
		s.finish(t, err)
		return err
	}
	return nil
}

func (s *Scheduler) newTask(kind taskKind, fn TaskFunc) *task {
	s.nextID++
	t := newTask(s.nextID, kind, fn)
	t.ctx = &Ctx{s: s, t: t}
	return t
}

// enqueue appends t to the ready queue tail. Created tasks keep their
// state until first resume; everything else becomes Ready.
func (s *Scheduler) enqueue(t *task) {
	if t.state != api.TaskCreated {
		t.state = api.TaskReady
	}
	s.ready.Add(t)
	if t.kind == taskUser {
		s.readyUser++
	}
}

func (s *Scheduler) dequeue() *task {
	t := s.ready.Remove().(*task)
	if t.kind == taskUser {
		s.readyUser--
	}
	return t
}

func (s *Scheduler) finish(t *task, fault error) {
	t.state = api.TaskTerminated
	if t.kind == taskUser {
		s.liveUser--
	}
	if fault != nil {
		t.fault = fault
		s.faults = append(s.faults, fault)
		s.metrics.Inc(MetricFaulted)
		s.log.Error().Err(fault).Uint64("task", uint64(t.id)).Msg("task faulted")
		return
	}
	s.metrics.Inc(MetricCompleted)
	s.log.Debug().Uint64("task", uint64(t.id)).Msg("task completed")
}

// unwind resumes a parked task with the abandonment sentinel and waits
// for its goroutine to finish. Deferred cleanup in the task body runs;
// code past the suspension point does not.
func (s *Scheduler) unwind(t *task) {
	t.abandoned = true
	t.resume <- struct{}{}
	<-t.yield
}

// abandonAll unwinds every task still queued or suspended when the loop
// exits. Abandoned tasks are never resumed and never notified.
func (s *Scheduler) abandonAll() {
	var parked []*task
	for s.ready.Length() > 0 {
		parked = append(parked, s.dequeue())
	}
	parked = append(parked, s.readWaits.drain()...)
	parked = append(parked, s.writeWaits.drain()...)
	parked = append(parked, s.delays.drain()...)

	abandoned := int64(0)
	for _, t := range parked {
		switch t.state {
		case api.TaskTerminated:
			continue
		case api.TaskCreated:
			// Never resumed: no goroutine to unwind.
		default:
			s.unwind(t)
		}
		t.state = api.TaskTerminated
		if t.kind == taskUser {
			s.liveUser--
			abandoned++
		}
	}
	if abandoned > 0 {
		s.metrics.Add(MetricAbandoned, abandoned)
		s.log.Debug().Int64("count", abandoned).Msg("tasks abandoned at shutdown")
	}
}
