// File: sched/pollers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The two perpetual internal tasks. Both are scheduled like ordinary
// tasks: they yield one slot per tick, inspect the registries the
// scheduler filed waiters into, and requeue whoever became runnable.

package sched

import "github.com/momentics/coopsched/api"

// readinessPoller performs one OS readiness poll per tick over all
// registered descriptors.
//
// Blocking policy: when other tasks are ready the poll must not park the
// thread (zero timeout); when only delays are pending it parks until the
// nearest deadline; when registered descriptors are the only outstanding
// work it blocks indefinitely, so an idle engine burns no CPU.
func (s *Scheduler) readinessPoller(c *Ctx) {
	for {
		c.Yield()

		ioEmpty := s.readWaits.empty() && s.writeWaits.empty()
		timeout := s.pollTimeout()
		if ioEmpty && timeout <= 0 {
			// Nothing to poll and either other tasks have work or
			// nothing is pending at all.
			continue
		}

		events, err := s.reactor.Wait(s.readWaits.fds(), s.writeWaits.fds(), timeout)
		s.metrics.Inc(MetricPolls)
		if err != nil {
			// Treated as "no descriptors ready this tick". Persistent
			// failures stall waiters, so they are counted and logged for
			// the host to escalate.
			s.pollErrs++
			s.metrics.Inc(MetricPollFailures)
			s.log.Warn().Err(err).Int("consecutive", s.pollErrs).Msg("readiness poll failed")
			continue
		}
		s.pollErrs = 0

		if len(events) > s.cfg.MaxPollEvents {
			events = events[:s.cfg.MaxPollEvents]
		}
		for _, ev := range events {
			// Error/hangup wakes both directions: the waiter must resume
			// to observe the failed descriptor instead of waiting forever.
			if ev.Events&(api.EventRead|api.EventError) != 0 {
				s.wakeAll(s.readWaits.take(ev.FD))
			}
			if ev.Events&(api.EventWrite|api.EventError) != 0 {
				s.wakeAll(s.writeWaits.take(ev.FD))
			}
		}
	}
}

// delayPoller requeues every task whose deadline has passed, earliest
// deadline first.
func (s *Scheduler) delayPoller(c *Ctx) {
	for {
		c.Yield()
		if s.delays.empty() {
			continue
		}
		for _, t := range s.delays.expire(s.clock.Now()) {
			s.enqueue(t)
			s.metrics.Inc(MetricDelayWakes)
		}
	}
}

func (s *Scheduler) wakeAll(ts []*task) {
	for _, t := range ts {
		s.enqueue(t)
		s.metrics.Inc(MetricIOWakes)
	}
}

// pollTimeout decides how long the readiness poll may park the thread:
// zero while user tasks are ready, the time to the nearest delay deadline
// while only delays are pending, and indefinite otherwise.
func (s *Scheduler) pollTimeout() int {
	if s.readyUser > 0 {
		return 0
	}
	deadline, ok := s.delays.next()
	if !ok {
		return -1
	}
	d := deadline.Sub(s.clock.Now())
	if d <= 0 {
		return 0
	}
	ms := int(d.Milliseconds())
	if ms == 0 {
		ms = 1 // round sub-millisecond remainders up, never spin
	}
	return ms
}
