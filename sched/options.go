// File: sched/options.go
// Package sched defines functional options for the Scheduler.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"github.com/rs/zerolog"

	"github.com/momentics/coopsched/api"
)

// Option customizes scheduler initialization.
type Option func(*Scheduler)

// WithLogger attaches a structured logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.log = log
	}
}

// WithReactor substitutes the readiness backend. The caller keeps
// ownership and is responsible for closing it.
func WithReactor(r api.Reactor) Option {
	return func(s *Scheduler) {
		s.reactor = r
		s.ownReactor = false
	}
}

// WithClock substitutes the time source used for delay deadlines and
// poll timeouts.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}
