// File: facade/coopsched.go
// Unified facade layer for the coopsched engine.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Engine struct, which assembles the scheduler,
// structured logging, and configuration behind a single constructor. The
// facade exposes methods to run the task set to completion, request
// graceful shutdown, and retrieve runtime metrics.

package facade

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/momentics/coopsched/sched"
)

// Engine aggregates the engine components behind one surface.
type Engine struct {
	cfg *sched.Config
	log zerolog.Logger
	s   *sched.Scheduler
}

// New builds an Engine from cfg and the initial task set, scheduled in
// the order given. A nil cfg means sched.DefaultConfig.
func New(cfg *sched.Config, tasks ...sched.TaskFunc) (*Engine, error) {
	if cfg == nil {
		cfg = sched.DefaultConfig()
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)

	s, err := sched.New(cfg, sched.WithLogger(log))
	if err != nil {
		return nil, err
	}
	for _, fn := range tasks {
		s.Spawn(fn)
	}
	return &Engine{cfg: cfg, log: log, s: s}, nil
}

// Run blocks until the task set drains or Shutdown is delivered.
func (e *Engine) Run() error {
	return e.s.Run()
}

// Shutdown requests asynchronous termination of a running engine.
func (e *Engine) Shutdown() error {
	return e.s.Shutdown()
}

// Scheduler exposes the underlying scheduler for advanced embedding.
func (e *Engine) Scheduler() *sched.Scheduler {
	return e.s
}

// Metrics returns a snapshot of the scheduler counters.
func (e *Engine) Metrics() map[string]int64 {
	return e.s.Metrics()
}
