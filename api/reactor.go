// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract interface for OS readiness demultiplexing used by
// the scheduler's readiness poller, independent of the polling mechanism
// (poll, epoll, kqueue, ...).

package api

// EventType is a bit set describing descriptor readiness.
type EventType uint32

const (
	// EventRead indicates the descriptor is ready for reading.
	EventRead EventType = 1 << iota
	// EventWrite indicates the descriptor is ready for writing.
	EventWrite
	// EventError indicates an error or hangup condition on the descriptor.
	EventError
)

// Event is one OS-level readiness notification.
type Event struct {
	FD     int
	Events EventType
}

// Reactor performs one readiness poll per call over the supplied
// descriptor sets. Implementations are stateless between calls: the
// caller re-submits its full interest set every time, mirroring the way
// the scheduler rebuilds its wait registries each tick.
type Reactor interface {
	// Wait polls the read and write sets and returns the descriptors that
	// are ready. timeoutMs semantics: negative blocks indefinitely, zero
	// returns immediately, positive bounds the wait in milliseconds.
	// A Wait interrupted by a signal returns no events and no error.
	Wait(read, write []int, timeoutMs int) ([]Event, error)

	// Wakeup interrupts a concurrent blocking Wait. Safe to call from any
	// goroutine; used to deliver asynchronous shutdown.
	Wakeup() error

	// Close releases the backend resources.
	Close() error
}
