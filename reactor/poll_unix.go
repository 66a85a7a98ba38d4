//go:build linux || darwin

// File: reactor/poll_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// poll(2) readiness backend. The scheduler re-submits its full interest
// set on every call, so no persistent registration state is kept here;
// the only owned resource is the wakeup self-pipe.

package reactor

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/coopsched/api"
)

type pollReactor struct {
	wakeRead  int
	wakeWrite int

	mu     sync.Mutex // guards closed; Wakeup may race Close
	closed bool
}

func newPlatformReactor() (api.Reactor, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, fmt.Errorf("reactor: wakeup pipe: %w", err)
	}
	for _, fd := range p {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(p[0])
			unix.Close(p[1])
			return nil, fmt.Errorf("reactor: wakeup pipe nonblock: %w", err)
		}
	}
	return &pollReactor{wakeRead: p[0], wakeWrite: p[1]}, nil
}

// Wait polls the read and write sets plus the wakeup pipe. A descriptor
// present in both sets produces two pollfd entries; poll(2) fills revents
// for each independently.
func (r *pollReactor) Wait(read, write []int, timeoutMs int) ([]api.Event, error) {
	fds := make([]unix.PollFd, 0, len(read)+len(write)+1)
	fds = append(fds, unix.PollFd{Fd: int32(r.wakeRead), Events: unix.POLLIN})
	for _, fd := range read {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	for _, fd := range write {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLOUT})
	}

	if timeoutMs < 0 {
		timeoutMs = -1
	}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil // interrupted by signal, not a failure
		}
		return nil, fmt.Errorf("reactor: poll wait: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	if fds[0].Revents != 0 {
		r.drainWakeup()
	}

	events := make([]api.Event, 0, n)
	for _, pfd := range fds[1:] {
		if pfd.Revents == 0 {
			continue
		}
		var et api.EventType
		if pfd.Revents&unix.POLLIN != 0 {
			et |= api.EventRead
		}
		if pfd.Revents&unix.POLLOUT != 0 {
			et |= api.EventWrite
		}
		if pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			et |= api.EventError
		}
		events = append(events, api.Event{FD: int(pfd.Fd), Events: et})
	}
	return events, nil
}

// Wakeup writes one byte into the self-pipe, forcing a concurrent Wait to
// return. A full pipe already guarantees a pending wakeup, so EAGAIN is
// not an error.
func (r *pollReactor) Wakeup() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	_, err := unix.Write(r.wakeWrite, []byte{1})
	if err == unix.EAGAIN {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reactor: wakeup: %w", err)
	}
	return nil
}

func (r *pollReactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	err1 := unix.Close(r.wakeRead)
	err2 := unix.Close(r.wakeWrite)
	if err1 != nil {
		return err1
	}
	return err2
}

func (r *pollReactor) drainWakeup() {
	var buf [64]byte
	for {
		n, err := unix.Read(r.wakeRead, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}
