// File: sched/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wait registries owned by the scheduler. An entry exists iff at least
// one task is waiting on it; entries disappear the instant their waiters
// are requeued.

package sched

import (
	"container/heap"
	"time"
)

// ioRegistry maps a descriptor to its coalesced waiter list. Waiters on
// the same descriptor are kept in registration order.
type ioRegistry struct {
	waiters map[int][]*task
}

func newIORegistry() *ioRegistry {
	return &ioRegistry{waiters: make(map[int][]*task)}
}

func (r *ioRegistry) add(fd int, t *task) {
	r.waiters[fd] = append(r.waiters[fd], t)
}

// take removes and returns all waiters for fd, in registration order.
func (r *ioRegistry) take(fd int) []*task {
	ts := r.waiters[fd]
	if ts != nil {
		delete(r.waiters, fd)
	}
	return ts
}

func (r *ioRegistry) empty() bool { return len(r.waiters) == 0 }

func (r *ioRegistry) fds() []int {
	out := make([]int, 0, len(r.waiters))
	for fd := range r.waiters {
		out = append(out, fd)
	}
	return out
}

func (r *ioRegistry) drain() []*task {
	var out []*task
	for fd, ts := range r.waiters {
		out = append(out, ts...)
		delete(r.waiters, fd)
	}
	return out
}

// delayEntry is one pending deadline. Each suspension gets a fresh
// sequence key, so equal durations stay independent and expire FIFO.
type delayEntry struct {
	seq      uint64
	deadline time.Time
	task     *task
}

type delayHeap []*delayEntry

func (h delayHeap) Len() int { return len(h) }

func (h delayHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h delayHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *delayHeap) Push(x any) {
	*h = append(*h, x.(*delayEntry))
}

func (h *delayHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// delayRegistry is a min-heap of deadlines ordered by (deadline, seq).
type delayRegistry struct {
	heap    delayHeap
	nextSeq uint64
}

func newDelayRegistry() *delayRegistry {
	return &delayRegistry{}
}

func (d *delayRegistry) add(deadline time.Time, t *task) {
	d.nextSeq++
	heap.Push(&d.heap, &delayEntry{seq: d.nextSeq, deadline: deadline, task: t})
}

func (d *delayRegistry) empty() bool { return len(d.heap) == 0 }

// next peeks the earliest pending deadline.
func (d *delayRegistry) next() (time.Time, bool) {
	if len(d.heap) == 0 {
		return time.Time{}, false
	}
	return d.heap[0].deadline, true
}

// expire pops every entry whose deadline is at or before now and returns
// the woken tasks in (deadline, seq) order.
func (d *delayRegistry) expire(now time.Time) []*task {
	var out []*task
	for len(d.heap) > 0 && !d.heap[0].deadline.After(now) {
		e := heap.Pop(&d.heap).(*delayEntry)
		out = append(out, e.task)
	}
	return out
}

func (d *delayRegistry) drain() []*task {
	out := make([]*task, 0, len(d.heap))
	for _, e := range d.heap {
		out = append(out, e.task)
	}
	d.heap = nil
	return out
}
