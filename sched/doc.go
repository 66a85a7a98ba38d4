// File: sched/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package sched implements a single-threaded cooperative multitasking
// engine. A Scheduler owns a FIFO ready queue and three wait registries
// (read, write, delay) and repeatedly resumes one task at a time until
// every task has finished or an external shutdown arrives.
//
// Tasks are ordinary functions receiving a *Ctx. They cooperate by
// calling the Ctx suspension methods (Yield, WaitRead, WaitWrite, Sleep)
// or by forking siblings with Fork. Exactly one task computation executes
// at any instant: the scheduler and the running task exchange a single
// control token, so no registry or queue needs internal locking.
//
// Descriptor readiness and timer expiry are serviced by two internal
// poller tasks scheduled like any other task, which is what lets I/O and
// delays be multiplexed without a privileged thread.
package sched
