//go:build linux || darwin

// File: sched/integration_unix_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// End-to-end tests over the real poll(2) backend.

package sched_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/coopsched/sched"
)

func TestSocketpairPingPong(t *testing.T) {
	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(pair[0])
	defer unix.Close(pair[1])
	for _, fd := range pair {
		require.NoError(t, unix.SetNonblock(fd, true))
	}

	s, err := sched.New(nil)
	require.NoError(t, err)

	var got []string
	s.Spawn(func(c *sched.Ctx) {
		c.WaitWrite(pair[0])
		_, werr := unix.Write(pair[0], []byte("ping"))
		assert.NoError(t, werr)

		c.WaitRead(pair[0])
		buf := make([]byte, 16)
		n, rerr := unix.Read(pair[0], buf)
		assert.NoError(t, rerr)
		got = append(got, string(buf[:n]))
	})
	s.Spawn(func(c *sched.Ctx) {
		c.WaitRead(pair[1])
		buf := make([]byte, 16)
		n, rerr := unix.Read(pair[1], buf)
		assert.NoError(t, rerr)
		got = append(got, string(buf[:n]))

		c.WaitWrite(pair[1])
		_, werr := unix.Write(pair[1], []byte("pong"))
		assert.NoError(t, werr)
	})

	require.NoError(t, s.Run())
	assert.Equal(t, []string{"ping", "pong"}, got)
}

func TestRealClockDelayOrdering(t *testing.T) {
	s, err := sched.New(nil)
	require.NoError(t, err)

	var order []string
	sleeper := func(name string, d time.Duration) sched.TaskFunc {
		return func(c *sched.Ctx) {
			c.Sleep(d)
			order = append(order, name)
		}
	}
	s.Spawn(sleeper("slow", 60*time.Millisecond))
	s.Spawn(sleeper("medium", 40*time.Millisecond))
	s.Spawn(sleeper("fast", 20*time.Millisecond))

	start := time.Now()
	require.NoError(t, s.Run())

	assert.Equal(t, []string{"fast", "medium", "slow"}, order)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestExternalShutdownWhileBlocked(t *testing.T) {
	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(pair[0])
	defer unix.Close(pair[1])

	s, err := sched.New(nil)
	require.NoError(t, err)

	// Never becomes readable: the scheduler parks in the poll until the
	// shutdown wakeup arrives.
	s.Spawn(func(c *sched.Ctx) {
		c.WaitRead(pair[1])
	})

	go func() {
		time.Sleep(30 * time.Millisecond)
		s.Shutdown()
	}()

	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after external shutdown")
	}
	assert.Equal(t, int64(1), s.Metrics()[sched.MetricAbandoned])
}
