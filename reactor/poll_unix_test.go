//go:build linux || darwin

// File: reactor/poll_unix_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/coopsched/api"
)

func newSocketpair(t *testing.T) (int, int) {
	t.Helper()
	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		unix.Close(pair[0])
		unix.Close(pair[1])
	})
	return pair[0], pair[1]
}

func TestWaitReportsReadable(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	a, b := newSocketpair(t)
	_, err = unix.Write(a, []byte("x"))
	require.NoError(t, err)

	events, err := r.Wait([]int{b}, nil, 1000)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, b, events[0].FD)
	assert.NotZero(t, events[0].Events&api.EventRead)
}

func TestWaitReportsWritable(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	a, _ := newSocketpair(t)
	events, err := r.Wait(nil, []int{a}, 1000)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotZero(t, events[0].Events&api.EventWrite)
}

func TestWaitZeroTimeoutReturnsEmpty(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	_, b := newSocketpair(t)
	events, err := r.Wait([]int{b}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestWaitReportsPeerClose(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	defer unix.Close(pair[1])
	require.NoError(t, unix.Close(pair[0]))

	events, err := r.Wait([]int{pair[1]}, nil, 1000)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotZero(t, events[0].Events&(api.EventRead|api.EventError))
}

func TestWakeupInterruptsBlockedWait(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	done := make(chan error, 1)
	go func() {
		_, werr := r.Wait(nil, nil, -1)
		done <- werr
	}()

	// Give the goroutine a moment to enter the poll before waking it.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, r.Wakeup())

	select {
	case werr := <-done:
		assert.NoError(t, werr)
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after Wakeup")
	}
}

func TestSameFDInBothSets(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	a, b := newSocketpair(t)
	_, err = unix.Write(a, []byte("x"))
	require.NoError(t, err)

	events, err := r.Wait([]int{b}, []int{b}, 1000)
	require.NoError(t, err)
	require.Len(t, events, 2, "one pollfd entry per direction")
	var et api.EventType
	for _, ev := range events {
		assert.Equal(t, b, ev.FD)
		et |= ev.Events
	}
	assert.NotZero(t, et&api.EventRead)
	assert.NotZero(t, et&api.EventWrite)
}
