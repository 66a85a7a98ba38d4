// File: sched/registry_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIORegistryCoalescesInOrder(t *testing.T) {
	r := newIORegistry()
	t1 := newTask(1, taskUser, nil)
	t2 := newTask(2, taskUser, nil)
	t3 := newTask(3, taskUser, nil)

	r.add(7, t1)
	r.add(7, t2)
	r.add(8, t3)

	assert.ElementsMatch(t, []int{7, 8}, r.fds())

	got := r.take(7)
	require.Len(t, got, 2)
	assert.Same(t, t1, got[0], "registration order preserved")
	assert.Same(t, t2, got[1])
	assert.Nil(t, r.take(7), "entry removed once waiters are requeued")
	assert.False(t, r.empty())

	r.take(8)
	assert.True(t, r.empty())
}

func TestDelayRegistryOrdersByDeadlineThenSeq(t *testing.T) {
	d := newDelayRegistry()
	base := time.Unix(1000, 0)
	t1 := newTask(1, taskUser, nil)
	t2 := newTask(2, taskUser, nil)
	t3 := newTask(3, taskUser, nil)
	t4 := newTask(4, taskUser, nil)

	d.add(base.Add(3*time.Second), t1)
	d.add(base.Add(time.Second), t2)
	d.add(base.Add(time.Second), t3) // same deadline, later seq
	d.add(base.Add(2*time.Second), t4)

	deadline, ok := d.next()
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Second), deadline)

	assert.Empty(t, d.expire(base), "nothing due yet")

	due := d.expire(base.Add(time.Second))
	require.Len(t, due, 2)
	assert.Same(t, t2, due[0], "equal deadlines expire in suspension order")
	assert.Same(t, t3, due[1])

	due = d.expire(base.Add(time.Hour))
	require.Len(t, due, 2)
	assert.Same(t, t4, due[0])
	assert.Same(t, t1, due[1])
	assert.True(t, d.empty())
}

func TestDelayRegistryDrain(t *testing.T) {
	d := newDelayRegistry()
	base := time.Unix(1000, 0)
	d.add(base.Add(time.Second), newTask(1, taskUser, nil))
	d.add(base.Add(2*time.Second), newTask(2, taskUser, nil))

	assert.Len(t, d.drain(), 2)
	assert.True(t, d.empty())
}
