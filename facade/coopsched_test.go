// File: facade/coopsched_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/coopsched/facade"
	"github.com/momentics/coopsched/sched"
)

// Full lifecycle: build from config, run a small task set to completion,
// inspect metrics.
func TestEngineLifecycle(t *testing.T) {
	cfg := sched.DefaultConfig()
	cfg.LogLevel = "disabled"

	var ticks int
	eng, err := facade.New(cfg,
		func(c *sched.Ctx) {
			for i := 0; i < 3; i++ {
				ticks++
				c.Yield()
			}
		},
		func(c *sched.Ctx) {
			c.Sleep(10 * time.Millisecond)
			ticks++
		},
	)
	require.NoError(t, err)
	require.NoError(t, eng.Run())

	assert.Equal(t, 4, ticks)
	m := eng.Metrics()
	assert.Equal(t, int64(2), m[sched.MetricSpawned])
	assert.Equal(t, int64(2), m[sched.MetricCompleted])
}

func TestEngineShutdown(t *testing.T) {
	cfg := sched.DefaultConfig()
	cfg.LogLevel = "disabled"

	var eng *facade.Engine
	var err error
	eng, err = facade.New(cfg, func(c *sched.Ctx) {
		assert.NoError(t, eng.Shutdown())
		for {
			c.Yield()
		}
	})
	require.NoError(t, err)
	require.NoError(t, eng.Run())

	assert.Equal(t, int64(1), eng.Metrics()[sched.MetricAbandoned])
}

func TestEngineBadLogLevelFallsBack(t *testing.T) {
	cfg := sched.DefaultConfig()
	cfg.LogLevel = "nonsense"

	eng, err := facade.New(cfg, func(*sched.Ctx) {})
	require.NoError(t, err)
	require.NoError(t, eng.Run())
}
