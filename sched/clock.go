// File: sched/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import "time"

// Clock supplies scheduler time. Delay deadlines and poll timeouts are
// derived from it, so substituting a controllable clock makes timer
// behavior fully deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
