package game

import (
	"fmt"
	"time"
)

// DropInterval is how long a piece rests on a row before falling one row.
const DropInterval = 1000 * time.Millisecond

// Clock accumulates elapsed time supplied by the host and fires once the
// interval has been exceeded.
type Clock struct {
	Interval time.Duration
	Elapsed  time.Duration
}

func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = DropInterval
	}

	return &Clock{Interval: interval}
}

func (cl *Clock) String() string {
	return fmt.Sprintf("%s/%s", cl.Elapsed, cl.Interval)
}

// Tick adds delta and reports whether the interval was exceeded. The
// accumulator restarts from zero when it fires.
func (cl *Clock) Tick(delta time.Duration) bool {
	if delta < 0 {
		return false
	}

	cl.Elapsed += delta
	if cl.Elapsed <= cl.Interval {
		return false
	}

	cl.Elapsed = 0
	return true
}

func (cl *Clock) Reset() {
	cl.Elapsed = 0
}
