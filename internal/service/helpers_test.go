package service

import (
	"sync"
	"time"

	"github.com/averhoef/thesisflow/internal/clock"
)

// testClock is a settable clock so tests can move "today" forward.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Today() time.Time {
	return clock.Midnight(c.Now())
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}
