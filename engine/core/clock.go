package core

import (
	"sync"
	"time"
)

// Clock is the time source behind the frame timer.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. Useful for replays and tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type Stopwatch struct {
	clock     Clock
	startTime time.Time
	elapsed   time.Duration
}

func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{clock: clock}
}

// Updates the provided stopwatch. Should be called just before checking elapsed time.
// Has no effect on non-started stopwatches.
func (s *Stopwatch) Update() {
	if !s.startTime.IsZero() {
		s.elapsed = s.clock.Now().Sub(s.startTime)
	}
}

// Starts the provided stopwatch. Resets elapsed time.
func (s *Stopwatch) Start() {
	s.startTime = s.clock.Now()
	s.elapsed = 0
}

// Stops the provided stopwatch. Does not reset elapsed time.
func (s *Stopwatch) Stop() {
	s.startTime = time.Time{}
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed
}
