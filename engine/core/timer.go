package core

import (
	"runtime"
	"time"
)

// Timer keeps the frame bookkeeping of a run context: the last frame time,
// a running average for FPS and the residual time still owed to fixed-step
// updates.
type Timer struct {
	clock       Clock
	stopwatch   *Stopwatch
	metrics     *FrameMetrics
	lastInstant time.Time
	residual    time.Duration
}

func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	sw := NewStopwatch(clock)
	sw.Start()
	return &Timer{
		clock:       clock,
		stopwatch:   sw,
		metrics:     NewFrameMetrics(),
		lastInstant: clock.Now(),
	}
}

// Tick marks the end of one frame. Call it once at the top of every loop
// iteration, before any CheckUpdateTime.
func (t *Timer) Tick() {
	now := t.clock.Now()
	delta := now.Sub(t.lastInstant)
	if delta < 0 {
		delta = 0
	}
	t.lastInstant = now
	t.metrics.Update(delta)
	t.residual += delta
	t.stopwatch.Update()
}

// CheckUpdateTime reports whether a whole 1/targetFPS interval is owed since
// the last positive answer, and consumes it. Call it in a loop to catch up:
//
//	for ctx.Timer.CheckUpdateTime(60) {
//		step()
//	}
func (t *Timer) CheckUpdateTime(targetFPS uint32) bool {
	if targetFPS == 0 {
		return false
	}
	targetDT := time.Second / time.Duration(targetFPS)
	if t.residual >= targetDT {
		t.residual -= targetDT
		return true
	}
	return false
}

// RemainingUpdateTime is the fraction of an update interval carried over,
// usable for interpolation when drawing.
func (t *Timer) RemainingUpdateTime() time.Duration {
	return t.residual
}

func (t *Timer) Delta() time.Duration {
	return t.metrics.Last()
}

func (t *Timer) AverageDelta() time.Duration {
	return t.metrics.Average()
}

func (t *Timer) FPS() float64 {
	return t.metrics.FPS()
}

func (t *Timer) Ticks() uint64 {
	return t.metrics.Frames()
}

func (t *Timer) TimeSinceStart() time.Duration {
	return t.stopwatch.Elapsed()
}

// YieldNow gives the processor back to the scheduler once. Execution resumes
// right after the call with the loop state untouched.
func (t *Timer) YieldNow() {
	runtime.Gosched()
}

func (t *Timer) Sleep(d time.Duration) {
	time.Sleep(d)
}
