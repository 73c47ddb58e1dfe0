package core

import (
	"time"

	"github.com/spaghettifunk/anima2d/engine/containers"
)

// Number of frame times kept for the running average.
const FrameHistorySize = 200

type FrameMetrics struct {
	frameTimes *containers.RingQueue[time.Duration]
	sum        time.Duration
	last       time.Duration
	frames     uint64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{
		frameTimes: containers.NewRingQueue[time.Duration](FrameHistorySize),
	}
}

func (m *FrameMetrics) Update(frameTime time.Duration) {
	if m.frameTimes.IsFull() {
		oldest, _ := m.frameTimes.Dequeue()
		m.sum -= oldest
	}
	_ = m.frameTimes.Enqueue(frameTime)
	m.sum += frameTime
	m.last = frameTime
	m.frames++
}

func (m *FrameMetrics) Last() time.Duration {
	return m.last
}

func (m *FrameMetrics) Frames() uint64 {
	return m.frames
}

func (m *FrameMetrics) Average() time.Duration {
	n := m.frameTimes.Len()
	if n == 0 {
		return 0
	}
	return m.sum / time.Duration(n)
}

// FPS is derived from the averaged frame time, 0 until a frame has been seen.
func (m *FrameMetrics) FPS() float64 {
	avg := m.Average()
	if avg <= 0 {
		return 0
	}
	return 1.0 / avg.Seconds()
}
