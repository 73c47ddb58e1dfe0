package platform

import (
	"image"
	"runtime"
	"sync"

	"github.com/spaghettifunk/anima2d/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// EventSource hands out the events gathered since the last call. Poll never
// blocks; an empty slice means nothing happened.
type EventSource interface {
	Poll() []core.Event
}

// Window is an EventSource that can also show a frame.
type Window interface {
	EventSource
	Present(frame *image.RGBA) error
	Size() (int, int)
	SetTitle(title string)
	Close() error
}

// Injector accepts events from other goroutines, delivered by the next Poll.
type Injector interface {
	Push(events ...core.Event)
}

// eventQueue collects events between two polls.
type eventQueue struct {
	mu     sync.Mutex
	events []core.Event
}

func (q *eventQueue) push(events ...core.Event) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

func (q *eventQueue) drain() []core.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}
