package platform

import (
	"image"
	"sync"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// HeadlessWindow never shows anything. Events come from Push or from a script
// consumed one batch per Poll, which makes runs fully reproducible.
type HeadlessWindow struct {
	queue eventQueue

	mu       sync.Mutex
	width    int
	height   int
	title    string
	script   [][]core.Event
	polls    int
	presents int
	last     *image.RGBA
	closed   bool
}

func NewHeadlessWindow(width, height int) *HeadlessWindow {
	return &HeadlessWindow{width: width, height: height}
}

// Push queues events for the next Poll.
func (w *HeadlessWindow) Push(events ...core.Event) {
	w.queue.push(events...)
}

// Script appends batches, each one delivered by a single Poll after whatever
// was pushed.
func (w *HeadlessWindow) Script(batches ...[]core.Event) {
	w.mu.Lock()
	w.script = append(w.script, batches...)
	w.mu.Unlock()
}

func (w *HeadlessWindow) Poll() []core.Event {
	events := w.queue.drain()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.polls++
	if len(w.script) > 0 {
		events = append(events, w.script[0]...)
		w.script = w.script[1:]
	}
	for _, ev := range events {
		if we, ok := ev.(core.WindowEvent); ok && we.Kind == core.WindowResized && we.Width > 0 && we.Height > 0 {
			w.width, w.height = we.Width, we.Height
		}
	}
	return events
}

// Present keeps a copy of the frame.
func (w *HeadlessWindow) Present(frame *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil || w.last.Bounds() != frame.Bounds() {
		w.last = image.NewRGBA(frame.Bounds())
	}
	copy(w.last.Pix, frame.Pix)
	w.presents++
	return nil
}

func (w *HeadlessWindow) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *HeadlessWindow) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *HeadlessWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *HeadlessWindow) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return nil
}

func (w *HeadlessWindow) Presents() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presents
}

func (w *HeadlessWindow) Polls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polls
}

// LastFrame is the most recently presented frame, nil before the first one.
func (w *HeadlessWindow) LastFrame() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *HeadlessWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

var (
	_ Window   = (*HeadlessWindow)(nil)
	_ Injector = (*HeadlessWindow)(nil)
)
