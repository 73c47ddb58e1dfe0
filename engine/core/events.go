package core

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/math"
)

// Event is anything drained from a platform event source.
type Event interface {
	event()
}

type WindowEventKind uint8

const (
	WindowCloseRequested WindowEventKind = iota + 1
	WindowKeyboardInput
	WindowMouseInput
	WindowCursorMoved
	WindowMouseWheel
	WindowResized
	WindowFocused
	WindowMoved
)

func (k WindowEventKind) String() string {
	switch k {
	case WindowCloseRequested:
		return "CloseRequested"
	case WindowKeyboardInput:
		return "KeyboardInput"
	case WindowMouseInput:
		return "MouseInput"
	case WindowCursorMoved:
		return "CursorMoved"
	case WindowMouseWheel:
		return "MouseWheel"
	case WindowResized:
		return "Resized"
	case WindowFocused:
		return "Focused"
	case WindowMoved:
		return "Moved"
	default:
		return fmt.Sprintf("WindowEventKind(%d)", uint8(k))
	}
}

type ElementState uint8

const (
	Released ElementState = iota
	Pressed
)

func (s ElementState) String() string {
	if s == Pressed {
		return "Pressed"
	}
	return "Released"
}

// KeyboardInput carries a key transition. KeyCode is nil when the platform
// could not map the physical key to a virtual key.
type KeyboardInput struct {
	ScanCode int
	KeyCode  *KeyCode
	State    ElementState
	Mods     KeyMods
}

func (k KeyboardInput) Is(code KeyCode, state ElementState) bool {
	return k.KeyCode != nil && *k.KeyCode == code && k.State == state
}

type MouseInput struct {
	Button Button
	State  ElementState
}

type WindowEvent struct {
	Kind     WindowEventKind
	Keyboard KeyboardInput
	Mouse    MouseInput
	// cursor position, wheel delta or window position depending on Kind
	Position math.Vec2
	Width    int
	Height   int
	Focused  bool
}

func (WindowEvent) event() {}

func (e WindowEvent) String() string {
	switch e.Kind {
	case WindowKeyboardInput:
		code := "none"
		if e.Keyboard.KeyCode != nil {
			code = e.Keyboard.KeyCode.String()
		}
		return fmt.Sprintf("%s{key: %s, state: %s}", e.Kind, code, e.Keyboard.State)
	case WindowMouseInput:
		return fmt.Sprintf("%s{button: %d, state: %s}", e.Kind, e.Mouse.Button, e.Mouse.State)
	case WindowCursorMoved, WindowMouseWheel, WindowMoved:
		return fmt.Sprintf("%s{%.1f, %.1f}", e.Kind, e.Position.X, e.Position.Y)
	case WindowResized:
		return fmt.Sprintf("%s{%dx%d}", e.Kind, e.Width, e.Height)
	case WindowFocused:
		return fmt.Sprintf("%s{%t}", e.Kind, e.Focused)
	default:
		return e.Kind.String()
	}
}

type DeviceEventKind uint8

const (
	DeviceMouseMotion DeviceEventKind = iota + 1
	DeviceMouseWheel
	DeviceAdded
	DeviceRemoved
)

// DeviceEvent is raw input not tied to a window.
type DeviceEvent struct {
	DeviceID int
	Kind     DeviceEventKind
	Delta    math.Vec2
}

func (DeviceEvent) event() {}

func (e DeviceEvent) String() string {
	return fmt.Sprintf("DeviceEvent{device: %d, kind: %d, delta: %.1f,%.1f}", e.DeviceID, e.Kind, e.Delta.X, e.Delta.Y)
}

// NewKeyEvent is a shorthand for a keyboard WindowEvent.
func NewKeyEvent(code KeyCode, state ElementState) WindowEvent {
	c := code
	return WindowEvent{
		Kind: WindowKeyboardInput,
		Keyboard: KeyboardInput{
			KeyCode: &c,
			State:   state,
		},
	}
}

// Listeners are invoked in registration order until one reports the event
// as handled.
type FnOnEvent func(ev Event) bool

type EventBus struct {
	window map[WindowEventKind][]FnOnEvent
	device []FnOnEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		window: make(map[WindowEventKind][]FnOnEvent),
	}
}

func (b *EventBus) RegisterWindow(kind WindowEventKind, fn FnOnEvent) {
	b.window[kind] = append(b.window[kind], fn)
}

func (b *EventBus) RegisterDevice(fn FnOnEvent) {
	b.device = append(b.device, fn)
}

// Fire returns true if a listener handled the event.
func (b *EventBus) Fire(ev Event) bool {
	var listeners []FnOnEvent
	switch e := ev.(type) {
	case WindowEvent:
		listeners = b.window[e.Kind]
	case DeviceEvent:
		listeners = b.device
	}
	for _, fn := range listeners {
		if fn(ev) {
			return true
		}
	}
	return false
}
