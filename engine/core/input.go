package core

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/math"
)

type Button uint16

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonMaxButtons
)

type KeyMods uint8

const (
	ModShift KeyMods = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key code definitions, laid out like the Win32 virtual key table.
type KeyCode uint16

const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyShift     KeyCode = 0x10
	KeyPause     KeyCode = 0x13
	KeyCapital   KeyCode = 0x14
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPrior     KeyCode = 0x21
	KeyNext      KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E
	Key0         KeyCode = 0x30
	Key1         KeyCode = 0x31
	Key2         KeyCode = 0x32
	Key3         KeyCode = 0x33
	Key4         KeyCode = 0x34
	Key5         KeyCode = 0x35
	Key6         KeyCode = 0x36
	Key7         KeyCode = 0x37
	Key8         KeyCode = 0x38
	Key9         KeyCode = 0x39
	KeyA         KeyCode = 0x41
	KeyB         KeyCode = 0x42
	KeyC         KeyCode = 0x43
	KeyD         KeyCode = 0x44
	KeyE         KeyCode = 0x45
	KeyF         KeyCode = 0x46
	KeyG         KeyCode = 0x47
	KeyH         KeyCode = 0x48
	KeyI         KeyCode = 0x49
	KeyJ         KeyCode = 0x4A
	KeyK         KeyCode = 0x4B
	KeyL         KeyCode = 0x4C
	KeyM         KeyCode = 0x4D
	KeyN         KeyCode = 0x4E
	KeyO         KeyCode = 0x4F
	KeyP         KeyCode = 0x50
	KeyQ         KeyCode = 0x51
	KeyR         KeyCode = 0x52
	KeyS         KeyCode = 0x53
	KeyT         KeyCode = 0x54
	KeyU         KeyCode = 0x55
	KeyV         KeyCode = 0x56
	KeyW         KeyCode = 0x57
	KeyX         KeyCode = 0x58
	KeyY         KeyCode = 0x59
	KeyZ         KeyCode = 0x5A
	KeyF1        KeyCode = 0x70
	KeyF2        KeyCode = 0x71
	KeyF3        KeyCode = 0x72
	KeyF4        KeyCode = 0x73
	KeyF5        KeyCode = 0x74
	KeyF6        KeyCode = 0x75
	KeyF7        KeyCode = 0x76
	KeyF8        KeyCode = 0x77
	KeyF9        KeyCode = 0x78
	KeyF10       KeyCode = 0x79
	KeyF11       KeyCode = 0x7A
	KeyF12       KeyCode = 0x7B
	KeyLShift    KeyCode = 0xA0
	KeyRShift    KeyCode = 0xA1
	KeyLControl  KeyCode = 0xA2
	KeyRControl  KeyCode = 0xA3
	KeyLMenu     KeyCode = 0xA4
	KeyRMenu     KeyCode = 0xA5
	KeySemicolon KeyCode = 0xBA
	KeyPlus      KeyCode = 0xBB
	KeyComma     KeyCode = 0xBC
	KeyMinus     KeyCode = 0xBD
	KeyPeriod    KeyCode = 0xBE
	KeySlash     KeyCode = 0xBF
	KeyGrave     KeyCode = 0xC0
	KeysMaxKeys  KeyCode = 0x100
)

func (k KeyCode) String() string {
	switch {
	case k == KeyEscape:
		return "Escape"
	case k == KeySpace:
		return "Space"
	case k == KeyEnter:
		return "Enter"
	case k >= KeyA && k <= KeyZ, k >= Key0 && k <= Key9:
		return string(rune(k))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	default:
		return fmt.Sprintf("Key(0x%02X)", uint16(k))
	}
}

// Mouse state structure
type MouseState struct {
	Position math.Vec2
	Buttons  [ButtonMaxButtons]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KeysMaxKeys]bool
	Mods KeyMods
}

// InputState holds current and previous states for keyboard and mouse.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
	Focused          bool
}

func NewInputState() *InputState {
	return &InputState{Focused: true}
}

// Update copies current states to previous ones. Call once per frame after
// all the events of that frame have been processed.
func (s *InputState) Update() {
	s.KeyboardPrevious = s.KeyboardCurrent
	s.MousePrevious = s.MouseCurrent
}

func (s *InputState) ProcessKey(key KeyCode, pressed bool, mods KeyMods) {
	if key < KeysMaxKeys {
		s.KeyboardCurrent.Keys[key] = pressed
	}
	s.KeyboardCurrent.Mods = mods
}

func (s *InputState) ProcessButton(button Button, pressed bool) {
	if button < ButtonMaxButtons {
		s.MouseCurrent.Buttons[button] = pressed
	}
}

func (s *InputState) ProcessCursor(pos math.Vec2) {
	s.MouseCurrent.Position = pos
}

func (s *InputState) IsKeyDown(key KeyCode) bool {
	return key < KeysMaxKeys && s.KeyboardCurrent.Keys[key]
}

func (s *InputState) WasKeyDown(key KeyCode) bool {
	return key < KeysMaxKeys && s.KeyboardPrevious.Keys[key]
}

// IsKeyJustPressed is true on the first frame a key is held.
func (s *InputState) IsKeyJustPressed(key KeyCode) bool {
	return s.IsKeyDown(key) && !s.WasKeyDown(key)
}

func (s *InputState) IsButtonDown(button Button) bool {
	return button < ButtonMaxButtons && s.MouseCurrent.Buttons[button]
}

func (s *InputState) MousePosition() math.Vec2 {
	return s.MouseCurrent.Position
}
