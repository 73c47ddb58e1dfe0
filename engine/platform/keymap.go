package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/anima2d/engine/core"
)

var keyTable = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:    core.KeyBackspace,
	glfw.KeyTab:          core.KeyTab,
	glfw.KeyEnter:        core.KeyEnter,
	glfw.KeyKPEnter:      core.KeyEnter,
	glfw.KeyPause:        core.KeyPause,
	glfw.KeyCapsLock:     core.KeyCapital,
	glfw.KeyEscape:       core.KeyEscape,
	glfw.KeySpace:        core.KeySpace,
	glfw.KeyPageUp:       core.KeyPrior,
	glfw.KeyPageDown:     core.KeyNext,
	glfw.KeyEnd:          core.KeyEnd,
	glfw.KeyHome:         core.KeyHome,
	glfw.KeyLeft:         core.KeyLeft,
	glfw.KeyUp:           core.KeyUp,
	glfw.KeyRight:        core.KeyRight,
	glfw.KeyDown:         core.KeyDown,
	glfw.KeyInsert:       core.KeyInsert,
	glfw.KeyDelete:       core.KeyDelete,
	glfw.KeyLeftShift:    core.KeyLShift,
	glfw.KeyRightShift:   core.KeyRShift,
	glfw.KeyLeftControl:  core.KeyLControl,
	glfw.KeyRightControl: core.KeyRControl,
	glfw.KeyLeftAlt:      core.KeyLMenu,
	glfw.KeyRightAlt:     core.KeyRMenu,
	glfw.KeySemicolon:    core.KeySemicolon,
	glfw.KeyEqual:        core.KeyPlus,
	glfw.KeyComma:        core.KeyComma,
	glfw.KeyMinus:        core.KeyMinus,
	glfw.KeyPeriod:       core.KeyPeriod,
	glfw.KeySlash:        core.KeySlash,
	glfw.KeyGraveAccent:  core.KeyGrave,
}

// translateKey maps a GLFW key to its virtual key code. Letters and digits
// share their ASCII values in both tables.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KeyA + core.KeyCode(key-glfw.KeyA), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return core.Key0 + core.KeyCode(key-glfw.Key0), true
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return core.KeyF1 + core.KeyCode(key-glfw.KeyF1), true
	}
	code, ok := keyTable[key]
	return code, ok
}

func translateMods(mods glfw.ModifierKey) core.KeyMods {
	var out core.KeyMods
	if mods&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if mods&glfw.ModControl != 0 {
		out |= core.ModControl
	}
	if mods&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}

func translateButton(button glfw.MouseButton) (core.Button, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return core.ButtonLeft, true
	case glfw.MouseButtonRight:
		return core.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return core.ButtonMiddle, true
	}
	return 0, false
}
