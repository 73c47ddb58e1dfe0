package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/audio"
	"github.com/spaghettifunk/anima2d/engine/config"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/graphics"
	"github.com/spaghettifunk/anima2d/engine/platform"
)

// Context is everything a running game touches: one per process, created by
// ContextBuilder.Build and passed explicitly to every call.
type Context struct {
	ID   uuid.UUID
	Conf *config.Config

	// Continuing keeps the loop alive, RequestQuit clears it.
	Continuing bool
	// Suspended is set while the window is minimized.
	Suspended bool

	Timer      *core.Timer
	Input      *core.InputState
	Events     *core.EventBus
	Filesystem *assets.Filesystem
	Gfx        *graphics.Context
	Audio      *audio.Mixer

	window platform.Window
	closed bool
}

// RequestQuit asks the loop to stop once the current iteration is done.
func RequestQuit(ctx *Context) {
	if ctx.Continuing {
		core.LogInfo("quit requested, shutting down")
	}
	ctx.Continuing = false
}

// ProcessEvent feeds one event to the context state: input, frame buffer size
// and focus. Listeners registered on ctx.Events run afterwards. It never
// touches Continuing.
func ProcessEvent(ctx *Context, ev core.Event) {
	switch e := ev.(type) {
	case core.WindowEvent:
		switch e.Kind {
		case core.WindowKeyboardInput:
			if e.Keyboard.KeyCode != nil {
				ctx.Input.ProcessKey(*e.Keyboard.KeyCode, e.Keyboard.State == core.Pressed, e.Keyboard.Mods)
			}
		case core.WindowMouseInput:
			ctx.Input.ProcessButton(e.Mouse.Button, e.Mouse.State == core.Pressed)
		case core.WindowCursorMoved:
			ctx.Input.ProcessCursor(e.Position)
		case core.WindowFocused:
			ctx.Input.Focused = e.Focused
		case core.WindowResized:
			onResized(ctx, e.Width, e.Height)
		}
	}
	ctx.Events.Fire(ev)
}

func onResized(ctx *Context, width, height int) {
	if width == 0 || height == 0 {
		if !ctx.Suspended {
			core.LogInfo("window minimized, suspending application")
		}
		ctx.Suspended = true
		return
	}
	if ctx.Suspended {
		core.LogInfo("window restored, resuming application")
		ctx.Suspended = false
	}
	core.LogDebug("window resize: %d, %d", width, height)
	ctx.Gfx.Resize(width, height)
}

// Close releases the audio mixer, the window and the resource watcher, in
// that order. It is safe to call more than once.
func (ctx *Context) Close() error {
	if ctx.closed {
		return nil
	}
	ctx.closed = true

	var errs []error
	if ctx.Audio != nil {
		errs = append(errs, ctx.Audio.Close())
	}
	if ctx.window != nil {
		errs = append(errs, ctx.window.Close())
	}
	if ctx.Filesystem != nil {
		errs = append(errs, ctx.Filesystem.Close())
	}
	core.LogDebug("context %s closed", ctx.ID)
	return errors.Join(errs...)
}
