package engine

import (
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
)

// EventHandler is the game side of Run.
type EventHandler interface {
	Update(ctx *Context) error
	Draw(ctx *Context) error
}

// KeyDownHandler replaces the default "escape quits" behavior.
type KeyDownHandler interface {
	KeyDownEvent(ctx *Context, key core.KeyCode, mods core.KeyMods, repeat bool) error
}

// QuitHandler can veto a close request by returning true.
type QuitHandler interface {
	QuitEvent(ctx *Context) (bool, error)
}

type ResizeHandler interface {
	ResizeEvent(ctx *Context, width, height int) error
}

// Run drives handler until the context stops continuing or a callback fails.
// Each iteration ticks the timer, dispatches the pending events, then calls
// Update and Draw. The context is closed on return.
func Run(ctx *Context, events platform.EventSource, handler EventHandler) (err error) {
	defer func() {
		if cerr := ctx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for ctx.Continuing {
		ctx.Timer.Tick()
		ctx.Input.Update()
		ctx.Audio.Reap()

		for _, ev := range events.Poll() {
			ProcessEvent(ctx, ev)
			if err := dispatch(ctx, ev, handler); err != nil {
				return err
			}
		}

		if !ctx.Suspended {
			if err := handler.Update(ctx); err != nil {
				return err
			}
			if err := handler.Draw(ctx); err != nil {
				return err
			}
		}
		ctx.Timer.YieldNow()
	}
	return nil
}

func dispatch(ctx *Context, ev core.Event, handler EventHandler) error {
	we, ok := ev.(core.WindowEvent)
	if !ok {
		return nil
	}

	switch we.Kind {
	case core.WindowCloseRequested:
		if qh, ok := handler.(QuitHandler); ok {
			veto, err := qh.QuitEvent(ctx)
			if err != nil {
				return err
			}
			if veto {
				core.LogDebug("quit vetoed by the handler")
				return nil
			}
		}
		RequestQuit(ctx)

	case core.WindowKeyboardInput:
		kb := we.Keyboard
		if kb.State != core.Pressed || kb.KeyCode == nil {
			return nil
		}
		code := *kb.KeyCode
		if kh, ok := handler.(KeyDownHandler); ok {
			// down in the previous frame means the key is being held
			repeat := ctx.Input.WasKeyDown(code)
			return kh.KeyDownEvent(ctx, code, kb.Mods, repeat)
		}
		if code == core.KeyEscape {
			RequestQuit(ctx)
		}

	case core.WindowResized:
		if rh, ok := handler.(ResizeHandler); ok && we.Width > 0 && we.Height > 0 {
			return rh.ResizeEvent(ctx, we.Width, we.Height)
		}
	}
	return nil
}
