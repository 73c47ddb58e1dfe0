package platform

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/anima2d/engine/config"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/math"
)

// GLFWWindow is a desktop window. Frames are blitted with glDrawPixels on a
// legacy OpenGL context.
type GLFWWindow struct {
	window *glfw.Window
	queue  eventQueue
}

func NewGLFWWindow(cfg config.WindowConfig) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	core.LogDebug("OpenGL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	w := &GLFWWindow{window: window}
	window.SetCloseCallback(w.closeCallback)
	window.SetKeyCallback(w.keyCallback)
	window.SetMouseButtonCallback(w.mouseButtonCallback)
	window.SetCursorPosCallback(w.cursorPosCallback)
	window.SetScrollCallback(w.scrollCallback)
	window.SetSizeCallback(w.sizeCallback)
	window.SetFocusCallback(w.focusCallback)
	window.SetPosCallback(w.posCallback)
	window.SetPos(cfg.PosX, cfg.PosY)
	window.Show()

	return w, nil
}

// Push is safe to call from any goroutine.
func (w *GLFWWindow) Push(events ...core.Event) {
	w.queue.push(events...)
}

func (w *GLFWWindow) Poll() []core.Event {
	glfw.PollEvents()
	return w.queue.drain()
}

// Present draws the frame scaled to the framebuffer, then swaps.
func (w *GLFWWindow) Present(frame *image.RGBA) error {
	fbw, fbh := w.window.GetFramebufferSize()
	b := frame.Bounds()
	if fbw == 0 || fbh == 0 || b.Empty() {
		// minimized
		return nil
	}

	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	// image rows go top to bottom, GL rows bottom to top
	gl.RasterPos2f(-1, 1)
	gl.PixelZoom(float32(fbw)/float32(b.Dx()), -float32(fbh)/float32(b.Dy()))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	gl.DrawPixels(int32(b.Dx()), int32(b.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glDrawPixels failed with 0x%x", code)
	}

	w.window.SwapBuffers()
	return nil
}

func (w *GLFWWindow) Size() (int, int) {
	return w.window.GetSize()
}

func (w *GLFWWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

func (w *GLFWWindow) Close() error {
	w.window.Destroy()
	glfw.Terminate()
	return nil
}

func (w *GLFWWindow) closeCallback(win *glfw.Window) {
	// the application decides whether to actually close
	win.SetShouldClose(false)
	w.queue.push(core.WindowEvent{Kind: core.WindowCloseRequested})
}

func (w *GLFWWindow) keyCallback(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	state := core.Pressed
	if action == glfw.Release {
		state = core.Released
	}
	ev := core.WindowEvent{
		Kind: core.WindowKeyboardInput,
		Keyboard: core.KeyboardInput{
			ScanCode: scancode,
			State:    state,
			Mods:     translateMods(mods),
		},
	}
	if code, ok := translateKey(key); ok {
		ev.Keyboard.KeyCode = &code
	}
	w.queue.push(ev)
}

func (w *GLFWWindow) mouseButtonCallback(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	state := core.Pressed
	if action == glfw.Release {
		state = core.Released
	}
	w.queue.push(core.WindowEvent{
		Kind:  core.WindowMouseInput,
		Mouse: core.MouseInput{Button: b, State: state},
	})
}

func (w *GLFWWindow) cursorPosCallback(win *glfw.Window, xpos, ypos float64) {
	w.queue.push(core.WindowEvent{
		Kind:     core.WindowCursorMoved,
		Position: math.NewVec2(float32(xpos), float32(ypos)),
	})
}

func (w *GLFWWindow) scrollCallback(win *glfw.Window, xoff, yoff float64) {
	w.queue.push(
		core.WindowEvent{Kind: core.WindowMouseWheel, Position: math.NewVec2(float32(xoff), float32(yoff))},
		core.DeviceEvent{Kind: core.DeviceMouseWheel, Delta: math.NewVec2(float32(xoff), float32(yoff))},
	)
}

func (w *GLFWWindow) sizeCallback(win *glfw.Window, width, height int) {
	w.queue.push(core.WindowEvent{Kind: core.WindowResized, Width: width, Height: height})
}

func (w *GLFWWindow) focusCallback(win *glfw.Window, focused bool) {
	w.queue.push(core.WindowEvent{Kind: core.WindowFocused, Focused: focused})
}

func (w *GLFWWindow) posCallback(win *glfw.Window, xpos, ypos int) {
	w.queue.push(core.WindowEvent{Kind: core.WindowMoved, Position: math.NewVec2(float32(xpos), float32(ypos))})
}

var (
	_ Window   = (*GLFWWindow)(nil)
	_ Injector = (*GLFWWindow)(nil)
)
