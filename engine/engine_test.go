package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spaghettifunk/anima2d/engine/audio"
	"github.com/spaghettifunk/anima2d/engine/config"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/platform"
)

func newHeadlessContext(t *testing.T, roots ...string) (*Context, *platform.HeadlessWindow) {
	t.Helper()
	b := NewContextBuilder("enginetest", "anima").
		Backend(config.BackendHeadless).
		WithClock(core.NewManualClock(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	for _, r := range roots {
		b.AddResourcePath(r)
	}
	ctx, events, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	win, ok := events.(*platform.HeadlessWindow)
	if !ok {
		t.Fatalf("expected a headless window, got %T", events)
	}
	return ctx, win
}

func TestBuildAppliesConfigFile(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	conf := "[window]\nwidth = 320\nheight = 240\n\n[timing]\nupdate_rate = 30\n"
	if err := os.WriteFile(filepath.Join(first, config.FileName), []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(second, config.FileName), []byte("[window]\nwidth = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, win := newHeadlessContext(t, first, second)
	if w, h := ctx.Gfx.Size(); w != 320 || h != 240 {
		t.Errorf("expected the first conf.toml to win, got %dx%d", w, h)
	}
	if w, h := win.Size(); w != 320 || h != 240 {
		t.Errorf("window not sized from config: %dx%d", w, h)
	}
	if ctx.Conf.Timing.UpdateRate != 30 {
		t.Errorf("expected update rate 30, got %d", ctx.Conf.Timing.UpdateRate)
	}
	if !ctx.Continuing {
		t.Error("a fresh context is continuing")
	}
	if len(ctx.Filesystem.Roots()) != 2 {
		t.Errorf("expected both roots mounted, got %v", ctx.Filesystem.Roots())
	}
}

func TestBuildFailures(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	badConf := t.TempDir()
	if err := os.WriteFile(filepath.Join(badConf, config.FileName), []byte("[window]\nfullscreen = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := map[string]*ContextBuilder{
		"empty id":    NewContextBuilder("", "anima").Backend(config.BackendHeadless),
		"file root":   NewContextBuilder("x", "anima").Backend(config.BackendHeadless).AddResourcePath(file),
		"unknown key": NewContextBuilder("x", "anima").Backend(config.BackendHeadless).AddResourcePath(badConf),
		"bad size":    NewContextBuilder("x", "anima").Backend(config.BackendHeadless).WindowMode(0, 600),
		"bad backend": NewContextBuilder("x", "anima").Backend(config.Backend("vulkan")),
	}
	for name, b := range cases {
		ctx, events, err := b.Build()
		if !errors.Is(err, core.ErrBuild) {
			t.Errorf("%s: expected ErrBuild, got %v", name, err)
		}
		if ctx != nil || events != nil {
			t.Errorf("%s: a failed build returns nothing", name)
		}
	}
}

func TestBuildSkipsMissingRoot(t *testing.T) {
	ctx, _ := newHeadlessContext(t, filepath.Join(t.TempDir(), "missing"))
	if len(ctx.Filesystem.Roots()) != 0 {
		t.Errorf("missing roots are skipped, got %v", ctx.Filesystem.Roots())
	}
}

func TestBuildUsesProvidedAudioBackend(t *testing.T) {
	backend := audio.NewNullBackend(22050, nil)
	ctx, _, err := NewContextBuilder("x", "anima").
		Backend(config.BackendHeadless).
		WithAudioBackend(backend).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer ctx.Close()
	if ctx.Audio.Backend() != backend || ctx.Audio.SampleRate() != 22050 {
		t.Errorf("expected the provided backend at 22050Hz, got %T at %d", ctx.Audio.Backend(), ctx.Audio.SampleRate())
	}
}

func TestProcessEventUpdatesState(t *testing.T) {
	ctx, _ := newHeadlessContext(t)

	ProcessEvent(ctx, core.NewKeyEvent(core.KeyEscape, core.Pressed))
	if !ctx.Input.IsKeyDown(core.KeyEscape) {
		t.Error("key state not recorded")
	}
	if !ctx.Continuing {
		t.Error("ProcessEvent never quits")
	}

	ProcessEvent(ctx, core.WindowEvent{Kind: core.WindowResized, Width: 0, Height: 0})
	if !ctx.Suspended {
		t.Error("a zero sized window suspends the context")
	}
	ProcessEvent(ctx, core.WindowEvent{Kind: core.WindowResized, Width: 400, Height: 300})
	if ctx.Suspended {
		t.Error("a restored window resumes the context")
	}
	if w, h := ctx.Gfx.Size(); w != 400 || h != 300 {
		t.Errorf("frame buffer not resized: %dx%d", w, h)
	}

	fired := false
	ctx.Events.RegisterWindow(core.WindowFocused, func(ev core.Event) bool {
		fired = true
		return true
	})
	ProcessEvent(ctx, core.WindowEvent{Kind: core.WindowFocused, Focused: false})
	if !fired || ctx.Input.Focused {
		t.Error("focus events update the input state and reach listeners")
	}
}

type countingHandler struct {
	updates, draws int
	failAt         int
	quitVetoes     int
	keys           []core.KeyCode
}

func (h *countingHandler) Update(ctx *Context) error {
	h.updates++
	if h.failAt > 0 && h.updates == h.failAt {
		return errors.New("update failed")
	}
	return nil
}

func (h *countingHandler) Draw(ctx *Context) error {
	h.draws++
	return nil
}

type vetoHandler struct {
	countingHandler
}

func (h *vetoHandler) QuitEvent(ctx *Context) (bool, error) {
	if h.quitVetoes > 0 {
		h.quitVetoes--
		return true, nil
	}
	return false, nil
}

type keyHandler struct {
	countingHandler
}

func (h *keyHandler) KeyDownEvent(ctx *Context, key core.KeyCode, mods core.KeyMods, repeat bool) error {
	h.keys = append(h.keys, key)
	if key == core.KeyQ {
		RequestQuit(ctx)
	}
	return nil
}

func TestRunCloseCompletesIteration(t *testing.T) {
	ctx, win := newHeadlessContext(t)
	win.Script(nil, nil, []core.Event{core.WindowEvent{Kind: core.WindowCloseRequested}})

	h := &countingHandler{}
	if err := Run(ctx, win, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.updates != 3 || h.draws != 3 {
		t.Errorf("expected 3 full iterations, got %d updates and %d draws", h.updates, h.draws)
	}
	if !win.Closed() {
		t.Error("Run closes the context")
	}
}

func TestRunEscapeQuits(t *testing.T) {
	ctx, win := newHeadlessContext(t)
	win.Script([]core.Event{core.NewKeyEvent(core.KeyEscape, core.Pressed)})

	h := &countingHandler{}
	if err := Run(ctx, win, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.updates != 1 {
		t.Errorf("expected the escape iteration to complete, got %d updates", h.updates)
	}
}

func TestRunQuitVeto(t *testing.T) {
	ctx, win := newHeadlessContext(t)
	closeEv := []core.Event{core.WindowEvent{Kind: core.WindowCloseRequested}}
	win.Script(closeEv, closeEv)

	h := &vetoHandler{countingHandler{quitVetoes: 1}}
	if err := Run(ctx, win, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.updates != 2 {
		t.Errorf("expected the first close to be vetoed, got %d updates", h.updates)
	}
}

func TestRunKeyDownHandler(t *testing.T) {
	ctx, win := newHeadlessContext(t)
	win.Script(
		[]core.Event{core.NewKeyEvent(core.KeyEscape, core.Pressed)},
		[]core.Event{core.NewKeyEvent(core.KeyA, core.Released), core.NewKeyEvent(core.KeyQ, core.Pressed)},
	)

	h := &keyHandler{}
	if err := Run(ctx, win, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.updates != 2 {
		t.Errorf("escape must not quit when the handler takes keys, got %d updates", h.updates)
	}
	if len(h.keys) != 2 || h.keys[0] != core.KeyEscape || h.keys[1] != core.KeyQ {
		t.Errorf("expected only presses to reach the handler, got %v", h.keys)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	ctx, win := newHeadlessContext(t)

	h := &countingHandler{failAt: 4}
	err := Run(ctx, win, h)
	if err == nil || err.Error() != "update failed" {
		t.Fatalf("expected the update error, got %v", err)
	}
	if h.draws != 3 {
		t.Errorf("no draw after a failed update, got %d", h.draws)
	}
	if !win.Closed() {
		t.Error("the context is closed on error too")
	}
}

func TestBuildTitleShowsIDInDebug(t *testing.T) {
	t.Cleanup(func() { core.SetLogLevel(core.InfoLevel) })
	for _, level := range []string{"info", "debug"} {
		cfg := config.Default()
		cfg.Window.Title = "titled"
		cfg.Log.Level = level
		ctx, events, err := NewContextBuilder("x", "anima").
			WithConfig(cfg).
			Backend(config.BackendHeadless).
			Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		title := events.(*platform.HeadlessWindow).Title()
		withID := strings.Contains(title, ctx.ID.String())
		if !strings.HasPrefix(title, "titled") || withID != (level == "debug") {
			t.Errorf("%s: unexpected window title %q", level, title)
		}
		ctx.Close()
	}
}

// soundHandler starts a detached sound on its first update and lets 100ms
// pass per iteration.
type soundHandler struct {
	clock   *core.ManualClock
	started bool
	held    []int
}

func (h *soundHandler) Update(ctx *Context) error {
	if !h.started {
		src, err := audio.NewSource(ctx.Filesystem, ctx.Audio, "/beep.wav")
		if err != nil {
			return err
		}
		if err := src.PlayDetached(); err != nil {
			return err
		}
		h.started = true
	} else {
		h.held = append(h.held, ctx.Audio.Held())
	}
	h.clock.Advance(100 * time.Millisecond)
	return nil
}

func (h *soundHandler) Draw(ctx *Context) error {
	return nil
}

func TestRunReapsFinishedSounds(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "beep.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if err := audio.WriteWAV(f, audio.Sweep(440, 440, 250*time.Millisecond, 44100), 44100); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	clock := core.NewManualClock(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, events, err := NewContextBuilder("x", "anima").
		AddResourcePath(dir).
		Backend(config.BackendHeadless).
		WithClock(clock).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	win := events.(*platform.HeadlessWindow)
	win.Script(nil, nil, nil, nil, []core.Event{core.WindowEvent{Kind: core.WindowCloseRequested}})

	h := &soundHandler{clock: clock}
	if err := Run(ctx, win, h); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 250ms of sound: held at 100ms and 200ms, released from 300ms on
	want := []int{1, 1, 0, 0}
	if len(h.held) != len(want) {
		t.Fatalf("expected %d samples, got %v", len(want), h.held)
	}
	for i := range want {
		if h.held[i] != want[i] {
			t.Fatalf("finished players must be released by the loop, got %v", h.held)
		}
	}
}
