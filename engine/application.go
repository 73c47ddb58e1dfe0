package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/audio"
	"github.com/spaghettifunk/anima2d/engine/config"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/graphics"
	"github.com/spaghettifunk/anima2d/engine/platform"
)

// ContextBuilder collects the settings of a run context. Builder values are
// the defaults; a conf.toml found in the resource paths overrides them.
type ContextBuilder struct {
	gameID string
	author string
	paths  []string
	conf   *config.Config
	audio  audio.Backend
	clock  core.Clock

	hasTitle bool
	hasMode  bool
	hasKind  bool
	title    string
	width    int
	height   int
	backend  config.Backend
}

func NewContextBuilder(gameID, author string) *ContextBuilder {
	return &ContextBuilder{gameID: gameID, author: author}
}

// AddResourcePath appends a resource root. Earlier roots take precedence.
func (b *ContextBuilder) AddResourcePath(path string) *ContextBuilder {
	b.paths = append(b.paths, path)
	return b
}

func (b *ContextBuilder) WindowSetup(title string) *ContextBuilder {
	b.title, b.hasTitle = title, true
	return b
}

func (b *ContextBuilder) WindowMode(width, height int) *ContextBuilder {
	b.width, b.height, b.hasMode = width, height, true
	return b
}

func (b *ContextBuilder) Backend(kind config.Backend) *ContextBuilder {
	b.backend, b.hasKind = kind, true
	return b
}

// WithConfig replaces the built-in defaults the builder starts from.
func (b *ContextBuilder) WithConfig(cfg *config.Config) *ContextBuilder {
	b.conf = cfg
	return b
}

func (b *ContextBuilder) WithAudioBackend(backend audio.Backend) *ContextBuilder {
	b.audio = backend
	return b
}

func (b *ContextBuilder) WithClock(clock core.Clock) *ContextBuilder {
	b.clock = clock
	return b
}

// Build opens everything the context needs. The returned EventSource is the
// window; with the headless backend it is a *platform.HeadlessWindow.
func (b *ContextBuilder) Build() (*Context, platform.EventSource, error) {
	ctx, err := b.build()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", core.ErrBuild, err)
	}
	return ctx, ctx.window, nil
}

func (b *ContextBuilder) build() (_ *Context, err error) {
	if b.gameID == "" {
		return nil, fmt.Errorf("empty game id")
	}

	cfg, err := b.loadConfig()
	if err != nil {
		return nil, err
	}
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	core.SetLogLevel(level)

	ctx := &Context{
		ID:         uuid.New(),
		Conf:       cfg,
		Continuing: true,
		Timer:      core.NewTimer(b.clock),
		Input:      core.NewInputState(),
		Events:     core.NewEventBus(),
	}
	defer func() {
		if err != nil {
			_ = ctx.Close()
		}
	}()

	if ctx.Filesystem, err = assets.NewFilesystem(); err != nil {
		return nil, err
	}
	for _, p := range b.paths {
		if err := ctx.Filesystem.Mount(p); err != nil {
			return nil, err
		}
	}

	switch cfg.Backend.Kind {
	case config.BackendGLFW:
		if ctx.window, err = platform.NewGLFWWindow(cfg.Window); err != nil {
			return nil, err
		}
	case config.BackendHeadless:
		ctx.window = platform.NewHeadlessWindow(cfg.Window.Width, cfg.Window.Height)
	}

	title := cfg.Window.Title
	if level == core.DebugLevel {
		title = fmt.Sprintf("%s [%s]", title, ctx.ID)
	}
	ctx.window.SetTitle(title)

	width, height := ctx.window.Size()
	if ctx.Gfx, err = graphics.NewContext(width, height, ctx.window); err != nil {
		return nil, err
	}

	backend := b.audio
	if backend == nil {
		if cfg.Backend.Kind == config.BackendGLFW {
			if backend, err = audio.NewEbitenBackend(cfg.Audio.SampleRate); err != nil {
				return nil, err
			}
		} else {
			backend = audio.NewNullBackend(cfg.Audio.SampleRate, b.clock)
		}
	}
	ctx.Audio = audio.NewMixer(backend)
	audio.RegisterLoader(ctx.Filesystem)

	core.LogInfo("context %s built for %s by %s (%s, %dx%d)", ctx.ID, b.gameID, b.author, cfg.Backend.Kind, width, height)
	return ctx, nil
}

func (b *ContextBuilder) loadConfig() (*config.Config, error) {
	base := config.Default()
	if b.conf != nil {
		c := *b.conf
		base = &c
	}
	if b.hasTitle {
		base.Window.Title = b.title
	}
	if b.hasMode {
		base.Window.Width, base.Window.Height = b.width, b.height
	}
	if b.hasKind {
		base.Backend.Kind = b.backend
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	for _, p := range b.paths {
		cfg, found, err := config.Load(p, base)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", config.FileName, p, err)
		}
		if found {
			core.LogDebug("configuration loaded from %s", p)
			return cfg, nil
		}
	}
	return base, nil
}
