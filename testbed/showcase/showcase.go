// Package showcase is a callback driven game: engine.Run owns the loop and
// calls Update and Draw on a MainState.
package showcase

import (
	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/audio"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/graphics"
	"github.com/spaghettifunk/anima2d/engine/math"

	"golang.org/x/exp/rand"
)

const (
	upperBound = 250
	seed       = 271828
	numLines   = 100
	lineWidth  = 3
	// crazy line offsets fall in (-maxOffset, maxOffset)
	maxOffset = 50

	imagePath = "/dragon1.png"
	fontPath  = "/LiberationMono-Regular.ttf"
)

// the sound is looked up in this order
var soundPaths = []string{"/sound/pew.ogg", "/sound/pew.wav"}

var (
	background = graphics.ColorFromFloats(0.1, 0.2, 0.3, 1.0)
	lineOrigin = math.NewVec2(400, 300)
	bandRect   = math.NewRect(0, 256, 500, 32)
)

type MainState struct {
	a         int32
	direction int32
	image     *graphics.Image
	text      *graphics.Text
	caption   *graphics.Text
	rng       *rand.Rand
}

// NewMainState loads the image, the font and the sound, stopping at the first
// failure. The sound starts playing detached and is not kept.
func NewMainState(ctx *engine.Context) (*MainState, error) {
	for _, res := range ctx.Filesystem.Resources() {
		core.LogDebug("resource %s (%s)", res.Path, res.Type)
	}

	image, err := graphics.NewImageFromPath(ctx.Filesystem, imagePath)
	if err != nil {
		return nil, err
	}
	font, err := graphics.NewFontFromPath(ctx.Filesystem, fontPath)
	if err != nil {
		return nil, err
	}
	text, err := graphics.NewText(font, "Hello world!", 48)
	if err != nil {
		return nil, err
	}
	caption, err := graphics.NewText(font, "This text is 32 pixels high", 32)
	if err != nil {
		return nil, err
	}
	sound, err := audio.NewSource(ctx.Filesystem, ctx.Audio, soundPath(ctx))
	if err != nil {
		return nil, err
	}
	// detached sounds keep playing after the source is dropped
	if err := sound.PlayDetached(); err != nil {
		return nil, err
	}

	return &MainState{
		a:         0,
		direction: 1,
		image:     image,
		text:      text,
		caption:   caption,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

func soundPath(ctx *engine.Context) string {
	for _, p := range soundPaths {
		if ctx.Filesystem.Exists(p) {
			return p
		}
	}
	return soundPaths[0]
}

// Update steps the counter at the configured [timing] update_rate.
func (s *MainState) Update(ctx *engine.Context) error {
	for ctx.Timer.CheckUpdateTime(ctx.Conf.Timing.UpdateRate) {
		if s.step() {
			core.LogInfo("delta frame time: %v", ctx.Timer.Delta())
			core.LogInfo("average FPS: %.2f", ctx.Timer.FPS())
		}
	}
	return nil
}

// step advances the counter once and reports whether the direction flipped.
func (s *MainState) step() bool {
	s.a += s.direction
	if s.a > upperBound || s.a <= 0 {
		s.direction = -s.direction
		return true
	}
	return false
}

func (s *MainState) Draw(ctx *engine.Context) error {
	c := uint8(s.a)
	tint := graphics.Color{R: c, G: c, B: c, A: 255}
	canvas := graphics.NewCanvasFromFrame(ctx.Gfx, background)

	origin := graphics.NewDrawParam().Color(tint)
	if err := canvas.Draw(s.image, origin); err != nil {
		return err
	}
	if err := canvas.Draw(s.text, origin); err != nil {
		return err
	}

	band, err := graphics.NewRectangleMesh(graphics.FillMode(), bandRect, graphics.Black)
	if err != nil {
		return err
	}
	if err := canvas.Draw(band, graphics.NewDrawParam()); err != nil {
		return err
	}
	if err := canvas.Draw(s.caption, graphics.NewDrawParam().Dest(bandRect.X, bandRect.Y)); err != nil {
		return err
	}

	if err := s.drawCrazyLines(canvas); err != nil {
		return err
	}
	if err := canvas.Finish(); err != nil {
		return err
	}
	ctx.Timer.YieldNow()
	return nil
}

type crazyLine struct {
	from, to math.Vec2
	color    graphics.Color
}

// crazyLinePoints draws n colors and then n offsets from rng, chaining the
// segments from lineOrigin.
func crazyLinePoints(rng *rand.Rand, n int) []crazyLine {
	colors := make([]graphics.Color, n)
	for i := range colors {
		r := uint8(rng.Uint32())
		b := uint8(rng.Uint32())
		g := uint8(rng.Uint32())
		colors[i] = graphics.Color{R: r, G: g, B: b, A: 255}
	}

	lines := make([]crazyLine, n)
	last := lineOrigin
	for i, c := range colors {
		x := float32(int32(rng.Uint32()) % maxOffset)
		y := float32(int32(rng.Uint32()) % maxOffset)
		p := math.NewVec2(last.X+x, last.Y+y)
		lines[i] = crazyLine{from: last, to: p, color: c}
		last = p
	}
	return lines
}

// crazyLinesMesh builds a single mesh out of numLines fresh random segments.
func crazyLinesMesh(rng *rand.Rand) (*graphics.Mesh, error) {
	mb := graphics.NewMeshBuilder()
	for _, l := range crazyLinePoints(rng, numLines) {
		if err := mb.Line([]math.Vec2{l.from, l.to}, lineWidth, l.color); err != nil {
			return nil, err
		}
	}
	return mb.Build()
}

// drawCrazyLines submits the segments as one mesh. Nothing is drawn if any
// segment is rejected.
func (s *MainState) drawCrazyLines(canvas *graphics.Canvas) error {
	mesh, err := crazyLinesMesh(s.rng)
	if err != nil {
		return err
	}
	return canvas.Draw(mesh, graphics.NewDrawParam())
}
