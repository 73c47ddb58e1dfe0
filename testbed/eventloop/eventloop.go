// Package eventloop drives a context by hand: the caller owns the loop, polls
// the window events and decides when to update and draw.
package eventloop

import (
	"github.com/spaghettifunk/anima2d/engine"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/graphics"
	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/platform"
)

const (
	// the circle walks across [1, maxPosition] and wraps
	maxPosition = 800
	circleY     = 380
	radius      = 100
	tolerance   = 2.0
)

var background = graphics.ColorFromFloats(0.1, 0.2, 0.3, 1.0)

type Driver struct {
	ctx      *engine.Context
	events   platform.EventSource
	position int
	frames   int
}

func NewDriver(ctx *engine.Context, events platform.EventSource) *Driver {
	return &Driver{ctx: ctx, events: events}
}

// Run loops until the context stops continuing. A close request lets the
// current iteration finish; Escape returns at once, skipping its update and
// draw.
func Run(ctx *engine.Context, events platform.EventSource) error {
	return NewDriver(ctx, events).Run()
}

func (d *Driver) Run() error {
	ctx := d.ctx
	for ctx.Continuing {
		ctx.Timer.Tick()
		ctx.Input.Update()
		ctx.Audio.Reap()

		for _, ev := range d.events.Poll() {
			engine.ProcessEvent(ctx, ev)
			switch e := ev.(type) {
			case core.WindowEvent:
				switch {
				case e.Kind == core.WindowCloseRequested:
					engine.RequestQuit(ctx)
				case e.Kind == core.WindowKeyboardInput && e.Keyboard.Is(core.KeyEscape, core.Pressed):
					return nil
				default:
					core.LogDebug("other window event fired: %v", e)
				}
			case core.DeviceEvent:
				core.LogDebug("device event fired: %v", e)
			}
		}

		d.update()
		if err := d.draw(); err != nil {
			return err
		}
		d.frames++
		ctx.Timer.YieldNow()
	}
	return nil
}

// Frames is the number of completed iterations.
func (d *Driver) Frames() int {
	return d.frames
}

func (d *Driver) Position() int {
	return d.position
}

func (d *Driver) update() {
	d.position = d.position%maxPosition + 1
}

func (d *Driver) draw() error {
	canvas := graphics.NewCanvasFromFrame(d.ctx.Gfx, background)
	circle, err := graphics.NewCircleMesh(graphics.FillMode(), math.NewVec2Zero(), radius, tolerance, graphics.White)
	if err != nil {
		return err
	}
	if err := canvas.Draw(circle, graphics.NewDrawParam().Dest(float32(d.position), circleY)); err != nil {
		return err
	}
	return canvas.Finish()
}
