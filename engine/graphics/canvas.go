package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// Drawable is anything a Canvas can draw: *Image, *Text and *Mesh.
type Drawable interface {
	Dimensions() image.Rectangle
	drawTo(dst *image.RGBA, p DrawParam) error
}

var errCanvasFinished = errors.New("canvas already finished")

// Canvas records draw calls for one frame. Everything is rasterized straight
// into the context frame buffer; Finish presents it.
type Canvas struct {
	gfx      *Context
	finished bool
	draws    int
}

// NewCanvasFromFrame clears the frame buffer to clear and returns a canvas
// targeting it.
func NewCanvasFromFrame(gfx *Context, clear Color) *Canvas {
	c := &Canvas{gfx: gfx}
	c.Clear(clear)
	return c
}

func (c *Canvas) Clear(clear Color) {
	draw.Draw(c.gfx.frame, c.gfx.frame.Bounds(), image.NewUniform(clear), image.Point{}, draw.Src)
}

func (c *Canvas) Draw(d Drawable, p DrawParam) error {
	if c.finished {
		return fmt.Errorf("%w: %w", core.ErrDraw, errCanvasFinished)
	}
	if d == nil {
		return fmt.Errorf("%w: nil drawable", core.ErrDraw)
	}
	if p == (DrawParam{}) {
		p = NewDrawParam()
	}
	if err := d.drawTo(c.gfx.frame, p); err != nil {
		if errors.Is(err, core.ErrDraw) {
			return err
		}
		return fmt.Errorf("%w: %w", core.ErrDraw, err)
	}
	c.draws++
	return nil
}

// Draws is the number of successful Draw calls on this canvas.
func (c *Canvas) Draws() int {
	return c.draws
}

// Finish presents the frame. The canvas cannot be drawn to afterwards.
func (c *Canvas) Finish() error {
	if c.finished {
		return fmt.Errorf("%w: %w", core.ErrDraw, errCanvasFinished)
	}
	c.finished = true
	return c.gfx.present()
}
