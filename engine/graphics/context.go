package graphics

import (
	"fmt"
	"image"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// Presenter puts a finished frame on screen.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// Context owns the frame buffer every canvas draws into.
type Context struct {
	frame     *image.RGBA
	presenter Presenter
	presents  uint64
}

func NewContext(width, height int, presenter Presenter) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid frame size %dx%d", core.ErrBuild, width, height)
	}
	return &Context{
		frame:     image.NewRGBA(image.Rect(0, 0, width, height)),
		presenter: presenter,
	}, nil
}

// Resize reallocates the frame buffer. The content is dropped, the next
// canvas clears it anyway.
func (c *Context) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if b := c.frame.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	c.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	core.LogDebug("frame buffer resized to %dx%d", width, height)
}

func (c *Context) Size() (int, int) {
	b := c.frame.Bounds()
	return b.Dx(), b.Dy()
}

// Frame exposes the frame buffer, mostly for screenshots and tests.
func (c *Context) Frame() *image.RGBA {
	return c.frame
}

// Presents counts the frames handed to the presenter.
func (c *Context) Presents() uint64 {
	return c.presents
}

func (c *Context) present() error {
	if c.presenter == nil {
		return fmt.Errorf("%w: no presenter attached", core.ErrDraw)
	}
	if err := c.presenter.Present(c.frame); err != nil {
		return fmt.Errorf("%w: present: %w", core.ErrDraw, err)
	}
	c.presents++
	return nil
}
