package graphics

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

type Image struct {
	name   string
	pixels *image.RGBA

	// last tinted copy, the showcase tints with a new grey every few frames
	tint       Color
	tintCached *image.RGBA
}

// NewImageFromPath loads and decodes an image resource such as "/dragon1.png".
func NewImageFromPath(fs *assets.Filesystem, path string) (*Image, error) {
	res, err := fs.Load(path, nil)
	if err != nil {
		return nil, err
	}
	data, ok := res.Data.(*resources.ImageResourceData)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an image (%s)", core.ErrResourceLoad, path, res.Type)
	}
	img := NewImageFromImage(data.Image)
	img.name = res.Name
	return img, nil
}

func NewImageFromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &Image{pixels: rgba}
}

// NewSolidImage is a w*h image filled with c.
func NewSolidImage(w, h int, c Color) *Image {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return &Image{pixels: rgba}
}

func (i *Image) Name() string {
	return i.name
}

func (i *Image) Width() int {
	return i.pixels.Bounds().Dx()
}

func (i *Image) Height() int {
	return i.pixels.Bounds().Dy()
}

func (i *Image) Dimensions() image.Rectangle {
	return i.pixels.Bounds()
}

func (i *Image) drawTo(dst *image.RGBA, p DrawParam) error {
	src := i.tinted(p.Tint)
	if p.isIdentityScale() {
		dp := image.Pt(int(p.DestPoint.X), int(p.DestPoint.Y))
		r := src.Bounds().Add(dp)
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
		return nil
	}
	s2d := f64.Aff3{
		float64(p.ScaleFactor.X), 0, float64(p.DestPoint.X),
		0, float64(p.ScaleFactor.Y), float64(p.DestPoint.Y),
	}
	xdraw.ApproxBiLinear.Transform(dst, s2d, src, src.Bounds(), xdraw.Over, nil)
	return nil
}

func (i *Image) tinted(c Color) *image.RGBA {
	if c.IsWhite() {
		return i.pixels
	}
	if i.tintCached != nil && i.tint == c {
		return i.tintCached
	}
	out := image.NewRGBA(i.pixels.Bounds())
	pix, src := out.Pix, i.pixels.Pix
	// Pix is premultiplied: color channels take the tint alpha as well
	for k := 0; k+3 < len(src); k += 4 {
		pix[k+0] = mulByte(mulByte(src[k+0], c.R), c.A)
		pix[k+1] = mulByte(mulByte(src[k+1], c.G), c.A)
		pix[k+2] = mulByte(mulByte(src[k+2], c.B), c.A)
		pix[k+3] = mulByte(src[k+3], c.A)
	}
	i.tint, i.tintCached = c, out
	return out
}
