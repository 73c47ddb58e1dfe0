package graphics

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

// Text is a laid out string. Glyph coverage is rendered once into an alpha
// mask; drawing fills the mask with the DrawParam tint.
type Text struct {
	font    *Font
	content string
	size    float32
	mask    *image.Alpha
}

func NewText(f *Font, content string, size float32) (*Text, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil font", core.ErrResourceLoad)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid text size %.1f", core.ErrResourceLoad, size)
	}
	t := &Text{font: f, content: content, size: size}

	var err error
	if f.IsBitmap() {
		t.mask = layoutBitmap(f.bitmap, content, size)
	} else {
		t.mask, err = layoutSystem(f, content, size)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Text) Content() string {
	return t.content
}

func (t *Text) Size() float32 {
	return t.size
}

func (t *Text) Dimensions() image.Rectangle {
	return t.mask.Bounds()
}

func (t *Text) drawTo(dst *image.RGBA, p DrawParam) error {
	mask := t.mask
	if !p.isIdentityScale() {
		b := mask.Bounds()
		w := int(float32(b.Dx()) * p.ScaleFactor.X)
		h := int(float32(b.Dy()) * p.ScaleFactor.Y)
		if w <= 0 || h <= 0 {
			return nil
		}
		scaled := image.NewAlpha(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), mask, b, xdraw.Src, nil)
		mask = scaled
	}
	dp := image.Pt(int(p.DestPoint.X), int(p.DestPoint.Y))
	r := mask.Bounds().Add(dp)
	draw.DrawMask(dst, r, image.NewUniform(p.Tint), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	return nil
}

func layoutSystem(f *Font, content string, size float32) (*image.Alpha, error) {
	face, err := opentype.NewFace(f.system, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: font %s at %.1fpx: %w", core.ErrResourceLoad, f.name, size, err)
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	lines := strings.Split(content, "\n")
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height := lineHeight*(len(lines)-1) + ascent + descent
	if content == "" {
		width, height = 0, 0
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(0, ascent+i*lineHeight)
		d.DrawString(line)
	}
	return mask, nil
}

// layoutBitmap renders at the font native size, then scales the mask to the
// requested pixel size.
func layoutBitmap(bf *resources.BitmapFontResourceData, content string, size float32) *image.Alpha {
	lines := strings.Split(content, "\n")
	width := 0
	for _, line := range lines {
		if w := bitmapLineWidth(bf, line); w > width {
			width = w
		}
	}
	height := bf.LineHeight * len(lines)
	if content == "" {
		width, height = 0, 0
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	for i, line := range lines {
		x, y := 0, i*bf.LineHeight
		prev := rune(-1)
		for _, r := range line {
			g, ok := bf.Glyphs[r]
			if !ok {
				prev = -1
				continue
			}
			x += bf.Kernings[[2]rune{prev, r}]
			if g.PageID >= 0 && g.PageID < len(bf.Pages) && bf.Pages[g.PageID] != nil {
				blitGlyph(mask, bf.Pages[g.PageID], g, x+g.XOffset, y+g.YOffset)
			}
			x += g.XAdvance
			prev = r
		}
	}

	native := bf.Size
	if native < 0 {
		native = -native
	}
	if native == 0 || int(size) == native || width == 0 {
		return mask
	}
	factor := size / float32(native)
	w, h := int(float32(width)*factor), int(float32(height)*factor)
	if w <= 0 || h <= 0 {
		return image.NewAlpha(image.Rectangle{})
	}
	scaled := image.NewAlpha(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), xdraw.Src, nil)
	return scaled
}

func bitmapLineWidth(bf *resources.BitmapFontResourceData, line string) int {
	x, width := 0, 0
	prev := rune(-1)
	for _, r := range line {
		g, ok := bf.Glyphs[r]
		if !ok {
			prev = -1
			continue
		}
		x += bf.Kernings[[2]rune{prev, r}]
		if right := x + g.XOffset + g.Width; right > width {
			width = right
		}
		x += g.XAdvance
		prev = r
	}
	if x > width {
		width = x
	}
	return width
}

func blitGlyph(mask *image.Alpha, page image.Image, g resources.FontGlyph, dx, dy int) {
	pb := page.Bounds()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			px, py := pb.Min.X+g.X+x, pb.Min.Y+g.Y+y
			tx, ty := dx+x, dy+y
			if !image.Pt(tx, ty).In(mask.Rect) || !image.Pt(px, py).In(pb) {
				continue
			}
			a := pageCoverage(page, px, py)
			if a > mask.AlphaAt(tx, ty).A {
				mask.SetAlpha(tx, ty, color.Alpha{A: a})
			}
		}
	}
}

// pageCoverage reads glyph coverage: the alpha channel, or the luminance for
// greyscale sheets exported without alpha.
func pageCoverage(page image.Image, x, y int) uint8 {
	if gray, ok := page.(*image.Gray); ok {
		return gray.GrayAt(x, y).Y
	}
	_, _, _, a := page.At(x, y).RGBA()
	return uint8(a >> 8)
}
