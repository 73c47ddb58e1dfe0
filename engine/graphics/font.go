package graphics

import (
	"fmt"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

// Font is either a scalable TrueType/OpenType font or an AngelCode bitmap
// font. Text layouts are built from it at a given pixel size.
type Font struct {
	name   string
	system *sfnt.Font
	bitmap *resources.BitmapFontResourceData
}

// NewFontFromPath loads "/LiberationMono-Regular.ttf" style resources. .fnt
// files are read as bitmap fonts.
func NewFontFromPath(fs *assets.Filesystem, path string) (*Font, error) {
	res, err := fs.Load(path, nil)
	if err != nil {
		return nil, err
	}
	switch data := res.Data.(type) {
	case *resources.SystemFontResourceData:
		return &Font{name: res.Name, system: data.Font}, nil
	case *resources.BitmapFontResourceData:
		return &Font{name: res.Name, bitmap: data}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a font (%s)", core.ErrResourceLoad, path, res.Type)
	}
}

func NewFontFromBytes(name string, ttf []byte) (*Font, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %w", core.ErrResourceLoad, name, err)
	}
	return &Font{name: name, system: f}, nil
}

// DefaultFont is Go Regular, always available without any resource path.
func DefaultFont() (*Font, error) {
	return NewFontFromBytes("Go Regular", goregular.TTF)
}

func (f *Font) Name() string {
	return f.name
}

func (f *Font) IsBitmap() bool {
	return f.bitmap != nil
}
