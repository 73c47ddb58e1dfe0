package loaders

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/anima2d/engine/resources"
)

type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, err
	}
	desc := font.Descriptor

	outData := &resources.BitmapFontResourceData{
		Face:       desc.Info.Face,
		Size:       int(desc.Info.Size),
		LineHeight: int(desc.Common.LineHeight),
		Baseline:   int(desc.Common.Base),
		Glyphs:     make(map[rune]resources.FontGlyph, len(desc.Chars)),
		Kernings:   make(map[[2]rune]int, len(desc.Kerning)),
	}

	// page sheets are stored next to the descriptor
	dir := filepath.Dir(path)
	maxID := -1
	files := map[int]string{}
	for _, p := range desc.Pages {
		files[int(p.ID)] = p.File
		if int(p.ID) > maxID {
			maxID = int(p.ID)
		}
	}
	outData.Pages = make([]image.Image, maxID+1)
	dataSize := uint64(0)
	for id, file := range files {
		img, err := decodePage(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("bitmap font page %d: %w", id, err)
		}
		outData.Pages[id] = img
		b := img.Bounds()
		dataSize += uint64(b.Dx() * b.Dy())
	}

	for _, g := range desc.Chars {
		outData.Glyphs[rune(g.ID)] = resources.FontGlyph{
			Codepoint: rune(g.ID),
			X:         int(g.X),
			Y:         int(g.Y),
			Width:     int(g.Width),
			Height:    int(g.Height),
			XOffset:   int(g.XOffset),
			YOffset:   int(g.YOffset),
			XAdvance:  int(g.XAdvance),
			PageID:    int(g.Page),
		}
	}

	for p, k := range desc.Kerning {
		outData.Kernings[[2]rune{rune(p.First), rune(p.Second)}] = int(k.Amount)
	}

	return &resources.Resource{
		FullPath: path,
		DataSize: dataSize,
		Data:     outData,
	}, nil
}

func (fl *BitmapFontLoader) Unload(res *resources.Resource) error {
	if res.Data != nil {
		data := res.Data.(*resources.BitmapFontResourceData)
		data.Glyphs = nil
		data.Pages = nil
		data.Kernings = nil
		res.Data = nil
		res.DataSize = 0
		res.FullPath = ""
	}
	return nil
}

func decodePage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	return img, err
}
