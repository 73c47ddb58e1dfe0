package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/anima2d/engine/resources"
)

type SystemFontLoader struct{}

// Load parses a .ttf/.otf file. For a .ttc collection the first face is used.
func (fl *SystemFontLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f *sfnt.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		c, err := opentype.ParseCollection(fontBytes)
		if err != nil {
			return nil, err
		}
		if c.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection %s is empty", path)
		}
		f, err = c.Font(0)
		if err != nil {
			return nil, err
		}
	} else {
		f, err = opentype.Parse(fontBytes)
		if err != nil {
			return nil, err
		}
	}

	return &resources.Resource{
		FullPath: path,
		DataSize: uint64(len(fontBytes)),
		Data:     &resources.SystemFontResourceData{Font: f},
	}, nil
}

func (fl *SystemFontLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
