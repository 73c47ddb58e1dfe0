package loaders

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/anima2d/engine/resources"
)

type ImageLoader struct{}

func (il *ImageLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image %s has no pixels", path)
	}

	return &resources.Resource{
		FullPath: path,
		DataSize: uint64(b.Dx() * b.Dy() * 4),
		Data: &resources.ImageResourceData{
			Format: format,
			Image:  img,
		},
	}, nil
}

func (il *ImageLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
