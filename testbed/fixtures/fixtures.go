// Package fixtures writes the resource directory the testbed programs expect:
// an image, a font, a sound and a starter conf.toml. Files already present
// are left alone.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	m "math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/spaghettifunk/anima2d/engine/audio"
	"github.com/spaghettifunk/anima2d/engine/config"
	"github.com/spaghettifunk/anima2d/engine/core"
)

const (
	ImageFile = "dragon1.png"
	// Go Mono stored under the name the showcase asks for; both are
	// monospaced TrueType fonts, so text metrics stay comparable.
	FontFile  = "LiberationMono-Regular.ttf"
	SoundFile = "sound/pew.wav"

	imageSize  = 256
	sampleRate = 44100
)

// Generate fills dir, creating it if needed. It returns the files written.
func Generate(dir string) ([]string, error) {
	files := []struct {
		name  string
		write func(full string) error
	}{
		{ImageFile, writeBytes(dragonPNG)},
		{FontFile, writeBytes(func() ([]byte, error) { return gomono.TTF, nil })},
		{SoundFile, writePew},
		{config.FileName, writeBytes(starterConfig)},
	}

	var written []string
	for _, f := range files {
		full := filepath.Join(dir, filepath.FromSlash(f.name))
		if _, err := os.Stat(full); err == nil {
			core.LogDebug("%s already exists, keeping it", full)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return written, err
		}

		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return written, err
		}
		if err := f.write(full); err != nil {
			return written, fmt.Errorf("writing %s: %w", full, err)
		}
		written = append(written, full)
	}
	return written, nil
}

func writeBytes(data func() ([]byte, error)) func(string) error {
	return func(full string) error {
		b, err := data()
		if err != nil {
			return err
		}
		return os.WriteFile(full, b, 0o644)
	}
}

// dragonPNG draws a radial gradient with a few rings, opaque everywhere.
func dragonPNG() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, imageSize, imageSize))
	c := float64(imageSize) / 2
	for y := 0; y < imageSize; y++ {
		for x := 0; x < imageSize; x++ {
			d := m.Hypot(float64(x)-c, float64(y)-c) / c
			ring := 0.5 + 0.5*m.Cos(d*6*m.Pi)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(255 * m.Max(0, 1-d)),
				G: uint8(200 * ring * m.Max(0, 1-d/2)),
				B: uint8(255 * m.Min(1, d)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writePew encodes a short falling sweep.
func writePew(full string) error {
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	pcm := audio.Sweep(1200, 200, 250*time.Millisecond, sampleRate)
	if err := audio.WriteWAV(f, pcm, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func starterConfig() ([]byte, error) {
	cfg := config.Default()
	cfg.Window.Title = "anima2d testbed"
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
