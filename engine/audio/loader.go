package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	ebitenwav "github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

const DefaultSampleRate = 44100

// RegisterLoader teaches fs to decode sounds. Filesystems only know about
// images, fonts and raw files until then.
func RegisterLoader(fs *assets.Filesystem) {
	fs.RegisterLoader(resources.ResourceTypeSound, &SoundLoader{})
}

// SoundLoader decodes .wav and .ogg files and resamples them to the mixer
// rate, producing 16-bit stereo PCM.
type SoundLoader struct{}

func (sl *SoundLoader) Load(path string, params interface{}) (*resources.Resource, error) {
	sampleRate := DefaultSampleRate
	if p, ok := params.(*resources.SoundLoadParams); ok && p != nil && p.SampleRate > 0 {
		sampleRate = p.SampleRate
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var stream io.Reader
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "wav":
		stream, err = ebitenwav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	case "ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported sound format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading %s samples: %w", format, err)
	}

	return &resources.Resource{
		FullPath: path,
		DataSize: uint64(len(pcm)),
		Data: &resources.SoundResourceData{
			Format:     format,
			SampleRate: sampleRate,
			PCM:        pcm,
		},
	}, nil
}

func (sl *SoundLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
