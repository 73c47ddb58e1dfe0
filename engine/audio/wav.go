package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	m "math"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/spaghettifunk/anima2d/engine/core"
)

const (
	wavBitDepth = 16
	wavChannels = 2
	// WAVE_FORMAT_PCM
	wavFormatPCM = 1
)

// WriteWAV encodes interleaved 16-bit stereo PCM as a RIFF/WAVE file. The
// encoder seeks back to patch the chunk sizes once the samples are written.
func WriteWAV(w io.WriteSeeker, pcm []byte, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate %d", core.ErrAudio, sampleRate)
	}
	if len(pcm)%bytesPerFrame != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of stereo frames", core.ErrAudio, len(pcm))
	}

	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: wavBitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: encoding wav: %w", core.ErrAudio, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: finishing wav: %w", core.ErrAudio, err)
	}
	return nil
}

// Sweep synthesizes a sine sweeping from one frequency to another with a
// linear fade out, as 16-bit stereo PCM.
func Sweep(from, to float64, d time.Duration, sampleRate int) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	pcm := make([]byte, n*bytesPerFrame)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := from + (to-from)*t
		phase += 2 * m.Pi * freq / float64(sampleRate)
		v := int16(m.Sin(phase) * (1 - t) * 0.5 * m.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(v))
	}
	return pcm
}
