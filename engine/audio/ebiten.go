package audio

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/spaghettifunk/anima2d/engine/core"
)

var ebitenMu sync.Mutex

// EbitenBackend plays through the ebiten audio context. ebiten allows a single
// context per process, so every backend shares it and must agree on the rate.
type EbitenBackend struct {
	ctx *audio.Context
}

func NewEbitenBackend(sampleRate int) (*EbitenBackend, error) {
	ebitenMu.Lock()
	defer ebitenMu.Unlock()

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
		core.LogDebug("audio context created at %d Hz", sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("%w: audio context already running at %d Hz, %d requested", core.ErrAudio, ctx.SampleRate(), sampleRate)
	}
	return &EbitenBackend{ctx: ctx}, nil
}

func (b *EbitenBackend) SampleRate() int {
	return b.ctx.SampleRate()
}

// NewPlayer wraps the buffer without copying it. A playing ebiten player is
// kept alive by the context until it finishes, even when nothing else holds it.
func (b *EbitenBackend) NewPlayer(pcm []byte) (Player, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: empty sound buffer", core.ErrAudio)
	}
	return b.ctx.NewPlayerFromBytes(pcm), nil
}
