package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// NullBackend plays nothing. A player reports itself playing for as long as
// its buffer would last at the backend rate, measured on the given clock.
type NullBackend struct {
	rate  int
	clock core.Clock
}

func NewNullBackend(sampleRate int, clock core.Clock) *NullBackend {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &NullBackend{rate: sampleRate, clock: clock}
}

func (b *NullBackend) SampleRate() int {
	return b.rate
}

func (b *NullBackend) NewPlayer(pcm []byte) (Player, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: empty sound buffer", core.ErrAudio)
	}
	return &nullPlayer{
		clock:    b.clock,
		duration: pcmDuration(len(pcm), b.rate),
	}, nil
}

type nullPlayer struct {
	mu       sync.Mutex
	clock    core.Clock
	duration time.Duration
	started  time.Time
	playing  bool
	closed   bool
}

func (p *nullPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.playing && p.clock.Now().Sub(p.started) < p.duration {
		return
	}
	p.started = p.clock.Now()
	p.playing = true
}

func (p *nullPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return false
	}
	if p.clock.Now().Sub(p.started) >= p.duration {
		p.playing = false
	}
	return p.playing
}

func (p *nullPlayer) Close() error {
	p.mu.Lock()
	p.playing, p.closed = false, true
	p.mu.Unlock()
	return nil
}

func pcmDuration(size, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	frames := int64(size / bytesPerFrame)
	return time.Duration(frames) * time.Second / time.Duration(rate)
}
