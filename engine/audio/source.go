package audio

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

// Source is a decoded sound. Players started with Play belong to the source,
// players started with PlayDetached belong to the mixer.
type Source struct {
	name    string
	pcm     []byte
	rate    int
	mixer   *Mixer
	players []Player
}

// NewSource loads a .wav or .ogg resource, resampled to the mixer rate.
func NewSource(fs *assets.Filesystem, mixer *Mixer, path string) (*Source, error) {
	if mixer == nil {
		return nil, fmt.Errorf("%w: no mixer for %s", core.ErrAudio, path)
	}
	RegisterLoader(fs)
	res, err := fs.Load(path, &resources.SoundLoadParams{SampleRate: mixer.SampleRate()})
	if err != nil {
		return nil, err
	}
	data, ok := res.Data.(*resources.SoundResourceData)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a sound (%s)", core.ErrResourceLoad, path, res.Type)
	}
	if len(data.PCM) == 0 {
		return nil, fmt.Errorf("%w: %s has no samples", core.ErrResourceLoad, path)
	}
	return &Source{
		name:  res.Name,
		pcm:   data.PCM,
		rate:  data.SampleRate,
		mixer: mixer,
	}, nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Duration() time.Duration {
	return pcmDuration(len(s.pcm), s.rate)
}

// Play starts a new player owned by the source.
func (s *Source) Play() (Player, error) {
	p, err := s.start()
	if err != nil {
		return nil, err
	}
	s.players = append(s.players, p)
	return p, nil
}

// PlayDetached starts a player the mixer keeps until it finishes, so the
// source can be dropped right away.
func (s *Source) PlayDetached() error {
	p, err := s.start()
	if err != nil {
		return err
	}
	s.mixer.adopt(p)
	core.LogDebug("%s playing detached (%v)", s.name, s.Duration())
	return nil
}

// Stop closes the players owned by the source. Detached ones keep playing.
func (s *Source) Stop() error {
	var first error
	for _, p := range s.players {
		if err := p.Close(); err != nil && first == nil {
			first = fmt.Errorf("%w: %w", core.ErrAudio, err)
		}
	}
	s.players = nil
	return first
}

func (s *Source) start() (Player, error) {
	p, err := s.mixer.backend.NewPlayer(s.pcm)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrAudio, s.name, err)
	}
	p.Play()
	return p, nil
}
