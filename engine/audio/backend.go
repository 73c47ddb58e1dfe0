package audio

// Player plays one buffer of 16-bit little endian stereo PCM.
type Player interface {
	Play()
	IsPlaying() bool
	Close() error
}

// Backend turns decoded PCM into players. All buffers handed to a backend are
// at its SampleRate.
type Backend interface {
	SampleRate() int
	NewPlayer(pcm []byte) (Player, error)
}

// bytesPerFrame is one stereo frame of 16-bit samples.
const bytesPerFrame = 4
