package audio

import (
	"sync"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// Mixer owns the backend and the players that outlived their source.
type Mixer struct {
	backend Backend

	mu       sync.Mutex
	detached []Player
	closed   bool
}

func NewMixer(backend Backend) *Mixer {
	return &Mixer{backend: backend}
}

func (m *Mixer) SampleRate() int {
	return m.backend.SampleRate()
}

func (m *Mixer) Backend() Backend {
	return m.backend
}

func (m *Mixer) adopt(p Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		_ = p.Close()
		return
	}
	m.reapLocked()
	m.detached = append(m.detached, p)
}

// Reap closes and forgets the adopted players that finished. The game loops
// call it once per iteration.
func (m *Mixer) Reap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reapLocked()
}

// Held is the number of adopted players not reaped yet, finished or not.
func (m *Mixer) Held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.detached)
}

// Detached counts the adopted players still playing, reaping finished ones.
func (m *Mixer) Detached() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reapLocked()
}

func (m *Mixer) reapLocked() int {
	alive := m.detached[:0]
	for _, p := range m.detached {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		if err := p.Close(); err != nil {
			core.LogWarn("closing finished player: %v", err)
		}
	}
	for i := len(alive); i < len(m.detached); i++ {
		m.detached[i] = nil
	}
	m.detached = alive
	return len(alive)
}

// Close stops every detached player. Sounds started after Close are dropped.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, p := range m.detached {
		if err := p.Close(); err != nil {
			core.LogWarn("closing player: %v", err)
		}
	}
	m.detached = nil
	return nil
}
