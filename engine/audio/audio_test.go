package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/anima2d/engine/assets"
	"github.com/spaghettifunk/anima2d/engine/core"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

const testRate = 44100

func newTestFilesystem(t *testing.T) *assets.Filesystem {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sound"), 0o755); err != nil {
		t.Fatal(err)
	}

	f, err := os.Create(filepath.Join(dir, "sound", "pew.wav"))
	if err != nil {
		t.Fatal(err)
	}
	pcm := Sweep(880, 220, 500*time.Millisecond, testRate)
	if err := WriteWAV(f, pcm, testRate); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a sound"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs, err := assets.NewFilesystem()
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}
	t.Cleanup(func() { fs.Close() })
	if err := fs.Mount(dir); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return fs
}

func TestSourceDuration(t *testing.T) {
	fs := newTestFilesystem(t)
	mixer := NewMixer(NewNullBackend(testRate, core.NewManualClock(epoch)))

	src, err := NewSource(fs, mixer, "/sound/pew.wav")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if d := src.Duration(); d < 490*time.Millisecond || d > 510*time.Millisecond {
		t.Errorf("expected ~500ms, got %v", d)
	}
}

func TestDetachedPlaybackOutlivesSource(t *testing.T) {
	fs := newTestFilesystem(t)
	clock := core.NewManualClock(epoch)
	mixer := NewMixer(NewNullBackend(testRate, clock))

	src, err := NewSource(fs, mixer, "/sound/pew.wav")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if err := src.PlayDetached(); err != nil {
		t.Fatalf("PlayDetached: %v", err)
	}
	src = nil

	clock.Advance(100 * time.Millisecond)
	if n := mixer.Detached(); n != 1 {
		t.Fatalf("expected the dropped source to keep playing, got %d players", n)
	}
	clock.Advance(time.Second)
	if n := mixer.Detached(); n != 0 {
		t.Errorf("expected the finished player to be reaped, got %d", n)
	}
}

func TestMixerReap(t *testing.T) {
	fs := newTestFilesystem(t)
	clock := core.NewManualClock(epoch)
	mixer := NewMixer(NewNullBackend(testRate, clock))

	src, err := NewSource(fs, mixer, "/sound/pew.wav")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := src.PlayDetached(); err != nil {
			t.Fatalf("PlayDetached: %v", err)
		}
	}
	clock.Advance(time.Second)
	if n := mixer.Held(); n != 2 {
		t.Fatalf("nothing is released before a reap, got %d", n)
	}
	mixer.Reap()
	if n := mixer.Held(); n != 0 {
		t.Errorf("expected both finished players released, got %d", n)
	}

	// adopting a new player also drops the finished ones
	if err := src.PlayDetached(); err != nil {
		t.Fatalf("PlayDetached: %v", err)
	}
	clock.Advance(time.Second)
	if err := src.PlayDetached(); err != nil {
		t.Fatalf("PlayDetached: %v", err)
	}
	if n := mixer.Held(); n != 1 {
		t.Errorf("expected only the new player held, got %d", n)
	}
}

func TestOwnedPlayersStop(t *testing.T) {
	fs := newTestFilesystem(t)
	clock := core.NewManualClock(epoch)
	mixer := NewMixer(NewNullBackend(testRate, clock))

	src, err := NewSource(fs, mixer, "/sound/pew.wav")
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	p, err := src.Play()
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := src.PlayDetached(); err != nil {
		t.Fatalf("PlayDetached: %v", err)
	}
	if !p.IsPlaying() {
		t.Fatal("expected the owned player to be playing")
	}
	if err := src.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if p.IsPlaying() {
		t.Error("Stop must close the owned players")
	}
	if mixer.Detached() != 1 {
		t.Error("Stop must leave detached players alone")
	}

	if err := mixer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if mixer.Detached() != 0 {
		t.Error("Close drops every detached player")
	}
	if err := src.PlayDetached(); err != nil {
		t.Fatalf("PlayDetached after Close: %v", err)
	}
	if mixer.Detached() != 0 {
		t.Error("a closed mixer does not adopt new players")
	}
}

func TestNewSourceErrors(t *testing.T) {
	fs := newTestFilesystem(t)
	mixer := NewMixer(NewNullBackend(testRate, nil))

	if _, err := NewSource(fs, mixer, "/sound/missing.ogg"); !errors.Is(err, core.ErrResourceLoad) {
		t.Errorf("missing file: expected ErrResourceLoad, got %v", err)
	}
	if _, err := NewSource(fs, mixer, "/notes.txt"); !errors.Is(err, core.ErrResourceLoad) {
		t.Errorf("text file: expected ErrResourceLoad, got %v", err)
	}
	if _, err := NewSource(fs, nil, "/sound/pew.wav"); !errors.Is(err, core.ErrAudio) {
		t.Errorf("no mixer: expected ErrAudio, got %v", err)
	}
}

func TestNullPlayerRestart(t *testing.T) {
	clock := core.NewManualClock(epoch)
	b := NewNullBackend(1000, clock)
	p, err := b.NewPlayer(make([]byte, 4*1000))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if p.IsPlaying() {
		t.Fatal("a player is idle until Play")
	}
	p.Play()
	clock.Advance(999 * time.Millisecond)
	if !p.IsPlaying() {
		t.Fatal("one second of samples is still playing")
	}
	clock.Advance(time.Millisecond)
	if p.IsPlaying() {
		t.Fatal("the buffer is exhausted")
	}
	p.Play()
	if !p.IsPlaying() {
		t.Error("a finished player can be played again")
	}

	if _, err := b.NewPlayer(nil); !errors.Is(err, core.ErrAudio) {
		t.Errorf("empty buffer: expected ErrAudio, got %v", err)
	}
}

func TestWriteWAVRejectsBadInput(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WriteWAV(f, make([]byte, 6), testRate); !errors.Is(err, core.ErrAudio) {
		t.Errorf("partial frame: expected ErrAudio, got %v", err)
	}
	if err := WriteWAV(f, make([]byte, 8), 0); !errors.Is(err, core.ErrAudio) {
		t.Errorf("zero rate: expected ErrAudio, got %v", err)
	}
}
