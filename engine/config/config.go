package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is looked up in the resource roots, first match wins.
const FileName = "conf.toml"

type Backend string

const (
	BackendGLFW     Backend = "glfw"
	BackendHeadless Backend = "headless"
)

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
	PosX   int    `toml:"pos_x"`
	PosY   int    `toml:"pos_y"`
}

type TimingConfig struct {
	// fixed update steps per second
	UpdateRate uint32 `toml:"update_rate"`
}

type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type BackendConfig struct {
	Kind Backend `toml:"kind"`
}

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Timing  TimingConfig  `toml:"timing"`
	Audio   AudioConfig   `toml:"audio"`
	Log     LogConfig     `toml:"log"`
	Backend BackendConfig `toml:"backend"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "An anima2d game",
			Width:  800,
			Height: 600,
			VSync:  true,
			PosX:   100,
			PosY:   100,
		},
		Timing:  TimingConfig{UpdateRate: 60},
		Audio:   AudioConfig{SampleRate: 44100},
		Log:     LogConfig{Level: "info"},
		Backend: BackendConfig{Kind: BackendGLFW},
	}
}

// Decode overlays the TOML document on top of base. Unknown keys are an error
// so that typos in conf.toml do not go unnoticed.
func Decode(r io.Reader, base *Config) (*Config, error) {
	cfg := *base
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads dir/conf.toml. A missing file is not an error: base is returned
// unchanged and found is false.
func Load(dir string, base *Config) (cfg *Config, found bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return base, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	cfg, err = Decode(bytes.NewReader(data), base)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Timing.UpdateRate == 0 {
		return errors.New("update rate must be at least 1")
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("invalid audio sample rate %d", c.Audio.SampleRate)
	}
	switch c.Backend.Kind {
	case BackendGLFW, BackendHeadless:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend.Kind)
	}
	return nil
}

// Encode writes the configuration as TOML, used to generate a starter conf.toml.
func (c *Config) Encode(w io.Writer) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
