package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeOverridesDefaults(t *testing.T) {
	doc := `
[window]
title = "showcase"
width = 1024

[timing]
update_rate = 30
`
	cfg, err := Decode(strings.NewReader(doc), Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Window.Title != "showcase" || cfg.Window.Width != 1024 {
		t.Errorf("window section not applied: %+v", cfg.Window)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("expected default height 600 to survive, got %d", cfg.Window.Height)
	}
	if cfg.Timing.UpdateRate != 30 {
		t.Errorf("expected update rate 30, got %d", cfg.Timing.UpdateRate)
	}
	if cfg.Audio.SampleRate != 44100 {
		t.Errorf("expected default sample rate, got %d", cfg.Audio.SampleRate)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\ntitel = \"oops\"\n"), Default())
	if err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestDecodeRejectsUnknownBackend(t *testing.T) {
	_, err := Decode(strings.NewReader("[backend]\nkind = \"vulkan\"\n"), Default())
	if err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestDecodeRejectsZeroUpdateRate(t *testing.T) {
	_, err := Decode(strings.NewReader("[timing]\nupdate_rate = 0\n"), Default())
	if err == nil {
		t.Fatal("a zero update rate would never step the simulation")
	}
}

func TestLoadMissingFile(t *testing.T) {
	base := Default()
	cfg, found, err := Load(t.TempDir(), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found to be false")
	}
	if cfg != base {
		t.Error("expected base config to be returned as is")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Window.Title = "eventloop"
	cfg.Backend.Kind = BackendHeadless

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := Load(dir, Default())
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if loaded.Window.Title != "eventloop" || loaded.Backend.Kind != BackendHeadless {
		t.Errorf("unexpected config after reload: %+v", loaded)
	}
}
