package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/anima2d/engine/config"
)

func TestGenerateKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := []byte("[window]\ntitle = \"mine\"\n")
	if err := os.WriteFile(filepath.Join(dir, config.FileName), custom, 0o644); err != nil {
		t.Fatal(err)
	}

	written, err := Generate(dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(written) != 3 {
		t.Errorf("expected image, font and sound to be written, got %v", written)
	}
	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	if err != nil || string(data) != string(custom) {
		t.Errorf("an existing conf.toml must be kept, got %q (%v)", data, err)
	}
	for _, f := range []string{ImageFile, FontFile, SoundFile} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Errorf("%s: %v", f, err)
		}
	}

	again, err := Generate(dir)
	if err != nil || len(again) != 0 {
		t.Errorf("a second run writes nothing, got %v (%v)", again, err)
	}
}

func TestStarterConfigLoads(t *testing.T) {
	dir := t.TempDir()
	if _, err := Generate(dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cfg, found, err := config.Load(dir, config.Default())
	if err != nil || !found {
		t.Fatalf("Load: found=%t err=%v", found, err)
	}
	if cfg.Window.Title != "anima2d testbed" {
		t.Errorf("unexpected title %q", cfg.Window.Title)
	}
}
