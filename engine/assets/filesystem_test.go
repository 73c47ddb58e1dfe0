package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/resources"
)

func newTestFilesystem(t *testing.T, roots ...string) *Filesystem {
	t.Helper()
	f, err := NewFilesystem()
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	for _, r := range roots {
		if err := f.Mount(r); err != nil {
			t.Fatalf("Mount(%s): %v", r, err)
		}
	}
	return f
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestResolveFirstRootWins(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(first, "a.txt"), []byte("first"))
	writeFile(t, filepath.Join(second, "a.txt"), []byte("second"))
	writeFile(t, filepath.Join(second, "sub", "b.txt"), []byte("only second"))

	f := newTestFilesystem(t, first, second)

	data, err := f.ReadFile("/a.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("expected the first root to win, got %q", data)
	}

	data, err = f.ReadFile("/sub/b.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "only second" {
		t.Errorf("expected fallback to the second root, got %q", data)
	}
}

func TestResolveMissing(t *testing.T) {
	f := newTestFilesystem(t, t.TempDir())

	_, err := f.Resolve("/nope.png")
	if !errors.Is(err, core.ErrResourceLoad) {
		t.Errorf("expected ErrResourceLoad, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if f.Exists("/nope.png") {
		t.Error("Exists reported a missing file")
	}
}

func TestResolveRejectsBadPaths(t *testing.T) {
	f := newTestFilesystem(t, t.TempDir())
	for _, p := range []string{"relative.png", "/../etc/passwd", "/a/../../b"} {
		if _, err := f.Resolve(p); !errors.Is(err, core.ErrResourceLoad) {
			t.Errorf("Resolve(%q): expected ErrResourceLoad, got %v", p, err)
		}
	}
}

func TestMountSkipsMissingAndRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	f := newTestFilesystem(t)

	if err := f.Mount(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("missing root should be skipped, got %v", err)
	}
	if len(f.Roots()) != 0 {
		t.Errorf("expected no mounted roots, got %v", f.Roots())
	}

	file := filepath.Join(dir, "file.txt")
	writeFile(t, file, []byte("x"))
	if err := f.Mount(file); err == nil {
		t.Error("expected an error when mounting a regular file")
	}
}

func TestLoadImage(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "dragon1.png"), 8, 4)
	f := newTestFilesystem(t, root)

	res, err := f.Load("/dragon1.png", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Type != resources.ResourceTypeImage {
		t.Errorf("expected image resource, got %s", res.Type)
	}
	data, ok := res.Data.(*resources.ImageResourceData)
	if !ok {
		t.Fatalf("unexpected data type %T", res.Data)
	}
	if data.Format != "png" {
		t.Errorf("expected png format, got %q", data.Format)
	}
	if b := data.Image.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestLoadCorruptImage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken.png"), []byte("definitely not a png"))
	f := newTestFilesystem(t, root)

	_, err := f.Load("/broken.png", nil)
	if !errors.Is(err, core.ErrResourceLoad) {
		t.Fatalf("expected ErrResourceLoad, got %v", err)
	}
}

func TestIndexFollowsFilesystem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "initial.txt"), []byte("x"))
	f := newTestFilesystem(t, root)

	if _, ok := f.Indexed("/initial.txt"); !ok {
		t.Fatal("expected the initial file to be indexed at mount")
	}

	writeFile(t, filepath.Join(root, "later.txt"), []byte("y"))
	waitFor(t, func() bool {
		_, ok := f.Indexed("/later.txt")
		return ok
	})

	if err := os.Remove(filepath.Join(root, "initial.txt")); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		_, ok := f.Indexed("/initial.txt")
		return !ok
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before the deadline")
}
