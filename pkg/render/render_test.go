package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xob0t/GoCaption/pkg/caption"
	"github.com/xob0t/GoCaption/pkg/style"
)

// newTestAssets builds a one-style asset tree ("classic", 640×360 base image)
// and returns its root.
func newTestAssets(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "classic")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	meta := `{"name":"Classic","source":"Noisestorm"}`
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), []byte(meta), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 640, 360))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "base.png"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "base.mp4"), []byte("stand-in clip"), 0644); err != nil {
		t.Fatal(err)
	}

	return root
}

// newTestRenderer wires a renderer over the test assets and the given encoder.
func newTestRenderer(t *testing.T, enc *Encoder) *Renderer {
	t.Helper()

	registry, err := style.Load(newTestAssets(t))
	if err != nil {
		t.Fatalf("Load styles failed: %v", err)
	}
	fonts, err := caption.NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager failed: %v", err)
	}
	return New(registry, fonts, enc, 1)
}

// writeStub writes an executable shell script standing in for an encoder
// binary and returns its path.
func writeStub(t *testing.T, name, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}
