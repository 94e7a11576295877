package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 10, B: 30, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 200, G: 10, B: 30, A: 100})
	return img
}

func TestEncodeDecodePNG(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := EncodePNG(buf, testImage()); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}

	img, kind, err := Decode(buf.Bytes(), 64)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if kind != "png" {
		t.Errorf("kind = %q, want png", kind)
	}
	if img.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	got := color.NRGBAModel.Convert(img.At(2, 1)).(color.NRGBA)
	if got.A != 100 {
		t.Errorf("alpha not preserved: %v", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("svg", func(t *testing.T) {
		path := filepath.Join(dir, "badge.svg")
		svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><circle cx="5" cy="5" r="5"/></svg>`
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			t.Fatal(err)
		}
		img, kind, err := Load(path, 200)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if kind != "svg" || img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
			t.Errorf("Load() = %s %v", kind, img.Bounds())
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, _, err := Load(filepath.Join(dir, "absent.png"), 10); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("text", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		if err := os.WriteFile(path, []byte("just some text"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := Load(path, 10); !errors.Is(err, ErrUnsupported) {
			t.Errorf("Load() error = %v, want ErrUnsupported", err)
		}
	})

	t.Run("broken png", func(t *testing.T) {
		path := filepath.Join(dir, "broken.png")
		data := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := Load(path, 10); err == nil {
			t.Error("expected decoding error")
		}
	})
}
