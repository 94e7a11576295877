package composite

import (
	"image"
	"image/color"
	"math"
	"testing"

	"bic/common"
)

func TestFitRect(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		dst        Rect
		want       Rect
	}{
		{"wider source", 100, 50, Rect{0, 0, 64, 64}, Rect{0, 16, 64, 32}},
		{"taller source", 50, 100, Rect{0, 0, 64, 64}, Rect{16, 0, 32, 64}},
		{"offset box", 10, 10, Rect{10, 20, 40, 80}, Rect{10, 40, 40, 40}},
		{"same ratio", 30, 10, Rect{0, 0, 90, 30}, Rect{0, 0, 90, 30}},
		{"badge box", 64, 32, Rect{192, 192, 64, 64}, Rect{192, 208, 64, 32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitRect(tt.srcW, tt.srcH, tt.dst)
			if got != tt.want {
				t.Errorf("FitRect(%d, %d, %s) = %s, want %s", tt.srcW, tt.srcH, tt.dst, got, tt.want)
			}
		})
	}
}

func TestFitRect_Properties(t *testing.T) {
	const eps = 1e-9

	sizes := []int{1, 3, 17, 64, 100, 333, 1024}
	boxes := []Rect{{0, 0, 256, 256}, {5, 7, 31, 200}, {100, 0, 300, 10}, {0.5, 0.25, 1, 1}}

	for _, w := range sizes {
		for _, h := range sizes {
			for _, box := range boxes {
				got := FitRect(w, h, box)

				if math.Abs(got.W/got.H-float64(w)/float64(h)) > eps*float64(w) {
					t.Fatalf("%dx%d in %s: aspect ratio not kept: %s", w, h, box, got)
				}
				if got.W > box.W+eps || got.H > box.H+eps {
					t.Fatalf("%dx%d in %s: does not fit: %s", w, h, box, got)
				}
				if math.Abs(got.W-box.W) > eps && math.Abs(got.H-box.H) > eps {
					t.Fatalf("%dx%d in %s: does not fill either side: %s", w, h, box, got)
				}
				if math.Abs(box.X+(box.W-got.W)/2-got.X) > eps || math.Abs(box.Y+(box.H-got.H)/2-got.Y) > eps {
					t.Fatalf("%dx%d in %s: not centered: %s", w, h, box, got)
				}
			}
		}
	}
}

func TestBadgeRect(t *testing.T) {
	tests := []struct {
		pos  common.Position
		want Rect
	}{
		{common.PositionTopLeft, Rect{0, 0, 64, 64}},
		{common.PositionTopRight, Rect{192, 0, 64, 64}},
		{common.PositionBottomLeft, Rect{0, 192, 64, 64}},
		{common.PositionBottomRight, Rect{192, 192, 64, 64}},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			if got := BadgeRect(256, 0.25, tt.pos); got != tt.want {
				t.Errorf("BadgeRect(256, 0.25, %s) = %s, want %s", tt.pos, got, tt.want)
			}
		})
	}

	t.Run("full canvas", func(t *testing.T) {
		for _, pos := range []common.Position{common.PositionTopLeft, common.PositionBottomRight} {
			if got := BadgeRect(100, 1, pos); got != (Rect{0, 0, 100, 100}) {
				t.Errorf("BadgeRect(100, 1, %s) = %s, want whole canvas", pos, got)
			}
		}
	})
}

func TestRender(t *testing.T) {
	src := solid(100, 50, color.NRGBA{R: 255, A: 255})
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))

	got := Render(dst, src, Rect{W: 64, H: 64})
	if got != (Rect{0, 16, 64, 32}) {
		t.Fatalf("Render() covered %s, want (0,16 64x32)", got)
	}

	for _, y := range []int{16, 31, 47} {
		for _, x := range []int{0, 32, 63} {
			if c := dst.RGBAAt(x, y); c.A != 0xff || c.R != 0xff {
				t.Errorf("pixel (%d,%d) = %v, want opaque red", x, y, c)
			}
		}
	}
	for _, y := range []int{0, 15, 48, 63} {
		if c := dst.RGBAAt(32, y); c.A != 0 {
			t.Errorf("pixel (32,%d) = %v, want untouched", y, c)
		}
	}
}

func TestRender_KeepsBackground(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := range dst.Pix {
		dst.Pix[i] = 0x80
	}

	Render(dst, solid(8, 8, color.NRGBA{G: 255, A: 255}), Rect{X: 8, Y: 8, W: 8, H: 8})

	if c := dst.RGBAAt(12, 12); c != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel inside = %v, want opaque green", c)
	}
	if c := dst.RGBAAt(2, 2); c != (color.RGBA{0x80, 0x80, 0x80, 0x80}) {
		t.Errorf("pixel outside = %v, want original value", c)
	}
}

func TestRender_EmptyRectPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for empty destination")
		}
	}()
	Render(image.NewRGBA(image.Rect(0, 0, 4, 4)), solid(2, 2, color.NRGBA{A: 255}), Rect{W: 0, H: 4})
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// disc returns opaque circle touching image edges on transparent background.
func disc(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := range size {
		for x := range size {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}
