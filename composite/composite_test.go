package composite

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"go.uber.org/zap/zaptest"
	xdraw "golang.org/x/image/draw"

	"bic/common"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func newCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := New(DefaultMaskOptions, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RejectsNegativeMask(t *testing.T) {
	for _, opts := range []MaskOptions{{Grow: -0.1}, {Blur: -1}, {Grow: math.NaN()}} {
		if _, err := New(opts, nil); !errors.Is(err, ErrBadMask) {
			t.Errorf("New(%+v) error = %v, want ErrBadMask", opts, err)
		}
	}
}

func TestCompose_Validation(t *testing.T) {
	c := newCompositor(t)
	main := solid(8, 8, red)
	ok := Params{Resolution: 64, BadgeSize: 0.5, Position: common.PositionTopLeft}

	tests := []struct {
		name  string
		main  image.Image
		badge image.Image
		p     Params
		want  error
	}{
		{"no main", nil, solid(4, 4, blue), ok, ErrNoMainImage},
		{"empty main", image.NewRGBA(image.Rectangle{}), nil, ok, ErrEmptyImage},
		{"empty badge", main, image.NewNRGBA(image.Rect(0, 0, 0, 5)), ok, ErrEmptyImage},
		{"zero resolution", main, nil, Params{Resolution: 0, BadgeSize: 0.5}, ErrBadResolution},
		{"zero badge", main, nil, Params{Resolution: 64, BadgeSize: 0}, ErrBadBadgeSize},
		{"huge badge", main, nil, Params{Resolution: 64, BadgeSize: 1.01}, ErrBadBadgeSize},
		{"nan badge", main, nil, Params{Resolution: 64, BadgeSize: math.NaN()}, ErrBadBadgeSize},
		{"bad position", main, nil, Params{Resolution: 64, BadgeSize: 0.5, Position: common.Position(9)}, ErrBadPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := c.Compose(tt.main, tt.badge, tt.p)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compose() error = %v, want %v", err, tt.want)
			}
			if img != nil {
				t.Error("Compose() returned image together with error")
			}
		})
	}
}

func TestCompose_NoBadgePassthrough(t *testing.T) {
	c := newCompositor(t)
	main := disc(40, red)

	got, err := c.Compose(main, nil, Params{Resolution: 128, BadgeSize: 0.3, Position: common.PositionBottomRight})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := image.NewRGBA(image.Rect(0, 0, 128, 128))
	Render(want, main, Rect{W: 128, H: 128})

	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatal("output differs from plain aspect fit render")
	}
}

func TestCompose_CutoutCoverage(t *testing.T) {
	const size = 256

	c := newCompositor(t)
	main := solid(40, 40, red)
	badge := disc(32, blue)
	p := Params{Resolution: size, BadgeSize: 0.25, Position: common.PositionBottomRight}

	got, err := c.Compose(main, badge, p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	box := BadgeRect(size, p.BadgeSize, p.Position)
	if box != (Rect{192, 192, 64, 64}) {
		t.Fatalf("badge box = %s", box)
	}
	mask := c.CutoutMask(badge, box, size)

	mainOnly := image.NewRGBA(image.Rect(0, 0, size, size))
	Render(mainOnly, main, Rect{W: size, H: size})
	badgeOnly := image.NewRGBA(image.Rect(0, 0, size, size))
	Render(badgeOnly, badge, box)

	var covered, gap int
	for y := range size {
		for x := range size {
			g := got.RGBAAt(x, y)
			if mask.AlphaAt(x, y).A != 0 {
				covered++
				if b := badgeOnly.RGBAAt(x, y); g != b {
					t.Fatalf("pixel (%d,%d) under mask = %v, want badge only %v", x, y, g, b)
				}
				if g.A == 0 {
					gap++
				}
				continue
			}
			if m := mainOnly.RGBAAt(x, y); g != m {
				t.Fatalf("pixel (%d,%d) outside mask = %v, want main %v", x, y, g, m)
			}
		}
	}

	if covered == 0 {
		t.Fatal("mask is empty")
	}
	if gap == 0 {
		t.Error("expected transparent gap around the badge")
	}
	// Mask never reaches top left part of the canvas.
	if got.RGBAAt(10, 10) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (10,10) = %v, want main icon", got.RGBAAt(10, 10))
	}
	// Grown silhouette leaves gap between badge and main icon.
	if g := got.RGBAAt(188, 224); g.A != 0 {
		t.Errorf("pixel (188,224) = %v, want erased", g)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c := newCompositor(t)
	p := Params{Resolution: 96, BadgeSize: 0.4, Position: common.PositionTopRight}

	a, err := c.Compose(disc(50, red), disc(20, blue), p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	b, err := c.Compose(disc(50, red), disc(20, blue), p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("identical requests produced different output")
	}
}

func TestCompose_ResolutionIndependence(t *testing.T) {
	c := newCompositor(t)
	main := solid(30, 20, red)
	badge := disc(24, blue)
	p := Params{BadgeSize: 0.3, Position: common.PositionBottomLeft}

	p.Resolution = 128
	small, err := c.Compose(main, badge, p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	p.Resolution = 256
	large, err := c.Compose(main, badge, p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	scaled := image.NewRGBA(small.Bounds())
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), large, large.Bounds(), xdraw.Src, nil)

	var diffA, diffB float64
	for i := 0; i < len(small.Pix); i += 4 {
		diffB += math.Abs(float64(small.Pix[i+2]) - float64(scaled.Pix[i+2]))
		diffA += math.Abs(float64(small.Pix[i+3]) - float64(scaled.Pix[i+3]))
	}
	n := float64(len(small.Pix) / 4)
	if diffA/n > 10 || diffB/n > 10 {
		t.Errorf("renders differ too much: mean alpha diff %.2f, mean blue diff %.2f", diffA/n, diffB/n)
	}
}

func TestCompose_Extremes(t *testing.T) {
	c := newCompositor(t)

	for _, size := range []float64{1, 0.999, 0.001, 1e-9} {
		for _, pos := range []common.Position{common.PositionTopLeft, common.PositionBottomRight} {
			img, err := c.Compose(solid(10, 10, red), disc(10, blue), Params{Resolution: 64, BadgeSize: size, Position: pos})
			if err != nil {
				t.Fatalf("Compose(size %g, %s) error = %v", size, pos, err)
			}
			if img.Bounds() != image.Rect(0, 0, 64, 64) {
				t.Fatalf("Compose(size %g, %s) bounds = %v", size, pos, img.Bounds())
			}
		}
	}

	t.Run("full canvas badge", func(t *testing.T) {
		img, err := c.Compose(solid(10, 10, red), solid(10, 10, blue), Params{Resolution: 32, BadgeSize: 1})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		for y := range 32 {
			for x := range 32 {
				if img.RGBAAt(x, y) != (color.RGBA{B: 255, A: 255}) {
					t.Fatalf("pixel (%d,%d) = %v, want badge", x, y, img.RGBAAt(x, y))
				}
			}
		}
	})

	t.Run("one pixel canvas", func(t *testing.T) {
		if _, err := c.Compose(solid(3, 7, red), solid(5, 2, blue), Params{Resolution: 1, BadgeSize: 0.5}); err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
	})
}

func TestPreview(t *testing.T) {
	c := newCompositor(t)
	p := Params{Resolution: 1024, BadgeSize: 0.25, Position: common.PositionBottomRight}

	got, err := c.Preview(solid(16, 16, red), disc(16, blue), p)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if got.Bounds() != image.Rect(0, 0, PreviewSize, PreviewSize) {
		t.Fatalf("Preview() bounds = %v", got.Bounds())
	}

	p.Resolution = PreviewSize
	want, err := c.Compose(solid(16, 16, red), disc(16, blue), p)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Fatal("preview differs from compose at preview size")
	}
}

func BenchmarkCompose_MaxResolution(b *testing.B) {
	c, err := New(DefaultMaskOptions, nil)
	if err != nil {
		b.Fatal(err)
	}
	main, badge := solid(64, 64, red), disc(64, blue)
	p := Params{Resolution: 4096, BadgeSize: 0.4, Position: common.PositionBottomRight}

	for b.Loop() {
		if _, err := c.Compose(main, badge, p); err != nil {
			b.Fatal(err)
		}
	}
}
