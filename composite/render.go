package composite

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Render draws src into dst keeping aspect ratio (see FitRect) and returns
// rectangle actually covered. Source is resampled bilinearly and composed
// over whatever dst already holds, pixels outside of returned rectangle are
// never touched.
//
// Empty source or empty rectangle is a programming error and causes panic.
func Render(dst xdraw.Image, src image.Image, r Rect) Rect {
	sb := src.Bounds()
	if sb.Empty() || r.Empty() {
		panic(fmt.Sprintf("unable to render %v into %s", sb, r))
	}

	fit := FitRect(sb.Dx(), sb.Dy(), r)

	sx := fit.W / float64(sb.Dx())
	sy := fit.H / float64(sb.Dy())
	s2d := f64.Aff3{
		sx, 0, fit.X - sx*float64(sb.Min.X),
		0, sy, fit.Y - sy*float64(sb.Min.Y),
	}
	xdraw.BiLinear.Transform(dst, s2d, src, sb, xdraw.Over, nil)
	return fit
}
