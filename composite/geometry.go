package composite

import (
	"fmt"

	"bic/common"
)

// Rect is destination rectangle in canvas coordinates. Coordinates are kept
// fractional so placement scales linearly with canvas resolution.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f %.2fx%.2f)", r.X, r.Y, r.W, r.H)
}

// Empty reports whether rectangle has no area. NaN sizes are empty too.
func (r Rect) Empty() bool {
	return !(r.W > 0 && r.H > 0)
}

// FitRect returns part of dst covered by a srcW x srcH image scaled to fill
// dst without distortion. Leftover space is split evenly on both sides of
// the off axis.
func FitRect(srcW, srcH int, dst Rect) Rect {
	srcRatio := float64(srcW) / float64(srcH)
	dstRatio := dst.W / dst.H

	fit := dst
	if srcRatio > dstRatio {
		// source is wider than target area
		fit.H = dst.W / srcRatio
		fit.Y = dst.Y + (dst.H-fit.H)/2
	} else {
		fit.W = dst.H * srcRatio
		fit.X = dst.X + (dst.W-fit.W)/2
	}
	return fit
}

// BadgeRect returns box badge is fitted into on a size x size canvas. Box is
// square with side size*ratio anchored to the requested corner.
func BadgeRect(size int, ratio float64, pos common.Position) Rect {
	side := float64(size) * ratio
	r := Rect{W: side, H: side}
	if pos.Right() {
		r.X = float64(size) - side
	}
	if pos.Bottom() {
		r.Y = float64(size) - side
	}
	return r
}
