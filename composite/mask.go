package composite

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Silhouette renders src into r on a transparent size x size scratch canvas
// and returns its alpha channel.
func Silhouette(src image.Image, r Rect, size int) *image.Alpha {
	scratch := image.NewRGBA(image.Rect(0, 0, size, size))
	Render(scratch, src, r)

	m := image.NewAlpha(scratch.Rect)
	for i := range m.Pix {
		m.Pix[i] = scratch.Pix[i*4+3]
	}
	return m
}

// Grow dilates non transparent part of the mask by radius pixels using exact
// euclidean distance. Result is binary and has the same bounds as the
// input, whatever grows past the edges is clipped.
func Grow(m *image.Alpha, radius float64) *image.Alpha {
	if radius <= 0 {
		return m
	}

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewAlpha(b)
	if w == 0 || h == 0 {
		return out
	}

	// Distances beyond limit never matter, clamping keeps squares small.
	limit := int32(math.Ceil(radius)) + 1

	// Vertical pass: distance to the nearest set pixel in the same column.
	col := make([]int32, w*h)
	for x := range w {
		d := limit
		for y := range h {
			if m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)] != 0 {
				d = 0
			} else if d < limit {
				d++
			}
			col[y*w+x] = d
		}
		d = limit
		for y := h - 1; y >= 0; y-- {
			if col[y*w+x] == 0 {
				d = 0
			} else if d < limit {
				d++
			}
			col[y*w+x] = min(col[y*w+x], d)
		}
	}

	// Horizontal pass: lower envelope of parabolas over each row.
	var (
		r2 = radius * radius
		f  = make([]float64, w)
		v  = make([]int, w)
		z  = make([]float64, w+1)
	)
	for y := range h {
		for x := range w {
			g := col[y*w+x]
			if g >= limit {
				f[x] = math.Inf(1)
			} else {
				f[x] = float64(g * g)
			}
		}
		row := out.Pix[out.PixOffset(b.Min.X, b.Min.Y+y):]
		envelope(f, v, z, func(x int, d float64) {
			if d <= r2 {
				row[x] = 0xff
			}
		})
	}
	return out
}

// envelope computes one dimensional squared distance transform of sampled
// function f (Felzenszwalb & Huttenlocher) calling emit for every sample.
// Infinite samples are skipped when building the envelope.
func envelope(f []float64, v []int, z []float64, emit func(int, float64)) {
	k := -1
	for q := range f {
		if math.IsInf(f[q], 1) {
			continue
		}
		fq := f[q] + float64(q*q)
		var s float64
		for k >= 0 {
			p := v[k]
			s = (fq - (f[p] + float64(p*p))) / float64(2*(q-p))
			if s > z[k] {
				break
			}
			k--
		}
		k++
		v[k] = q
		if k == 0 {
			z[k] = math.Inf(-1)
		} else {
			z[k] = s
		}
		z[k+1] = math.Inf(1)
	}
	if k < 0 {
		// nothing is set in this row
		return
	}

	j := 0
	for q := range f {
		for z[j+1] < float64(q) {
			j++
		}
		p := v[j]
		emit(q, float64((q-p)*(q-p))+f[p])
	}
}

// Soften blurs mask with gaussian of given sigma. Blur never moves edges of
// the mask inwards by more than rounding, so following Binarize only widens
// its footprint slightly.
//
// Only the footprint of the mask padded by twice the kernel radius is
// blurred: anything further away stays zero after both passes, so result is
// the same as blurring the whole canvas.
func Soften(m *image.Alpha, sigma float64) *image.Alpha {
	if sigma <= 0 {
		return m
	}

	out := image.NewAlpha(m.Bounds())
	fp := footprint(m)
	if fp.Empty() {
		return out
	}
	pad := 2*int(math.Ceil(3*sigma)) + 1
	r := fp.Inset(-pad).Intersect(m.Bounds())

	blurred := imaging.Blur(m.SubImage(r), sigma)
	for y := range r.Dy() {
		src := blurred.Pix[y*blurred.Stride:]
		dst := out.Pix[out.PixOffset(r.Min.X, r.Min.Y+y):]
		for x := range r.Dx() {
			dst[x] = src[x*4+3]
		}
	}
	return out
}

// footprint returns smallest rectangle holding all non transparent pixels.
func footprint(m *image.Alpha) image.Rectangle {
	b := m.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := m.PixOffset(b.Min.X, y)
		for x, a := range m.Pix[off : off+b.Dx()] {
			if a == 0 {
				continue
			}
			minX, maxX = min(minX, b.Min.X+x), max(maxX, b.Min.X+x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Binarize makes every partially transparent pixel of the mask fully opaque.
func Binarize(m *image.Alpha) {
	for i, a := range m.Pix {
		if a != 0 {
			m.Pix[i] = 0xff
		}
	}
}

// Punch erases every pixel of dst covered by opaque part of the mask,
// everything else is left as is. image/draw has no "destination out"
// operator, Src with mask would wipe the uncovered part as well.
func Punch(dst *image.RGBA, mask *image.Alpha) {
	r := dst.Bounds().Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := mask.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, mi, di = x+1, mi+1, di+4 {
			if mask.Pix[mi] != 0 {
				clear(dst.Pix[di : di+4])
			}
		}
	}
}
