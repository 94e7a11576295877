package images

import (
	"image"
	"image/color"
	"image/draw"
)

// HasTransparency reports whether img has at least one pixel which is not
// fully opaque.
// NOTE: for image types without Opaque method every pixel is checked, this
// may be slow for large images.
func HasTransparency(img image.Image) bool {
	if oimg, ok := img.(interface{ Opaque() bool }); ok {
		return !oimg.Opaque()
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// Flatten composes img over solid background producing fully opaque image
// with the same bounds.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
