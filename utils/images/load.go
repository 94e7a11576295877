// Package images handles decoding of user supplied pictures and encoding of
// results.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupported = errors.New("unsupported image type")

// Load reads and decodes image file. See Decode.
func Load(path string, svgSize int) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read image: %w", err)
	}
	img, kind, err := Decode(data, svgSize)
	if err != nil {
		return nil, kind, fmt.Errorf("unable to load '%s': %w", path, err)
	}
	return img, kind, nil
}

// Decode returns decoded image and its type. Raster images are decoded with
// EXIF orientation applied, SVG documents are rasterized to fit into
// svgSize x svgSize box.
func Decode(data []byte, svgSize int) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: no data", ErrUnsupported)
	}

	if filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, kind.Extension, fmt.Errorf("unable to decode %s image: %w", kind.Extension, err)
		}
		if img.Bounds().Empty() {
			return nil, kind.Extension, fmt.Errorf("%s image has no pixels", kind.Extension)
		}
		return img, kind.Extension, nil
	}

	if IsSVG(data) {
		img, err := RasterizeSVG(data, svgSize, svgSize)
		if err != nil {
			return nil, "svg", fmt.Errorf("unable to rasterize svg image: %w", err)
		}
		return img, "svg", nil
	}

	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		return nil, "", ErrUnsupported
	}
	return nil, kind.Extension, fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
}

// EncodePNG writes img as PNG keeping alpha channel.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("unable to encode PNG: %w", err)
	}
	return nil
}
