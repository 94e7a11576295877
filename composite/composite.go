// Package composite places badge image over the corner of the main icon
// cutting the icon out under the badge, so badge looks inset rather than
// simply stacked on top.
package composite

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"bic/common"
)

// PreviewSize is side of the canvas used for on-screen previews.
const PreviewSize = 256

var (
	ErrNoMainImage   = errors.New("no main image selected")
	ErrEmptyImage    = errors.New("image has no pixels")
	ErrBadResolution = errors.New("resolution must be positive")
	ErrBadBadgeSize  = errors.New("badge size must be in (0, 1] range")
	ErrBadPosition   = errors.New("unknown badge position")
	ErrBadMask       = errors.New("mask grow and blur must not be negative")
)

// Params describes single composition request.
type Params struct {
	// Resolution is side of the square output canvas in pixels.
	Resolution int
	// BadgeSize is side of the badge box as a fraction of the canvas side.
	BadgeSize float64
	Position  common.Position
}

func (p Params) validate() error {
	if p.Resolution <= 0 {
		return fmt.Errorf("%w: %d", ErrBadResolution, p.Resolution)
	}
	if !(p.BadgeSize > 0 && p.BadgeSize <= 1) {
		return fmt.Errorf("%w: %g", ErrBadBadgeSize, p.BadgeSize)
	}
	if !p.Position.IsValid() {
		return fmt.Errorf("%w: %s", ErrBadPosition, p.Position)
	}
	return nil
}

// MaskOptions controls shape of the cutout. Both values are fractions of the
// canvas side, so the cutout scales together with the output.
type MaskOptions struct {
	// Grow is distance cutout extends past visible edges of the badge.
	Grow float64
	// Blur is gaussian sigma used to smooth the grown edge before it is
	// made solid again.
	Blur float64
}

// DefaultMaskOptions leave about 3% gap around the badge.
var DefaultMaskOptions = MaskOptions{Grow: 0.03, Blur: 0.01}

// Compositor produces badged icons. It keeps no state between calls and may
// be shared.
type Compositor struct {
	opts MaskOptions
	log  *zap.Logger
}

// New returns compositor using provided cutout shape. Negative values are
// rejected.
func New(opts MaskOptions, log *zap.Logger) (*Compositor, error) {
	if !(opts.Grow >= 0 && opts.Blur >= 0) {
		return nil, fmt.Errorf("%w: grow %g, blur %g", ErrBadMask, opts.Grow, opts.Blur)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Compositor{opts: opts, log: log}, nil
}

// Compose renders main into a new Resolution x Resolution canvas and, when
// badge is not nil, cuts out the area under the badge (grown and softened
// silhouette) before drawing badge on top. All parameters are checked before
// anything is drawn.
func (c *Compositor) Compose(main, badge image.Image, p Params) (*image.RGBA, error) {
	if main == nil {
		return nil, ErrNoMainImage
	}
	if main.Bounds().Empty() {
		return nil, fmt.Errorf("main: %w", ErrEmptyImage)
	}
	if badge != nil && badge.Bounds().Empty() {
		return nil, fmt.Errorf("badge: %w", ErrEmptyImage)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	size := float64(p.Resolution)
	canvas := image.NewRGBA(image.Rect(0, 0, p.Resolution, p.Resolution))
	fit := Render(canvas, main, Rect{W: size, H: size})

	if badge == nil {
		c.log.Debug("Main icon rendered", zap.Int("resolution", p.Resolution), zap.Stringer("rect", fit))
		return canvas, nil
	}

	box := BadgeRect(p.Resolution, p.BadgeSize, p.Position)
	Punch(canvas, c.CutoutMask(badge, box, p.Resolution))
	fit = Render(canvas, badge, box)

	c.log.Debug("Badge composed",
		zap.Int("resolution", p.Resolution),
		zap.Stringer("position", p.Position),
		zap.Stringer("box", box),
		zap.Stringer("rect", fit))
	return canvas, nil
}

// Preview is Compose at PreviewSize, other parameters are kept so preview is
// a scaled copy of what export would produce.
func (c *Compositor) Preview(main, badge image.Image, p Params) (*image.RGBA, error) {
	p.Resolution = PreviewSize
	return c.Compose(main, badge, p)
}

// CutoutMask returns binary mask of the area to be erased under badge drawn
// into box on a size x size canvas.
func (c *Compositor) CutoutMask(badge image.Image, box Rect, size int) *image.Alpha {
	m := Silhouette(badge, box, size)
	m = Grow(m, c.opts.Grow*float64(size))
	m = Soften(m, c.opts.Blur*float64(size))
	Binarize(m)
	return m
}
