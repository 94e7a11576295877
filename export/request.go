package export

import (
	"fmt"

	"github.com/google/uuid"

	"bic/common"
	"bic/composite"
)

// Request holds everything needed to produce composite image(s).
type Request struct {
	ID uuid.UUID

	// Main is either image file or directory with images.
	Main  string
	Badge string
	// Output is target file name, or target directory when Main is a
	// directory. Empty means names derived from configuration.
	Output string

	Resolution int
	// Size is side of the badge box in percent of the canvas side.
	Size     int
	Position common.Position

	Preview   bool
	Flatten   bool
	Overwrite bool
}

func (r *Request) resolution() int {
	if r.Preview {
		return composite.PreviewSize
	}
	return r.Resolution
}

func (r *Request) params() composite.Params {
	return composite.Params{
		Resolution: r.Resolution,
		BadgeSize:  float64(r.Size) / 100,
		Position:   r.Position,
	}
}

func (r *Request) validate(maxResolution int) error {
	if r.Main == "" {
		return composite.ErrNoMainImage
	}
	if !r.Preview && (r.Resolution < 1 || r.Resolution > maxResolution) {
		return fmt.Errorf("%w: %d is outside of [1, %d]", composite.ErrBadResolution, r.Resolution, maxResolution)
	}
	if r.Size < 1 || r.Size > 100 {
		return fmt.Errorf("%w: %d%% is outside of [1, 100]", composite.ErrBadBadgeSize, r.Size)
	}
	if !r.Position.IsValid() {
		return fmt.Errorf("%w: %d", composite.ErrBadPosition, r.Position)
	}
	return nil
}
