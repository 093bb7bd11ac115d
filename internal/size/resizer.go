package size

import (
	"github.com/pkg/errors"
)

var ErrInvalidCrop = errors.New("size: crop is empty")

// A Resizer maps the input video size to the output size.
type Resizer interface {
	OutputSize(in Size) (Size, error)
}

// PassThroughResizer keeps the input size.
type PassThroughResizer struct{}

func (PassThroughResizer) OutputSize(in Size) (Size, error) {
	return in, nil
}

// ExactResizer always produces Width x Height.
type ExactResizer struct {
	Width, Height int
}

func (r ExactResizer) OutputSize(in Size) (Size, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, errors.Errorf("size: invalid output size %dx%d", r.Width, r.Height)
	}
	return ExactSize{Width: r.Width, Height: r.Height}, nil
}

// AspectRatioResizer crops the input to AspectRatio (width / height), cutting
// the longer side. Output dimensions are rounded down to even numbers, as
// encoders require.
type AspectRatioResizer struct {
	AspectRatio float32
	OffsetRatio float32
}

// NewAspectRatioResizer returns a resizer producing centred crops.
func NewAspectRatioResizer(aspectRatio float32) *AspectRatioResizer {
	return &AspectRatioResizer{AspectRatio: aspectRatio, OffsetRatio: NoOffset}
}

func even(n int) int {
	return n &^ 1
}

func (r *AspectRatioResizer) OutputSize(in Size) (Size, error) {
	if r.AspectRatio <= 0 {
		return nil, errors.Errorf("size: invalid aspect ratio %v", r.AspectRatio)
	}
	if in.Minor() <= 0 {
		return nil, errors.Errorf("size: invalid input size %dx%d", in.Major(), in.Minor())
	}

	if exact, ok := in.(ExactSize); ok {
		ratio := float32(exact.Width) / float32(exact.Height)
		switch {
		case ratio < r.AspectRatio:
			// Too tall.
			out := ExactSize{Width: even(exact.Width), Height: even(int(float32(exact.Width) / r.AspectRatio))}
			return OffsetRatioSize{ExactSize: out, OffsetRatio: r.OffsetRatio}, nil
		case ratio > r.AspectRatio:
			// Too wide.
			out := ExactSize{Width: even(int(float32(exact.Height) * r.AspectRatio)), Height: even(exact.Height)}
			return OffsetRatioSize{ExactSize: out, OffsetRatio: r.OffsetRatio}, nil
		default:
			return in, nil
		}
	}

	// Orientation unknown: compare major/minor ratios, both >= 1.
	inRatio := float32(in.Major()) / float32(in.Minor())
	outRatio := r.AspectRatio
	if outRatio < 1 {
		outRatio = 1 / outRatio
	}
	switch {
	case inRatio > outRatio:
		return NewAnySize(even(int(outRatio*float32(in.Minor()))), even(in.Minor())), nil
	case inRatio < outRatio:
		return NewAnySize(even(in.Major()), even(int(float32(in.Major())/outRatio))), nil
	default:
		return in, nil
	}
}

// CustomCropResizer cuts a Width x Height rectangle at (X, Y) out of the input.
// An origin outside the frame is reset to zero; a rectangle reaching past the
// frame is clipped to it.
type CustomCropResizer struct {
	Width, Height int
	X, Y          int
}

func (r CustomCropResizer) OutputSize(in Size) (Size, error) {
	exact, ok := in.(ExactSize)
	if !ok {
		if r.Width <= 0 || r.Height <= 0 {
			return nil, errors.Wrapf(ErrInvalidCrop, "%dx%d", r.Width, r.Height)
		}
		return NewAnySize(r.Width, r.Height), nil
	}

	x, y := r.X, r.Y
	if x < 0 || x > exact.Width {
		x = 0
	}
	if y < 0 || y > exact.Height {
		y = 0
	}
	width, height := r.Width, r.Height
	if x+width > exact.Width {
		width = exact.Width - x
	}
	if y+height > exact.Height {
		height = exact.Height - y
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidCrop, "%dx%d at (%d, %d) in %v", r.Width, r.Height, r.X, r.Y, exact)
	}
	return CustomExactSize{ExactSize: ExactSize{Width: width, Height: height}, X: x, Y: y}, nil
}
