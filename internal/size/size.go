// Package size computes output video dimensions from input dimensions.
package size

import "fmt"

// A Size has two dimensions. Only ExactSize and the types embedding it know
// which of the two is the width.
type Size interface {
	Major() int
	Minor() int
}

// AnySize is a size whose orientation is left to the caller.
type AnySize struct {
	major, minor int
}

// NewAnySize returns the size with dimensions a and b, in either order.
func NewAnySize(a, b int) AnySize {
	if a < b {
		a, b = b, a
	}
	return AnySize{major: a, minor: b}
}

func (s AnySize) Major() int { return s.major }
func (s AnySize) Minor() int { return s.minor }

func (s AnySize) String() string {
	return fmt.Sprintf("%dx%d", s.major, s.minor)
}

// ExactSize is an oriented size.
type ExactSize struct {
	Width  int
	Height int
}

func (s ExactSize) Major() int {
	if s.Width > s.Height {
		return s.Width
	}
	return s.Height
}

func (s ExactSize) Minor() int {
	if s.Width > s.Height {
		return s.Height
	}
	return s.Width
}

func (s ExactSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// NoOffset is the OffsetRatio of a centred crop.
const NoOffset float32 = -1

// OffsetRatioSize is an oriented size cropped out of a larger frame. The
// OffsetRatio in [0, 1] places the crop along the axis being cut; NoOffset
// centres it.
type OffsetRatioSize struct {
	ExactSize
	OffsetRatio float32
}

// CustomExactSize is an oriented size cropped at (X, Y) out of a larger frame.
type CustomExactSize struct {
	ExactSize
	X, Y int
}
