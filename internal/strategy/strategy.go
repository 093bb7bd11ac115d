// Package strategy holds the output presets for video compression.
package strategy

import (
	"fmt"

	"github.com/lanikai/transcoder/internal/size"
)

const (
	BitRate480p  int64 = 2 * 1000 * 1000
	BitRate720p  int64 = 4 * 1000 * 1000
	BitRate1080p int64 = 10 * 1000 * 1000

	FrameRate = 30

	// Seconds between key frames in compressed output.
	DefaultKeyFrameInterval float32 = 3
)

// Quality is an output quality level.
type Quality int

const (
	Quality480p Quality = iota
	Quality720p
	Quality1080p
)

func (q Quality) BitRate() int64 {
	switch q {
	case Quality480p:
		return BitRate480p
	case Quality720p:
		return BitRate720p
	case Quality1080p:
		return BitRate1080p
	default:
		panic(fmt.Sprintf("strategy: unknown quality %d", int(q)))
	}
}

func (q Quality) FrameRate() int {
	return FrameRate
}

func (q Quality) String() string {
	switch q {
	case Quality480p:
		return "480p"
	case Quality720p:
		return "720p"
	case Quality1080p:
		return "1080p"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// VideoStrategy describes how a video track is compressed.
type VideoStrategy struct {
	Resizer          size.Resizer
	BitRate          int64
	FrameRate        int
	KeyFrameInterval float32
}

// New returns a strategy resizing with r at quality q.
func New(r size.Resizer, q Quality) *VideoStrategy {
	return &VideoStrategy{
		Resizer:          r,
		BitRate:          q.BitRate(),
		FrameRate:        q.FrameRate(),
		KeyFrameInterval: DefaultKeyFrameInterval,
	}
}

// For720x1280 produces 720x1280 output at 720p quality.
func For720x1280() *VideoStrategy {
	return New(size.ExactResizer{Width: 720, Height: 1280}, Quality720p)
}

// For360x480 produces 360x480 output at 480p quality.
func For360x480() *VideoStrategy {
	return New(size.ExactResizer{Width: 360, Height: 480}, Quality480p)
}

// OutputSize is the size of the compressed video for an input of width x
// height.
func (s *VideoStrategy) OutputSize(width, height int) (size.Size, error) {
	r := s.Resizer
	if r == nil {
		r = size.PassThroughResizer{}
	}
	return r.OutputSize(size.ExactSize{Width: width, Height: height})
}

func (s *VideoStrategy) String() string {
	return fmt.Sprintf("VideoStrategy{bitRate=%d, frameRate=%d, keyFrameInterval=%g}",
		s.BitRate, s.FrameRate, s.KeyFrameInterval)
}
