package transcoder

import (
	"github.com/lanikai/transcoder/internal/media"
	"github.com/lanikai/transcoder/internal/validator"
)

// A Sink consumes the samples of a transcode. AddTrack is called for every
// track reaching the output before the first WriteSample, and Close once at
// the end, whether the transcode succeeded or not.
type Sink interface {
	AddTrack(t media.TrackType, format *media.Format, status validator.TrackStatus) error
	WriteSample(t media.TrackType, chunk *media.Chunk) error
	Close() error
}
