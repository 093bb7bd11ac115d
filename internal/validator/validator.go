// Package validator decides whether a transcode is worth running, given what
// will happen to each track.
package validator

import "fmt"

// TrackStatus is what the pipeline will do with one track.
type TrackStatus int

const (
	// Absent means the input has no track of this type.
	Absent TrackStatus = iota

	// Removing means the track exists but will be dropped from the output.
	Removing

	// PassThrough means samples are copied to the output unchanged.
	PassThrough

	// Compressing means samples are decoded and encoded again.
	Compressing
)

func (s TrackStatus) String() string {
	switch s {
	case Absent:
		return "absent"
	case Removing:
		return "removing"
	case PassThrough:
		return "pass-through"
	case Compressing:
		return "compressing"
	default:
		return fmt.Sprintf("TrackStatus(%d)", int(s))
	}
}

// IsTranscoding reports whether the track ends up in the output.
func (s TrackStatus) IsTranscoding() bool {
	return s == PassThrough || s == Compressing
}

// A Validator is consulted once per job, after track statuses are known.
// Returning false aborts the job before any sample is read.
type Validator interface {
	Validate(video, audio TrackStatus) bool
}

// Func adapts a function to the Validator interface.
type Func func(video, audio TrackStatus) bool

func (f Func) Validate(video, audio TrackStatus) bool {
	return f(video, audio)
}

// Default continues when some track is being compressed or removed. A job
// that would only copy tracks, or has no tracks at all, is aborted.
var Default Validator = Func(func(video, audio TrackStatus) bool {
	switch {
	case video == Compressing || audio == Compressing:
		return true
	case video == Removing || audio == Removing:
		// Dropping a track is a change worth writing out.
		return true
	default:
		return false
	}
})

// WriteAlways continues whenever any track reaches the output, so that plain
// remuxing is allowed.
var WriteAlways Validator = Func(func(video, audio TrackStatus) bool {
	return video.IsTranscoding() || audio.IsTranscoding()
})

// WriteVideo continues whenever the video track reaches the output.
var WriteVideo Validator = Func(func(video, audio TrackStatus) bool {
	return video.IsTranscoding()
})
