package media

import "image"

/*
A DataSource demultiplexes one audio/video input for the ingestion side of a
transcoding pipeline. A typical read loop:

	src.SelectTrack(Video)
	src.SelectTrack(Audio)
	defer src.Close()

	chunk := NewChunk(1 << 20)
	for {
		if drained, err := src.IsDrained(); err != nil || drained {
			break
		}
		for _, t := range TrackTypes {
			if ok, _ := src.CanReadTrack(t); ok {
				if err := src.ReadTrack(chunk); err != nil {
					// abort
				}
				// Hand chunk.Data() to the branch for t.
			}
		}
	}

A DataSource is not safe for concurrent use. Audio and video share a single
demux cursor, so one goroutine reads both.
*/
type DataSource interface {
	// SelectTrack marks t to be read. Selecting an already selected type is a
	// no-op. Returns ErrTrackNotFound if the input has no track of type t.
	SelectTrack(t TrackType) error

	// ReleaseTrack stops reading t. Once no track is selected, the underlying
	// handles are released. Releasing an unselected type is a no-op.
	ReleaseTrack(t TrackType)

	// TrackFormat returns the format of the first track of type t, in container
	// order, or nil if there is none.
	TrackFormat(t TrackType) (*Format, error)

	// CanReadTrack reports whether the next sample belongs to t.
	CanReadTrack(t TrackType) (bool, error)

	// ReadTrack fills chunk with the next sample and advances.
	ReadTrack(chunk *Chunk) error

	// IsDrained reports whether all selected samples have been read.
	IsDrained() (bool, error)

	// SeekTo moves by desiredUs from the start of the stream, landing on a video
	// sync sample when both tracks are selected. It returns the offset actually
	// reached, which may differ from desiredUs.
	SeekTo(desiredUs int64) (int64, error)

	// ReadUs is the read progress in microseconds: zero before the first read,
	// then the span from the first sample to the latest sample of either track.
	// It never decreases until Rewind.
	ReadUs() int64

	Location() *Location
	Orientation() int
	DurationUs() int64
	MetaDataInfo() MetaDataInfo
	FrameAtTime(timeMs int64, width, height int) (image.Image, error)

	// Rewind resets read state and reopens the input, so that it can be read
	// again from the beginning.
	Rewind()

	// Close releases the underlying handles. Safe to call more than once.
	Close() error
}
