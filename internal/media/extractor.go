package media

/*
An Extractor is the platform demuxer behind a DefaultDataSource. It exposes
the container's tracks and a single cursor that walks the samples of all
selected tracks in container order. Samples of unselected tracks are skipped.

Example usage:

	x.SelectTrack(0)
	for x.SampleTrackIndex() >= 0 {
		data, _ := x.ReadSampleData(buf)
		// Process data, x.SampleTime(), x.IsSyncSample()
		x.Advance()
	}
	if err := x.Err(); err != nil {
		// The container is corrupt or the input failed mid-stream.
	}

An Extractor is not safe for concurrent use.
*/
type Extractor interface {
	// TrackCount returns the number of tracks in the container.
	TrackCount() int

	// TrackFormat describes the track at index.
	TrackFormat(index int) Format

	SelectTrack(index int)
	UnselectTrack(index int)

	// SampleTrackIndex returns the track index of the sample under the cursor,
	// or -1 once all selected samples have been consumed.
	SampleTrackIndex() int

	// SampleTime returns the timestamp of the sample under the cursor in
	// microseconds, or -1 when there is none.
	SampleTime() int64

	// SampleCompositionOffset returns the presentation time of the sample under
	// the cursor minus its SampleTime, in microseconds.
	SampleCompositionOffset() int64

	// IsSyncSample reports whether the sample under the cursor can be decoded
	// without reference to earlier samples.
	IsSyncSample() bool

	// ReadSampleData copies the sample under the cursor into buf, reusing its
	// capacity, and returns the filled slice. The cursor does not move. The
	// second return value is false when there is no sample.
	ReadSampleData(buf []byte) ([]byte, bool)

	// Advance moves the cursor to the next selected sample. It returns false
	// when there are no more samples.
	Advance() bool

	// SeekTo positions every selected track at its last sync sample at or
	// before timeUs, and the cursor at the first of those in container order.
	SeekTo(timeUs int64) error

	// Err returns the first non-EOF error encountered while reading samples.
	Err() error

	// Release frees the underlying input. Safe to call more than once.
	Release() error
}
