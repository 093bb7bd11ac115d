package media

// A Chunk carries one compressed sample from a DataSource to its caller. The
// caller owns the chunk and its Buffer; ReadTrack overwrites both on every call,
// growing Buffer only when the sample does not fit in its capacity.
type Chunk struct {
	Buffer      []byte
	Bytes       int   // Sample length, or -1 when no sample was available
	TimestampUs int64 // Container timestamp of the sample, in microseconds
	IsKeyFrame  bool

	// Presentation time minus TimestampUs. Non-zero for reordered video
	// frames, e.g. H.264 B-frames.
	CompositionOffsetUs int64
}

// NewChunk returns a chunk with a buffer of the given capacity.
func NewChunk(capacity int) *Chunk {
	return &Chunk{Buffer: make([]byte, 0, capacity), Bytes: -1}
}

// Data returns the sample bytes, or nil if the chunk holds no sample.
func (c *Chunk) Data() []byte {
	if c.Bytes < 0 {
		return nil
	}
	return c.Buffer[:c.Bytes]
}
