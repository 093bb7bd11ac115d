package media

import "fmt"

// Sentinels reported when metadata is missing or malformed.
const (
	UnknownDuration    int64   = -1
	UnknownOrientation int     = 0
	UnknownFrameRate   float32 = 0
)

// MetaDataInfo is a snapshot of container-level metadata. A fresh value is
// built for each query; fields that could not be parsed keep their zero value,
// except Duration which falls back to UnknownDuration.
type MetaDataInfo struct {
	Width     int
	Height    int
	Duration  int64 // Microseconds
	Rotation  int   // Degrees clockwise
	FrameRate float32
	BitRate   int
	MimeType  string
	Date      string
}

func (m MetaDataInfo) String() string {
	return fmt.Sprintf("MetaDataInfo{width=%d, height=%d, duration=%d, rotation=%d, frameRate=%g, bitRate=%d, mimeType=%q, date=%q}",
		m.Width, m.Height, m.Duration, m.Rotation, m.FrameRate, m.BitRate, m.MimeType, m.Date)
}
