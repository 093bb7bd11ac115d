package probe

// Key identifies one metadata value. Values are always returned as strings,
// exactly as the container reports them; callers parse numbers themselves.
type Key int

const (
	KeyDuration         Key = iota // Duration in milliseconds
	KeyVideoRotation               // Clockwise rotation in degrees: 0, 90, 180 or 270
	KeyVideoWidth                  // Pixels
	KeyVideoHeight                 // Pixels
	KeyCaptureFrameRate            // Frames per second, decimal
	KeyBitrate                     // Bits per second
	KeyMimeType                    // Container mime type, e.g. video/mp4
	KeyDate                        // Creation date as tagged
	KeyLocation                    // ISO-6709 location string
)

var keyNames = [...]string{
	KeyDuration:         "duration",
	KeyVideoRotation:    "rotation",
	KeyVideoWidth:       "width",
	KeyVideoHeight:      "height",
	KeyCaptureFrameRate: "frame-rate",
	KeyBitrate:          "bitrate",
	KeyMimeType:         "mime",
	KeyDate:             "date",
	KeyLocation:         "location",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}
