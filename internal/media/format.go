package media

import (
	"strings"

	"github.com/nareix/joy4/av"
)

const (
	audioMimePrefix = "audio/"
	videoMimePrefix = "video/"
)

// Format describes one track of a container.
type Format struct {
	Mime  string // e.g. "video/avc", "audio/mp4a-latm"
	Codec string

	// Video tracks only.
	Width  int
	Height int

	// Audio tracks only.
	SampleRate int
	Channels   int

	// Codec parameters (e.g. H.264 SPS/PPS) as delivered by the demuxer, for
	// stages that configure a decoder or muxer.
	CodecData av.CodecData
}

// Classify maps a mime type onto a TrackType. The second return value is false
// for mime types that are neither audio nor video.
func Classify(mime string) (TrackType, bool) {
	switch {
	case strings.HasPrefix(mime, videoMimePrefix):
		return Video, true
	case strings.HasPrefix(mime, audioMimePrefix):
		return Audio, true
	default:
		return 0, false
	}
}

// mimeOf names joy4 codec types with the mime types used by Android's
// MediaFormat, which downstream encoder configuration expects.
func mimeOf(typ av.CodecType) string {
	switch typ {
	case av.H264:
		return "video/avc"
	case av.AAC:
		return "audio/mp4a-latm"
	case av.PCM_MULAW:
		return "audio/g711-mlaw"
	case av.PCM_ALAW:
		return "audio/g711-alaw"
	case av.SPEEX:
		return "audio/speex"
	case av.NELLYMOSER:
		return "audio/nellymoser"
	}
	switch {
	case typ.IsVideo():
		return videoMimePrefix + "x-unknown"
	case typ.IsAudio():
		return audioMimePrefix + "x-unknown"
	default:
		return "application/octet-stream"
	}
}

func formatOf(codec av.CodecData) Format {
	f := Format{
		Mime:      mimeOf(codec.Type()),
		Codec:     codec.Type().String(),
		CodecData: codec,
	}
	switch cd := codec.(type) {
	case av.VideoCodecData:
		f.Width = cd.Width()
		f.Height = cd.Height()
	case av.AudioCodecData:
		f.SampleRate = cd.SampleRate()
		f.Channels = cd.ChannelLayout().Count()
	}
	return f
}
