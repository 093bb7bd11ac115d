package media

import (
	"time"

	"github.com/lanikai/transcoder/internal/probe"
)

type Config struct {
	Probe probe.Config

	// Number of decoded thumbnails kept per source. Zero disables caching.
	FrameCacheSize int
}

func DefaultConfig() Config {
	return Config{
		Probe: probe.Config{
			FFprobe: "ffprobe",
			FFmpeg:  "ffmpeg",
			Timeout: 30 * time.Second,
		},
		FrameCacheSize: 16,
	}
}
