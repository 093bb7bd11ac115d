package probe

import "time"

type Config struct {
	FFprobe string        // ffprobe binary (default: "ffprobe" from $PATH)
	FFmpeg  string        // ffmpeg binary (default: "ffmpeg" from $PATH)
	Timeout time.Duration // Upper bound for a single ffprobe/ffmpeg run
}

const defaultTimeout = 30 * time.Second

func (c Config) withDefaults() Config {
	if c.FFprobe == "" {
		c.FFprobe = "ffprobe"
	}
	if c.FFmpeg == "" {
		c.FFmpeg = "ffmpeg"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}
