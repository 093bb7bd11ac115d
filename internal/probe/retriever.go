// Package probe retrieves container metadata and still frames by running
// ffprobe and ffmpeg against a file path or URL.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"math"
	"os/exec"
	"strconv"
	"strings"

	errors "golang.org/x/xerrors"

	"github.com/lanikai/transcoder/internal/logging"
)

var log = logging.DefaultLogger.WithTag("probe")

// Longest stderr excerpt carried in an error.
const maxStderr = 4096

// Retriever holds the metadata of one input, captured by a single ffprobe run,
// and extracts frames from the same input on demand.
type Retriever struct {
	cfg      Config
	input    string
	values   map[Key]string
	released bool
}

// Open runs ffprobe against input and returns a Retriever for its metadata.
func Open(ctx context.Context, input string, cfg Config) (*Retriever, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	// #nosec G204 - binary is configured by the operator; input is passed as a single argument
	cmd := exec.CommandContext(ctx, cfg.FFprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		input,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Errorf("ffprobe %s (stderr: %s): %w", input, truncate(stderr.String()), err)
	}

	values, err := parseOutput(out)
	if err != nil {
		return nil, errors.Errorf("ffprobe %s: %w", input, err)
	}
	log.Debug("Probed %s: %d metadata values", input, len(values))

	return &Retriever{cfg: cfg, input: input, values: values}, nil
}

// Extract returns the metadata value for key, or "" if the container does not
// carry it.
func (r *Retriever) Extract(key Key) string {
	if r.released {
		return ""
	}
	return r.values[key]
}

// FrameAtTime decodes the frame at the sync point nearest to timeUs. When both
// width and height are positive, the frame is scaled down to fit inside them,
// preserving the display aspect ratio.
func (r *Retriever) FrameAtTime(timeUs int64, width, height int) (image.Image, error) {
	if r.released {
		return nil, ErrReleased
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()

	// #nosec G204 - see Open
	cmd := exec.CommandContext(ctx, r.cfg.FFmpeg, frameArgs(r.input, timeUs, width, height)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Errorf("ffmpeg frame at %dus (stderr: %s): %w", timeUs, truncate(stderr.String()), err)
	}
	if len(out) == 0 {
		return nil, ErrNoFrame
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, errors.Errorf("decode frame at %dus: %w", timeUs, err)
	}
	return img, nil
}

// Release drops the captured metadata. Safe to call more than once.
func (r *Retriever) Release() error {
	r.released = true
	r.values = nil
	return nil
}

func frameArgs(input string, timeUs int64, width, height int) []string {
	if timeUs < 0 {
		timeUs = 0
	}
	args := []string{
		"-v", "error",
		"-noaccurate_seek",
		"-ss", strconv.FormatFloat(float64(timeUs)/1e6, 'f', 6, 64),
		"-i", input,
		"-frames:v", "1",
	}
	if width > 0 && height > 0 {
		// ffmpeg applies the container rotation before scaling, so the bounding
		// box is in display orientation.
		args = append(args, "-vf",
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", width, height))
	}
	return append(args, "-f", "image2pipe", "-vcodec", "png", "-")
}

type sideData struct {
	Rotation *int `json:"rotation,omitempty"`
}

type probeData struct {
	Streams []struct {
		CodecType    string            `json:"codec_type"`
		Width        int               `json:"width,omitempty"`
		Height       int               `json:"height,omitempty"`
		AvgFrameRate string            `json:"avg_frame_rate,omitempty"`
		RFrameRate   string            `json:"r_frame_rate,omitempty"`
		Tags         map[string]string `json:"tags,omitempty"`
		SideDataList []sideData        `json:"side_data_list,omitempty"`
	} `json:"streams"`
	Format struct {
		FormatName string            `json:"format_name"`
		Duration   string            `json:"duration"`
		BitRate    string            `json:"bit_rate"`
		Tags       map[string]string `json:"tags"`
	} `json:"format"`
}

// parseOutput maps ffprobe JSON onto metadata keys. Values that cannot be
// normalised are kept verbatim, so that callers see the parse failure.
func parseOutput(out []byte) (map[Key]string, error) {
	var data probeData
	if err := json.Unmarshal(out, &data); err != nil {
		return nil, errors.Errorf("json decode: %w", err)
	}

	values := make(map[Key]string)
	set := func(k Key, v string) {
		if v != "" {
			values[k] = v
		}
	}

	if d := data.Format.Duration; d != "" {
		if secs, err := strconv.ParseFloat(d, 64); err == nil {
			set(KeyDuration, strconv.FormatInt(int64(math.Round(secs*1000)), 10))
		} else {
			set(KeyDuration, d)
		}
	}
	set(KeyBitrate, data.Format.BitRate)
	set(KeyDate, data.Format.Tags["creation_time"])
	set(KeyLocation, data.Format.Tags["location"])
	set(KeyLocation, data.Format.Tags["com.apple.quicktime.location.ISO6709"])

	hasVideo := false
	for _, s := range data.Streams {
		if s.CodecType != "video" || hasVideo {
			continue
		}
		hasVideo = true
		if s.Width > 0 && s.Height > 0 {
			set(KeyVideoWidth, strconv.Itoa(s.Width))
			set(KeyVideoHeight, strconv.Itoa(s.Height))
		}
		if rate := s.AvgFrameRate; rate != "" && rate != "0/0" {
			set(KeyCaptureFrameRate, ratio(rate))
		} else if rate := s.RFrameRate; rate != "" && rate != "0/0" {
			set(KeyCaptureFrameRate, ratio(rate))
		}
		set(KeyVideoRotation, rotation(s.Tags["rotate"], s.SideDataList))
	}

	set(KeyMimeType, mimeType(data.Format.FormatName, hasVideo))
	return values, nil
}

// ratio turns "30000/1001" into "29.97003". Malformed ratios are returned as-is.
func ratio(s string) string {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return s
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return s
	}
	return strconv.FormatFloat(num/den, 'f', -1, 32)
}

// rotation prefers the legacy "rotate" tag, then the display matrix side data.
// The display matrix reports counter-clockwise degrees.
func rotation(tag string, list []sideData) string {
	if tag != "" {
		return tag
	}
	for _, sd := range list {
		if sd.Rotation != nil {
			return strconv.Itoa(((-*sd.Rotation)%360 + 360) % 360)
		}
	}
	return ""
}

func mimeType(formatName string, hasVideo bool) string {
	kind := "audio/"
	if hasVideo {
		kind = "video/"
	}
	for _, name := range strings.Split(formatName, ",") {
		switch strings.TrimSpace(name) {
		case "mp4", "mov":
			return kind + "mp4"
		case "mpegts":
			return "video/mp2t"
		case "flv":
			return "video/x-flv"
		case "matroska", "webm":
			if hasVideo {
				return "video/x-matroska"
			}
			return "audio/x-matroska"
		case "mp3":
			return "audio/mpeg"
		case "aac":
			return "audio/aac"
		}
	}
	return ""
}

func truncate(s string) string {
	if len(s) > maxStderr {
		return s[:maxStderr] + "..."
	}
	return s
}
