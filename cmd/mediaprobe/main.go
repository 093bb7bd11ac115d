package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/lanikai/transcoder"
	"github.com/lanikai/transcoder/internal/logging"
	"github.com/lanikai/transcoder/internal/media"
	"github.com/lanikai/transcoder/internal/validator"
)

var log = logging.DefaultLogger.WithTag("mediaprobe")

// Populated via -ldflags="-X ...".
var GitRevisionId string
var GitTag string

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}
	if flagVersion {
		fmt.Printf("mediaprobe %s (%s)\n", GitTag, GitRevisionId)
		os.Exit(0)
	}

	spec := flagInput
	if spec == "" && flag.NArg() > 0 {
		spec = flag.Arg(0)
	}
	if spec == "" {
		help()
		os.Exit(2)
	}
	if !strings.Contains(spec, ":") {
		spec = "file:" + spec
	}

	cfg := media.DefaultConfig()
	cfg.Probe.FFprobe = flagFFprobe
	cfg.Probe.FFmpeg = flagFFmpeg

	src, err := media.OpenSource(spec, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer src.Close()

	if err := describe(src); err != nil {
		log.Fatalf("%v", err)
	}

	if flagThumbnail != "" {
		if err := thumbnail(src, flagThumbnail); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if flagDump > 0 {
		if err := dump(src, flagDump); err != nil {
			log.Fatalf("%v", err)
		}
		src.Rewind()
	}

	if flagOutput != "" {
		if err := remux(src, flagOutput); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func describe(src media.DataSource) error {
	for _, t := range media.TrackTypes {
		format, err := src.TrackFormat(t)
		if err != nil {
			return err
		}
		switch {
		case format == nil:
			fmt.Printf("%-6s none\n", t)
		case t == media.Video:
			fmt.Printf("%-6s %s %dx%d\n", t, format.Mime, format.Width, format.Height)
		default:
			fmt.Printf("%-6s %s %dHz %dch\n", t, format.Mime, format.SampleRate, format.Channels)
		}
	}

	fmt.Println(src.MetaDataInfo())
	if loc := src.Location(); loc != nil {
		fmt.Printf("location %.4f,%.4f\n", loc.Latitude, loc.Longitude)
	}
	return nil
}

func thumbnail(src media.DataSource, path string) error {
	img, err := src.FrameAtTime(flagThumbTime, flagThumbWidth, flagThumbHeight)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	log.Info("Wrote %v thumbnail to %s", img.Bounds().Size(), path)
	return f.Close()
}

func dump(src media.DataSource, n int) error {
	var selected []media.TrackType
	for _, t := range media.TrackTypes {
		if format, err := src.TrackFormat(t); err != nil {
			return err
		} else if format == nil {
			continue
		}
		if err := src.SelectTrack(t); err != nil {
			return err
		}
		selected = append(selected, t)
	}

	if flagSeek > 0 {
		reached, err := src.SeekTo(flagSeek * 1000)
		if err != nil {
			return err
		}
		fmt.Printf("seek   %dms -> %dms\n", flagSeek, reached/1000)
	}

	chunk := media.NewChunk(1 << 20)
	for i := 0; i < n; i++ {
		drained, err := src.IsDrained()
		if err != nil {
			return err
		}
		if drained {
			break
		}
		for _, t := range selected {
			if ok, err := src.CanReadTrack(t); err != nil {
				return err
			} else if !ok {
				continue
			}
			if err := src.ReadTrack(chunk); err != nil {
				return err
			}
			key := ""
			if chunk.IsKeyFrame {
				key = "key"
			}
			fmt.Printf("%-6s %10dus %8d bytes %s\n", t, chunk.TimestampUs, chunk.Bytes, key)
			break
		}
	}
	fmt.Printf("read   %dus\n", src.ReadUs())
	return nil
}

func remux(src media.DataSource, path string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop cleanly on interrupt, so that the trailer is written.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
	}()

	sink, err := transcoder.CreateMP4Sink(path)
	if err != nil {
		return err
	}

	res, err := transcoder.Transcode(ctx, src, sink, transcoder.Options{
		RemoveAudio: flagRemoveAudio,
		RemoveVideo: flagRemoveVideo,
		Validator:   validator.WriteAlways,
		SeekUs:      flagSeek * 1000,
		DurationUs:  flagDuration * 1000,
		OnProgress: func(p float64) {
			fmt.Printf("\r%3.0f%%", p*100)
		},
	})
	fmt.Println()
	if err != nil {
		if err == transcoder.ErrAborted {
			os.Remove(path)
		}
		return err
	}
	log.Info("Wrote %d video and %d audio samples to %s",
		res.Samples.Get(media.Video), res.Samples.Get(media.Audio), path)
	return nil
}
