//////////////////////////////////////////////////////////////////////////////
//
// Transcode drives a DataSource into a Sink
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package transcoder

import (
	"context"

	"github.com/pkg/errors"

	"github.com/lanikai/transcoder/internal/logging"
	"github.com/lanikai/transcoder/internal/media"
	"github.com/lanikai/transcoder/internal/size"
	"github.com/lanikai/transcoder/internal/validator"
)

var log = logging.DefaultLogger.WithTag("transcoder")

// Report progress in steps of this size.
const progressStep = 0.01

// Result summarises a finished transcode.
type Result struct {
	Status  media.TrackTypeMap[validator.TrackStatus]
	Formats media.TrackTypeMap[*media.Format]

	// Output video size, when video is compressed
	VideoSize size.Size

	// Offset actually reached by the initial seek
	SeekedUs int64

	// Microseconds read, and number of samples written per track
	ReadUs  int64
	Samples media.TrackTypeMap[int]
}

// Transcode reads the tracks of src into sink on the calling goroutine, until
// src is drained, opts.DurationUs is reached, or ctx is done. Tracks are
// selected on src for the duration of the call and released before it
// returns. The sink is closed before Transcode returns, on every path.
func Transcode(ctx context.Context, src media.DataSource, sink Sink, opts Options) (res *Result, err error) {
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close sink")
		}
	}()

	res = &Result{}

	// Decide what happens to each track.
	for _, t := range media.TrackTypes {
		format, err := src.TrackFormat(t)
		if err != nil {
			return nil, errors.Wrapf(err, "%v format", t)
		}
		res.Formats.Set(t, format)

		status, err := trackStatus(t, format, opts)
		if err != nil {
			return nil, err
		}
		res.Status.Set(t, status)
		log.Info("%v track: %v", t, status)
	}

	video, audio := res.Status.RequireVideo(), res.Status.RequireAudio()
	if !opts.validator().Validate(video, audio) {
		log.Info("Nothing to do (video: %v, audio: %v)", video, audio)
		return res, ErrAborted
	}

	if video == validator.Compressing {
		format := res.Formats.RequireVideo()
		out, err := opts.VideoStrategy.OutputSize(format.Width, format.Height)
		if err != nil {
			return nil, errors.Wrap(err, "video output size")
		}
		res.VideoSize = out
		log.Info("Video %dx%d -> %v, %v", format.Width, format.Height, out, opts.VideoStrategy)
	}

	return res, run(ctx, src, sink, opts, res)
}

func trackStatus(t media.TrackType, format *media.Format, opts Options) (validator.TrackStatus, error) {
	switch {
	case format == nil:
		return validator.Absent, nil
	case t == media.Video && opts.RemoveVideo, t == media.Audio && opts.RemoveAudio:
		return validator.Removing, nil
	case t == media.Video && opts.VideoStrategy != nil:
		return validator.Compressing, nil
	default:
		return validator.PassThrough, nil
	}
}

func run(ctx context.Context, src media.DataSource, sink Sink, opts Options, res *Result) error {
	var selected []media.TrackType
	defer func() {
		for _, t := range selected {
			src.ReleaseTrack(t)
		}
	}()

	for _, t := range media.TrackTypes {
		status := res.Status.Require(t)
		if !status.IsTranscoding() {
			continue
		}
		if err := src.SelectTrack(t); err != nil {
			return errors.Wrapf(err, "select %v", t)
		}
		selected = append(selected, t)
		if err := sink.AddTrack(t, res.Formats.Require(t), status); err != nil {
			return errors.Wrapf(err, "add %v track", t)
		}
		res.Samples.Set(t, 0)
	}

	if opts.SeekUs > 0 {
		reached, err := src.SeekTo(opts.SeekUs)
		if err != nil {
			return errors.Wrapf(err, "seek to %dus", opts.SeekUs)
		}
		log.Info("Seeked to %dus, asked for %dus", reached, opts.SeekUs)
		res.SeekedUs = reached
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	chunk := media.NewChunk(chunkSize)

	total := opts.DurationUs
	if total <= 0 {
		if d := src.DurationUs(); d > 0 {
			total = d - res.SeekedUs
		}
	}
	reported := -progressStep

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		drained, err := src.IsDrained()
		if err != nil {
			return err
		}
		if drained {
			break
		}

		read := false
		for _, t := range selected {
			ok, err := src.CanReadTrack(t)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := src.ReadTrack(chunk); err != nil {
				return errors.Wrapf(err, "read %v", t)
			}
			if err := sink.WriteSample(t, chunk); err != nil {
				return errors.Wrapf(err, "write %v", t)
			}
			res.Samples.Set(t, res.Samples.Get(t)+1)
			read = true
			break
		}
		if !read {
			return errStalled
		}

		res.ReadUs = src.ReadUs()
		if opts.OnProgress != nil && total > 0 {
			progress := float64(res.ReadUs) / float64(total)
			if progress > 1 {
				progress = 1
			}
			if progress-reported >= progressStep {
				opts.OnProgress(progress)
				reported = progress
			}
		}
		if opts.DurationUs > 0 && res.ReadUs >= opts.DurationUs {
			log.Info("Reached requested duration at %dus", res.ReadUs)
			break
		}
	}

	if opts.OnProgress != nil && reported < 1 {
		opts.OnProgress(1)
	}
	log.Info("Done: read %dus, %d video and %d audio samples",
		res.ReadUs, res.Samples.Get(media.Video), res.Samples.Get(media.Audio))
	return nil
}
