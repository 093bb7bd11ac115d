//////////////////////////////////////////////////////////////////////////////
//
// Options controls a single Transcode call
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package transcoder

import (
	"github.com/lanikai/transcoder/internal/strategy"
	"github.com/lanikai/transcoder/internal/validator"
)

type Options struct {
	// Compression settings for the video track. Nil copies video unchanged.
	VideoStrategy *strategy.VideoStrategy

	// Drop tracks from the output
	RemoveAudio bool
	RemoveVideo bool

	// Decides whether the job runs at all. Nil means validator.Default.
	Validator validator.Validator

	// Start offset and maximum length, in microseconds. Zero means from the
	// beginning and to the end, respectively.
	SeekUs     int64
	DurationUs int64

	// Initial capacity of the sample buffer
	ChunkSize int

	// Called with the fraction of the input read so far, in [0, 1]
	OnProgress func(progress float64)
}

const defaultChunkSize = 1 << 20

func (o Options) validator() validator.Validator {
	if o.Validator == nil {
		return validator.Default
	}
	return o.Validator
}
