package transcoder

import (
	"io"
	"os"
	"time"

	"github.com/nareix/joy4/av"
	"github.com/nareix/joy4/format/mp4"
	"github.com/pkg/errors"

	"github.com/lanikai/transcoder/internal/media"
	"github.com/lanikai/transcoder/internal/validator"
)

// MuxerSink writes pass-through tracks to a joy4 muxer. It cannot encode, so
// compressed tracks are rejected.
type MuxerSink struct {
	muxer  av.Muxer
	closer io.Closer

	index  media.TrackTypeMap[int]
	codecs []av.CodecData

	headerWritten bool
	closed        bool
}

// NewMuxerSink returns a sink writing to muxer. closer, if not nil, is closed
// after the trailer is written.
func NewMuxerSink(muxer av.Muxer, closer io.Closer) *MuxerSink {
	return &MuxerSink{muxer: muxer, closer: closer}
}

// NewMP4Sink returns a sink writing an MP4 file to w.
func NewMP4Sink(w io.WriteSeeker) *MuxerSink {
	var closer io.Closer
	if c, ok := w.(io.Closer); ok {
		closer = c
	}
	return NewMuxerSink(mp4.NewMuxer(w), closer)
}

// CreateMP4Sink creates the file at path and returns a sink writing to it.
func CreateMP4Sink(path string) (*MuxerSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewMP4Sink(f), nil
}

func (s *MuxerSink) AddTrack(t media.TrackType, format *media.Format, status validator.TrackStatus) error {
	if status != validator.PassThrough {
		return errors.Wrapf(errNotSupported, "%v %v", status, t)
	}
	if s.headerWritten {
		return errors.Errorf("%v track added after the first sample", t)
	}
	if format == nil || format.CodecData == nil {
		return errors.Errorf("%v track has no codec parameters", t)
	}
	if s.index.Has(t) {
		return errors.Errorf("%v track added twice", t)
	}
	s.index.Set(t, len(s.codecs))
	s.codecs = append(s.codecs, format.CodecData)
	return nil
}

func (s *MuxerSink) writeHeader() error {
	if s.headerWritten {
		return nil
	}
	if err := s.muxer.WriteHeader(s.codecs); err != nil {
		return errors.Wrap(err, "write header")
	}
	s.headerWritten = true
	return nil
}

func (s *MuxerSink) WriteSample(t media.TrackType, chunk *media.Chunk) error {
	if !s.index.Has(t) {
		return errors.Errorf("no %v track", t)
	}
	if err := s.writeHeader(); err != nil {
		return err
	}
	// Muxers may hold on to a packet until the next one arrives, while the
	// chunk buffer is reused by the next read.
	return s.muxer.WritePacket(av.Packet{
		Idx:             int8(s.index.Get(t)),
		IsKeyFrame:      chunk.IsKeyFrame,
		Time:            time.Duration(chunk.TimestampUs) * time.Microsecond,
		CompositionTime: time.Duration(chunk.CompositionOffsetUs) * time.Microsecond,
		Data:            append([]byte(nil), chunk.Data()...),
	})
}

// Close writes the trailer. A sink without tracks writes nothing.
func (s *MuxerSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if len(s.codecs) > 0 {
		if err = s.writeHeader(); err == nil {
			err = s.muxer.WriteTrailer()
		}
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
