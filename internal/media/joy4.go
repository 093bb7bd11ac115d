package media

import (
	"io"
	"time"

	"github.com/nareix/joy4/av"
	"github.com/pkg/errors"
)

// Demuxers that can reposition themselves, like joy4's mp4.Demuxer.
type timeSeeker interface {
	SeekToTime(time.Duration) error
}

// joyExtractor adapts a joy4 demuxer to the Extractor cursor model. The
// demuxer delivers packets of all streams interleaved in container order; the
// cursor is the next packet belonging to a selected stream.
type joyExtractor struct {
	demuxer av.Demuxer
	closer  io.Closer
	streams []av.CodecData

	selected []bool
	cur      *av.Packet // nil when the cursor needs to be settled
	eof      bool
	err      error

	released bool
}

var _ Extractor = (*joyExtractor)(nil)

// newJoyExtractor reads the stream headers of demuxer. closer, if not nil, is
// closed on Release, or right away if the headers cannot be read.
func newJoyExtractor(demuxer av.Demuxer, closer io.Closer) (*joyExtractor, error) {
	streams, err := demuxer.Streams()
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, errors.Wrap(err, "read stream headers")
	}
	for i, codec := range streams {
		log.Debug("Stream %d: %v", i, codec.Type())
	}
	return &joyExtractor{
		demuxer:  demuxer,
		closer:   closer,
		streams:  streams,
		selected: make([]bool, len(streams)),
	}, nil
}

func (x *joyExtractor) TrackCount() int {
	return len(x.streams)
}

func (x *joyExtractor) TrackFormat(index int) Format {
	return formatOf(x.streams[index])
}

func (x *joyExtractor) SelectTrack(index int) {
	x.selected[index] = true
}

func (x *joyExtractor) UnselectTrack(index int) {
	x.selected[index] = false
	if x.cur != nil && int(x.cur.Idx) == index {
		x.cur = nil
	}
}

func (x *joyExtractor) anySelected() bool {
	for _, sel := range x.selected {
		if sel {
			return true
		}
	}
	return false
}

// settle reads packets until the cursor rests on a selected sample or the
// input is exhausted.
func (x *joyExtractor) settle() {
	if x.cur != nil || x.eof || x.released || !x.anySelected() {
		return
	}
	for {
		pkt, err := x.demuxer.ReadPacket()
		if err != nil {
			x.eof = true
			if err != io.EOF {
				log.Error("Error reading packet: %v", err)
				x.err = err
			}
			return
		}
		idx := int(pkt.Idx)
		if idx >= 0 && idx < len(x.selected) && x.selected[idx] {
			x.cur = &pkt
			return
		}
	}
}

func (x *joyExtractor) SampleTrackIndex() int {
	x.settle()
	if x.cur == nil {
		return -1
	}
	return int(x.cur.Idx)
}

func (x *joyExtractor) SampleTime() int64 {
	x.settle()
	if x.cur == nil {
		return -1
	}
	return int64(x.cur.Time / time.Microsecond)
}

func (x *joyExtractor) SampleCompositionOffset() int64 {
	x.settle()
	if x.cur == nil {
		return 0
	}
	return int64(x.cur.CompositionTime / time.Microsecond)
}

func (x *joyExtractor) IsSyncSample() bool {
	x.settle()
	return x.cur != nil && x.cur.IsKeyFrame
}

func (x *joyExtractor) ReadSampleData(buf []byte) ([]byte, bool) {
	x.settle()
	if x.cur == nil {
		return buf[:0], false
	}
	return append(buf[:0], x.cur.Data...), true
}

func (x *joyExtractor) Advance() bool {
	x.settle()
	x.cur = nil
	x.settle()
	return x.cur != nil
}

func (x *joyExtractor) SeekTo(timeUs int64) error {
	seeker, ok := x.demuxer.(timeSeeker)
	if !ok {
		return errNotSupported
	}
	if timeUs < 0 {
		timeUs = 0
	}
	if err := seeker.SeekToTime(time.Duration(timeUs) * time.Microsecond); err != nil {
		return err
	}
	x.cur = nil
	x.eof = false
	x.err = nil
	return nil
}

func (x *joyExtractor) Err() error {
	return x.err
}

func (x *joyExtractor) Release() error {
	if x.released {
		return nil
	}
	x.released = true
	x.cur = nil
	if x.closer != nil {
		return x.closer.Close()
	}
	return nil
}
