package transcoder

import (
	"image"

	"github.com/nareix/joy4/av"

	"github.com/lanikai/transcoder/internal/media"
	"github.com/lanikai/transcoder/internal/validator"
)

type sample struct {
	t    media.TrackType
	us   int64
	sync bool
}

// fakeSource serves samples in order, skipping unselected tracks.
type fakeSource struct {
	formats    map[media.TrackType]*media.Format
	samples    []sample
	durationUs int64

	pos      int
	selected map[media.TrackType]bool
	released []media.TrackType
	seeks    []int64
	firstUs  int64
	lastUs   int64
	read     bool
}

func newFakeSource(formats map[media.TrackType]*media.Format, samples []sample) *fakeSource {
	return &fakeSource{formats: formats, samples: samples, selected: map[media.TrackType]bool{}}
}

func (s *fakeSource) settle() {
	for s.pos < len(s.samples) && !s.selected[s.samples[s.pos].t] {
		s.pos++
	}
}

func (s *fakeSource) SelectTrack(t media.TrackType) error {
	if s.formats[t] == nil {
		return media.ErrTrackNotFound
	}
	s.selected[t] = true
	return nil
}

func (s *fakeSource) ReleaseTrack(t media.TrackType) {
	delete(s.selected, t)
	s.released = append(s.released, t)
}

func (s *fakeSource) TrackFormat(t media.TrackType) (*media.Format, error) {
	return s.formats[t], nil
}

func (s *fakeSource) CanReadTrack(t media.TrackType) (bool, error) {
	s.settle()
	return s.pos < len(s.samples) && s.samples[s.pos].t == t, nil
}

func (s *fakeSource) ReadTrack(chunk *media.Chunk) error {
	s.settle()
	if s.pos >= len(s.samples) {
		chunk.Bytes = -1
		return media.ErrDrained
	}
	smp := s.samples[s.pos]
	chunk.Buffer = append(chunk.Buffer[:0], byte(smp.t))
	chunk.Bytes = 1
	chunk.TimestampUs = smp.us
	chunk.IsKeyFrame = smp.sync
	if !s.read {
		s.firstUs = smp.us
		s.read = true
	}
	if smp.us > s.lastUs {
		s.lastUs = smp.us
	}
	s.pos++
	return nil
}

func (s *fakeSource) IsDrained() (bool, error) {
	s.settle()
	return s.pos >= len(s.samples), nil
}

// SeekTo jumps to the first sample at or after desiredUs.
func (s *fakeSource) SeekTo(desiredUs int64) (int64, error) {
	s.seeks = append(s.seeks, desiredUs)
	s.pos = len(s.samples)
	for i, smp := range s.samples {
		if smp.us >= desiredUs {
			s.pos = i
			return smp.us, nil
		}
	}
	return desiredUs, nil
}

func (s *fakeSource) ReadUs() int64 {
	if !s.read {
		return 0
	}
	return s.lastUs - s.firstUs
}

func (s *fakeSource) Location() *media.Location        { return nil }
func (s *fakeSource) Orientation() int                 { return 0 }
func (s *fakeSource) DurationUs() int64                { return s.durationUs }
func (s *fakeSource) MetaDataInfo() media.MetaDataInfo { return media.MetaDataInfo{} }
func (s *fakeSource) Rewind()                          {}
func (s *fakeSource) Close() error                     { return nil }

func (s *fakeSource) FrameAtTime(int64, int, int) (image.Image, error) {
	return nil, nil
}

type written struct {
	t  media.TrackType
	us int64
}

type recordingSink struct {
	tracks  map[media.TrackType]validator.TrackStatus
	samples []written
	closed  int
	addErr  error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{tracks: map[media.TrackType]validator.TrackStatus{}}
}

func (s *recordingSink) AddTrack(t media.TrackType, format *media.Format, status validator.TrackStatus) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.tracks[t] = status
	return nil
}

func (s *recordingSink) WriteSample(t media.TrackType, chunk *media.Chunk) error {
	s.samples = append(s.samples, written{t, chunk.TimestampUs})
	return nil
}

func (s *recordingSink) Close() error {
	s.closed++
	return nil
}

type fakeCodec struct {
	typ av.CodecType
}

func (c fakeCodec) Type() av.CodecType { return c.typ }

type fakeMuxer struct {
	header   []av.CodecData
	headers  int
	packets  []av.Packet
	trailers int
}

func (m *fakeMuxer) WriteHeader(codecs []av.CodecData) error {
	m.headers++
	m.header = codecs
	return nil
}

func (m *fakeMuxer) WritePacket(pkt av.Packet) error {
	m.packets = append(m.packets, pkt)
	return nil
}

func (m *fakeMuxer) WriteTrailer() error {
	m.trailers++
	return nil
}

var (
	testVideo = &media.Format{Mime: "video/avc", Width: 1280, Height: 720, CodecData: fakeCodec{av.H264}}
	testAudio = &media.Format{Mime: "audio/mp4a-latm", SampleRate: 44100, CodecData: fakeCodec{av.AAC}}
)

// testSamples interleaves video every 40ms, with a sync sample every 5, and
// audio every 20ms, over one second.
func testSamples() []sample {
	var out []sample
	for us := int64(0); us < 1000000; us += 20000 {
		if us%40000 == 0 {
			out = append(out, sample{t: media.Video, us: us, sync: us%200000 == 0})
		}
		out = append(out, sample{t: media.Audio, us: us, sync: true})
	}
	return out
}

func avSource() *fakeSource {
	s := newFakeSource(map[media.TrackType]*media.Format{
		media.Video: testVideo,
		media.Audio: testAudio,
	}, testSamples())
	s.durationUs = 1000000
	return s
}
