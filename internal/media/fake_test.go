package media

import (
	"image"

	"github.com/pkg/errors"

	"github.com/lanikai/transcoder/internal/probe"
)

type fakeSample struct {
	track    int
	timeUs   int64
	sync     bool
	data     []byte
	offsetUs int64
}

// fakeExtractor walks a fixed list of samples in container order. SeekTo starts
// each selected track at its last sync sample at or before the target; a track
// without one has nothing left to read.
type fakeExtractor struct {
	formats []Format
	samples []fakeSample

	selected map[int]bool
	start    map[int]int
	pos      int
	advanced bool
	err      error

	scans      int
	seeks      []int64
	released   int
	releaseErr error
}

func newFakeExtractor(formats []Format, samples []fakeSample) *fakeExtractor {
	return &fakeExtractor{
		formats:  formats,
		samples:  samples,
		selected: make(map[int]bool),
		start:    make(map[int]int),
		pos:      -1,
	}
}

func (x *fakeExtractor) TrackCount() int {
	x.scans++
	return len(x.formats)
}

func (x *fakeExtractor) TrackFormat(index int) Format { return x.formats[index] }

func (x *fakeExtractor) SelectTrack(index int) {
	x.selected[index] = true
	if !x.advanced {
		x.pos = x.next(0)
	}
}

func (x *fakeExtractor) UnselectTrack(index int) {
	delete(x.selected, index)
	if x.pos >= 0 && x.pos < len(x.samples) && x.samples[x.pos].track == index {
		x.pos = x.next(x.pos + 1)
	}
}

func (x *fakeExtractor) next(from int) int {
	for i := from; i < len(x.samples); i++ {
		s := x.samples[i]
		if x.selected[s.track] && i >= x.start[s.track] {
			return i
		}
	}
	return len(x.samples)
}

func (x *fakeExtractor) current() (fakeSample, bool) {
	if x.pos < 0 || x.pos >= len(x.samples) {
		return fakeSample{}, false
	}
	return x.samples[x.pos], true
}

func (x *fakeExtractor) SampleTrackIndex() int {
	if s, ok := x.current(); ok {
		return s.track
	}
	return -1
}

func (x *fakeExtractor) SampleTime() int64 {
	if s, ok := x.current(); ok {
		return s.timeUs
	}
	return -1
}

func (x *fakeExtractor) SampleCompositionOffset() int64 {
	s, _ := x.current()
	return s.offsetUs
}

func (x *fakeExtractor) IsSyncSample() bool {
	s, ok := x.current()
	return ok && s.sync
}

func (x *fakeExtractor) ReadSampleData(buf []byte) ([]byte, bool) {
	s, ok := x.current()
	if !ok {
		return buf[:0], false
	}
	return append(buf[:0], s.data...), true
}

func (x *fakeExtractor) Advance() bool {
	if _, ok := x.current(); !ok {
		return false
	}
	x.advanced = true
	x.pos = x.next(x.pos + 1)
	_, ok := x.current()
	return ok
}

func (x *fakeExtractor) SeekTo(timeUs int64) error {
	x.seeks = append(x.seeks, timeUs)
	for track := range x.selected {
		x.start[track] = len(x.samples)
		for i, s := range x.samples {
			if s.track == track && s.sync && s.timeUs <= timeUs {
				x.start[track] = i
			}
		}
	}
	x.pos = x.next(0)
	return nil
}

func (x *fakeExtractor) Err() error { return x.err }

func (x *fakeExtractor) Release() error {
	x.released++
	return x.releaseErr
}

type fakeRetriever struct {
	values   map[probe.Key]string
	frameErr error

	frames   int
	released int
}

func (r *fakeRetriever) Extract(key probe.Key) string { return r.values[key] }

func (r *fakeRetriever) FrameAtTime(timeUs int64, width, height int) (image.Image, error) {
	r.frames++
	if r.frameErr != nil {
		return nil, r.frameErr
	}
	if width < 1 || height < 1 {
		width, height = 640, 360
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func (r *fakeRetriever) Release() error {
	r.released++
	return nil
}

// fakeInput hands out a new extractor from newExtractor on every open, and
// the same retriever every time.
type fakeInput struct {
	newExtractor func() *fakeExtractor
	retriever    *fakeRetriever
	retrieverErr error

	extractors []*fakeExtractor
	retrievers int
}

func (in *fakeInput) OpenExtractor() (Extractor, error) {
	if in.newExtractor == nil {
		return nil, errors.New("no such file")
	}
	x := in.newExtractor()
	in.extractors = append(in.extractors, x)
	return x, nil
}

func (in *fakeInput) OpenRetriever() (Retriever, error) {
	in.retrievers++
	if in.retrieverErr != nil {
		return nil, in.retrieverErr
	}
	return in.retriever, nil
}

func (in *fakeInput) String() string { return "fake:" }

// extractor returns the most recently opened extractor.
func (in *fakeInput) extractor() *fakeExtractor {
	return in.extractors[len(in.extractors)-1]
}

var (
	videoFormat = Format{Mime: "video/avc", Codec: "H264", Width: 1280, Height: 720}
	audioFormat = Format{Mime: "audio/mp4a-latm", Codec: "AAC", SampleRate: 44100, Channels: 2}
)

// videoSamples returns n video samples on track, frameUs apart from startUs,
// with a sync sample every gop samples.
func videoSamples(track, n int, startUs, frameUs int64, gop int) []fakeSample {
	var samples []fakeSample
	for i := 0; i < n; i++ {
		samples = append(samples, fakeSample{
			track:  track,
			timeUs: startUs + int64(i)*frameUs,
			sync:   i%gop == 0,
			data:   []byte{byte(track), byte(i)},
		})
	}
	return samples
}

// interleave merges per-track sample lists by timestamp, as a muxer would.
func interleave(tracks ...[]fakeSample) []fakeSample {
	var out []fakeSample
	idx := make([]int, len(tracks))
	for {
		best := -1
		for t, samples := range tracks {
			if idx[t] >= len(samples) {
				continue
			}
			if best < 0 || samples[idx[t]].timeUs < tracks[best][idx[best]].timeUs {
				best = t
			}
		}
		if best < 0 {
			return out
		}
		out = append(out, tracks[best][idx[best]])
		idx[best]++
	}
}
