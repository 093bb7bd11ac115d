package media

import (
	"image"
	"strconv"

	"github.com/golang/groupcache/lru"
	"github.com/pkg/errors"

	"github.com/lanikai/transcoder/internal/logging"
	"github.com/lanikai/transcoder/internal/probe"
)

var log = logging.DefaultLogger.WithTag("media")

// timestamp is a microsecond timestamp that may not have been observed yet.
type timestamp struct {
	us    int64
	valid bool
}

type frameKey struct {
	timeMs        int64
	width, height int
}

// DefaultDataSource is the DataSource for an Input. It opens the input's
// extractor and retriever lazily, on first use, and reopens them after Rewind.
type DefaultDataSource struct {
	input     Input
	extractor *lazyHandle[Extractor]
	retriever *lazyHandle[Retriever]

	formats  *TrackTypeMap[*Format] // Set once scanned; nil value means no such track
	index    *TrackTypeMap[int]
	selected map[TrackType]bool

	lastUs  *TrackTypeMap[int64]
	firstUs timestamp

	frameCacheSize int
	frames         *lru.Cache
}

var _ DataSource = (*DefaultDataSource)(nil)

func NewDefaultDataSource(input Input, cfg Config) *DefaultDataSource {
	s := &DefaultDataSource{
		input:          input,
		formats:        NewTrackTypeMap[*Format](),
		index:          NewTrackTypeMap[int](),
		selected:       make(map[TrackType]bool),
		lastUs:         NewTrackTypeMapWithDefaults[int64](0, 0),
		frameCacheSize: cfg.FrameCacheSize,
	}
	s.extractor = newLazyHandle(s.openExtractor)
	s.retriever = newLazyHandle(s.openRetriever)
	s.resetFrames()
	return s
}

func (s *DefaultDataSource) openExtractor() (Extractor, error) {
	x, err := s.input.OpenExtractor()
	if err != nil {
		log.Error("Could not open extractor for %v: %v", s.input, err)
		return nil, errors.Wrapf(err, "open %v", s.input)
	}
	// A handle reopened mid-lifetime must see the current selection.
	for t := range s.selected {
		x.SelectTrack(s.index.Require(t))
	}
	return x, nil
}

func (s *DefaultDataSource) openRetriever() (Retriever, error) {
	r, err := s.input.OpenRetriever()
	if err != nil {
		log.Warn("No metadata for %v: %v", s.input, err)
		return emptyRetriever{err: err}, nil
	}
	return r, nil
}

func (s *DefaultDataSource) metadata() Retriever {
	// openRetriever never fails.
	r, _ := s.retriever.get()
	return r
}

func (s *DefaultDataSource) resetFrames() {
	s.frames = nil
	if s.frameCacheSize > 0 {
		s.frames = lru.New(s.frameCacheSize)
	}
}

func (s *DefaultDataSource) SelectTrack(t TrackType) error {
	format, err := s.TrackFormat(t)
	if err != nil {
		return err
	}
	if format == nil {
		return errors.Wrapf(ErrTrackNotFound, "select %v", t)
	}
	if s.selected[t] {
		return nil
	}

	x, err := s.extractor.get()
	if err != nil {
		return err
	}
	x.SelectTrack(s.index.Require(t))
	s.selected[t] = true
	return nil
}

func (s *DefaultDataSource) ReleaseTrack(t TrackType) {
	if s.selected[t] {
		delete(s.selected, t)
		if s.extractor.isOpen() {
			x, _ := s.extractor.get()
			x.UnselectTrack(s.index.Require(t))
		}
	}
	if len(s.selected) == 0 {
		s.release()
	}
}

func (s *DefaultDataSource) TrackFormat(t TrackType) (*Format, error) {
	if s.formats.Has(t) {
		return s.formats.Get(t), nil
	}

	x, err := s.extractor.get()
	if err != nil {
		return nil, err
	}

	// First track of the requested type wins. Absence is cached as well.
	var found *Format
	for i, n := 0, x.TrackCount(); i < n; i++ {
		format := x.TrackFormat(i)
		if typ, ok := Classify(format.Mime); ok && typ == t {
			found = &format
			s.index.Set(t, i)
			break
		}
	}
	s.formats.Set(t, found)
	return found, nil
}

// CanReadTrack reports false for a type whose track was never resolved.
func (s *DefaultDataSource) CanReadTrack(t TrackType) (bool, error) {
	x, err := s.extractor.get()
	if err != nil {
		return false, err
	}
	if !s.index.Has(t) {
		return false, nil
	}
	return x.SampleTrackIndex() == s.index.Get(t), nil
}

func (s *DefaultDataSource) ReadTrack(chunk *Chunk) error {
	x, err := s.extractor.get()
	if err != nil {
		return err
	}

	index := x.SampleTrackIndex()
	data, ok := x.ReadSampleData(chunk.Buffer)
	if !ok {
		chunk.Bytes = -1
		chunk.TimestampUs = -1
		chunk.IsKeyFrame = false
		chunk.CompositionOffsetUs = 0
		if err := x.Err(); err != nil {
			return errors.Wrap(err, "read sample")
		}
		return ErrDrained
	}

	chunk.Buffer = data
	chunk.Bytes = len(data)
	chunk.IsKeyFrame = x.IsSyncSample()
	chunk.TimestampUs = x.SampleTime()
	chunk.CompositionOffsetUs = x.SampleCompositionOffset()

	t, ok := s.typeOf(index)
	if !ok {
		return errors.Wrapf(ErrUnknownTrack, "track index %d", index)
	}
	if !s.firstUs.valid {
		s.firstUs = timestamp{us: chunk.TimestampUs, valid: true}
		log.Debug("First sample of %v at %dus", s.input, chunk.TimestampUs)
	}
	s.lastUs.Set(t, chunk.TimestampUs)

	x.Advance()
	return nil
}

func (s *DefaultDataSource) typeOf(index int) (TrackType, bool) {
	for _, t := range TrackTypes {
		if s.index.Has(t) && s.index.Get(t) == index {
			return t, true
		}
	}
	return 0, false
}

func (s *DefaultDataSource) IsDrained() (bool, error) {
	x, err := s.extractor.get()
	if err != nil {
		return false, err
	}
	if x.SampleTrackIndex() >= 0 {
		return false, nil
	}
	if err := x.Err(); err != nil {
		return true, errors.Wrap(err, "read sample")
	}
	return true, nil
}

func (s *DefaultDataSource) SeekTo(desiredUs int64) (int64, error) {
	x, err := s.extractor.get()
	if err != nil {
		return 0, err
	}

	base := x.SampleTime()
	if s.firstUs.valid && s.firstUs.us > 0 {
		base = s.firstUs.us
	}
	hasVideo, hasAudio := s.selected[Video], s.selected[Audio]
	target := base + desiredUs
	log.Info("Seeking to %dms, first: %dms, video: %v, audio: %v", target/1000, base/1000, hasVideo, hasAudio)

	if err := x.SeekTo(target); err != nil {
		return 0, errors.Wrapf(err, "seek to %dus", target)
	}

	if hasVideo && hasAudio {
		// Audio can resume anywhere, but video only at a sync sample, and the
		// extractor positions each track independently. Walk to the next video
		// sample, then seek again so that audio is re-anchored to it.
		video := s.index.RequireVideo()
		for x.SampleTrackIndex() != video {
			if !x.Advance() {
				if err := x.Err(); err != nil {
					return 0, errors.Wrapf(err, "seek to %dus", target)
				}
				return 0, errors.Wrapf(ErrNoVideoSample, "seek to %dus", target)
			}
		}
		sync := x.SampleTime()
		log.Info("Second seek to %dms", sync/1000)
		if err := x.SeekTo(sync); err != nil {
			return 0, errors.Wrapf(err, "seek to %dus", sync)
		}
	}

	return x.SampleTime() - base, nil
}

func (s *DefaultDataSource) ReadUs() int64 {
	if !s.firstUs.valid {
		return 0
	}
	// Report the track that is furthest ahead, so that progress never goes
	// backwards when the other track catches up.
	last := s.lastUs.RequireAudio()
	if v := s.lastUs.RequireVideo(); v > last {
		last = v
	}
	return last - s.firstUs.us
}

func (s *DefaultDataSource) Location() *Location {
	v := s.metadata().Extract(probe.KeyLocation)
	if v == "" {
		return nil
	}
	return ParseISO6709(v)
}

func (s *DefaultDataSource) Orientation() int {
	n, err := strconv.Atoi(s.metadata().Extract(probe.KeyVideoRotation))
	if err != nil {
		return UnknownOrientation
	}
	return n
}

func (s *DefaultDataSource) DurationUs() int64 {
	ms, err := strconv.ParseInt(s.metadata().Extract(probe.KeyDuration), 10, 64)
	if err != nil {
		return UnknownDuration
	}
	return ms * 1000
}

// MetaDataInfo parses each field independently; a malformed field keeps its
// sentinel and does not affect the others.
func (s *DefaultDataSource) MetaDataInfo() MetaDataInfo {
	r := s.metadata()
	info := MetaDataInfo{
		Duration:  s.DurationUs(),
		Rotation:  s.Orientation(),
		FrameRate: UnknownFrameRate,
		MimeType:  r.Extract(probe.KeyMimeType),
		Date:      r.Extract(probe.KeyDate),
	}

	parseInt := func(key probe.Key, dst *int) {
		v := r.Extract(key)
		n, err := strconv.Atoi(v)
		if err != nil {
			if v != "" {
				log.Warn("Malformed %v metadata %q for %v", key, v, s.input)
			}
			return
		}
		*dst = n
	}
	parseInt(probe.KeyVideoWidth, &info.Width)
	parseInt(probe.KeyVideoHeight, &info.Height)
	parseInt(probe.KeyBitrate, &info.BitRate)

	if v := r.Extract(probe.KeyCaptureFrameRate); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			info.FrameRate = float32(f)
		} else {
			log.Warn("Malformed %v metadata %q for %v", probe.KeyCaptureFrameRate, v, s.input)
		}
	}
	return info
}

// FrameAtTime returns the frame nearest to timeMs, scaled to fit width x height
// when both are positive.
func (s *DefaultDataSource) FrameAtTime(timeMs int64, width, height int) (image.Image, error) {
	if width < 1 || height < 1 {
		width, height = 0, 0
	}
	key := frameKey{timeMs, width, height}
	if s.frames != nil {
		if img, ok := s.frames.Get(key); ok {
			return img.(image.Image), nil
		}
	}

	img, err := s.metadata().FrameAtTime(timeMs*1000, width, height)
	if err != nil {
		log.Warn("No frame at %dms for %v: %v", timeMs, s.input, err)
		return nil, err
	}
	if s.frames != nil {
		s.frames.Add(key, img)
	}
	return img, nil
}

func (s *DefaultDataSource) Rewind() {
	s.selected = make(map[TrackType]bool)
	s.firstUs = timestamp{}
	s.lastUs.SetAudio(0)
	s.lastUs.SetVideo(0)

	// Both handles are reopened on next use. The retriever is reopened too, as
	// some inputs cannot be read again once their extractor has consumed them.
	if err := s.extractor.release(); err != nil {
		log.Debug("Ignoring extractor release error on rewind: %v", err)
	}
	if err := s.retriever.release(); err != nil {
		log.Debug("Ignoring retriever release error on rewind: %v", err)
	}
	s.resetFrames()
}

func (s *DefaultDataSource) Close() error {
	return s.release()
}

// release attempts to release both handles, logging failures.
func (s *DefaultDataSource) release() error {
	var first error
	if err := s.extractor.release(); err != nil {
		log.Warn("Could not release extractor: %v", err)
		first = err
	}
	if err := s.retriever.release(); err != nil {
		log.Warn("Could not release retriever: %v", err)
		if first == nil {
			first = err
		}
	}
	s.resetFrames()
	return first
}
