package media

import "fmt"

// TrackType is the kind of media carried by a track.
type TrackType int

const (
	Audio TrackType = iota
	Video
)

// TrackTypes lists every TrackType, in ordinal order.
var TrackTypes = [...]TrackType{Audio, Video}

func (t TrackType) String() string {
	switch t {
	case Audio:
		return "audio"
	case Video:
		return "video"
	default:
		return fmt.Sprintf("TrackType(%d)", int(t))
	}
}

func (t TrackType) valid() bool {
	return t == Audio || t == Video
}

/*
A TrackTypeMap holds at most one value per TrackType. Slots are either set or
unset; a slot with a default value behaves as if it was set to that default.

The Require accessors panic when the slot is unset, for call sites where an
unset slot can only mean a programming (or container) error:

	index := NewTrackTypeMap[int]()
	index.Set(Video, 0)
	index.RequireVideo() // 0
	index.RequireAudio() // panics
*/
type TrackTypeMap[V any] struct {
	values [len(TrackTypes)]V
	set    [len(TrackTypes)]bool
}

// NewTrackTypeMap returns a map with every slot unset.
func NewTrackTypeMap[V any]() *TrackTypeMap[V] {
	return &TrackTypeMap[V]{}
}

// NewTrackTypeMapWithDefaults returns a map whose slots start out holding the
// given audio and video values.
func NewTrackTypeMapWithDefaults[V any](audio, video V) *TrackTypeMap[V] {
	m := &TrackTypeMap[V]{}
	m.Set(Audio, audio)
	m.Set(Video, video)
	return m
}

func (m *TrackTypeMap[V]) Set(t TrackType, v V) {
	m.values[t] = v
	m.set[t] = true
}

func (m *TrackTypeMap[V]) SetAudio(v V) { m.Set(Audio, v) }
func (m *TrackTypeMap[V]) SetVideo(v V) { m.Set(Video, v) }

// Get returns the value for t, or the zero value if t is unset.
func (m *TrackTypeMap[V]) Get(t TrackType) V {
	return m.values[t]
}

func (m *TrackTypeMap[V]) Has(t TrackType) bool {
	return m.set[t]
}

func (m *TrackTypeMap[V]) HasAudio() bool { return m.Has(Audio) }
func (m *TrackTypeMap[V]) HasVideo() bool { return m.Has(Video) }

// Require returns the value for t, and panics if t is unset.
func (m *TrackTypeMap[V]) Require(t TrackType) V {
	if !t.valid() {
		log.Panicf("TrackTypeMap: invalid track type %v", t)
	}
	if !m.set[t] {
		log.Panicf("TrackTypeMap: no value for %v", t)
	}
	return m.values[t]
}

func (m *TrackTypeMap[V]) RequireAudio() V { return m.Require(Audio) }
func (m *TrackTypeMap[V]) RequireVideo() V { return m.Require(Video) }
