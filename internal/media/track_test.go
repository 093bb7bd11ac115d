package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackTypeMap(t *testing.T) {
	m := NewTrackTypeMap[int]()
	assert.False(t, m.HasAudio())
	assert.False(t, m.HasVideo())
	assert.Equal(t, 0, m.Get(Video))

	m.SetVideo(3)
	assert.True(t, m.HasVideo())
	assert.False(t, m.HasAudio())
	assert.Equal(t, 3, m.RequireVideo())
	assert.Panics(t, func() { m.RequireAudio() })

	m.SetAudio(0)
	assert.Equal(t, 0, m.RequireAudio())
}

func TestTrackTypeMapDefaults(t *testing.T) {
	m := NewTrackTypeMapWithDefaults[int64](-1, 7)
	assert.Equal(t, int64(-1), m.RequireAudio())
	assert.Equal(t, int64(7), m.RequireVideo())

	m.Set(Audio, 5)
	assert.Equal(t, int64(5), m.Get(Audio))
}

func TestTrackTypeMapInvalidType(t *testing.T) {
	m := NewTrackTypeMapWithDefaults("a", "v")
	assert.Panics(t, func() { m.Require(TrackType(2)) })
}

func TestTrackTypeString(t *testing.T) {
	assert.Equal(t, "audio", Audio.String())
	assert.Equal(t, "video", Video.String())
	assert.Equal(t, "TrackType(7)", TrackType(7).String())
}
