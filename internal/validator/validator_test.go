package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var statuses = []TrackStatus{Absent, Removing, PassThrough, Compressing}

func TestDefault(t *testing.T) {
	for _, video := range statuses {
		for _, audio := range statuses {
			want := video == Compressing || audio == Compressing ||
				video == Removing || audio == Removing
			assert.Equal(t, want, Default.Validate(video, audio), "video %v, audio %v", video, audio)
		}
	}

	assert.False(t, Default.Validate(PassThrough, PassThrough))
	assert.False(t, Default.Validate(Absent, Absent))
	assert.False(t, Default.Validate(PassThrough, Absent))
	assert.True(t, Default.Validate(PassThrough, Removing))
	assert.True(t, Default.Validate(Absent, Compressing))
}

func TestWriteAlways(t *testing.T) {
	assert.True(t, WriteAlways.Validate(PassThrough, PassThrough))
	assert.True(t, WriteAlways.Validate(Absent, Compressing))
	assert.False(t, WriteAlways.Validate(Removing, Absent))
	assert.False(t, WriteAlways.Validate(Absent, Absent))
}

func TestWriteVideo(t *testing.T) {
	assert.True(t, WriteVideo.Validate(PassThrough, Absent))
	assert.True(t, WriteVideo.Validate(Compressing, Removing))
	assert.False(t, WriteVideo.Validate(Removing, Compressing))
	assert.False(t, WriteVideo.Validate(Absent, PassThrough))
}

func TestTrackStatus(t *testing.T) {
	assert.True(t, Compressing.IsTranscoding())
	assert.True(t, PassThrough.IsTranscoding())
	assert.False(t, Removing.IsTranscoding())
	assert.False(t, Absent.IsTranscoding())
	assert.Equal(t, "pass-through", PassThrough.String())
	assert.Equal(t, "TrackStatus(9)", TrackStatus(9).String())
}
