package media

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nareix/joy4/format/flv"
	"github.com/nareix/joy4/format/mp4"
	"github.com/nareix/joy4/format/ts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSource(t *testing.T) {
	src, err := OpenSource("file:/data/clip.mp4", DefaultConfig())
	require.NoError(t, err)
	require.IsType(t, &DefaultDataSource{}, src)
	assert.Equal(t, "file:/data/clip.mp4", src.(*DefaultDataSource).input.String())

	src, err = OpenSource("https://example.com/clip.mp4", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/clip.mp4", src.(*DefaultDataSource).input.String())
}

func TestOpenSourceErrors(t *testing.T) {
	for _, spec := range []string{"rtsp://camera", "clip.mp4", "file:", "http:example.com"} {
		_, err := OpenSource(spec, DefaultConfig())
		assert.Error(t, err, spec)
	}
}

func TestRegisterSourceType(t *testing.T) {
	called := ""
	RegisterSourceType("test", func(path string, cfg Config) (DataSource, error) {
		called = path
		return nil, nil
	})
	defer delete(registry, "test")

	_, err := OpenSource("test:a:b", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "a:b", called)
}

func TestDemuxerFor(t *testing.T) {
	r := bytes.NewReader(nil)
	assert.IsType(t, &mp4.Demuxer{}, demuxerFor("clip.mp4", r))
	assert.IsType(t, &mp4.Demuxer{}, demuxerFor("clip", r))
	assert.IsType(t, &ts.Demuxer{}, demuxerFor("/live/seg-001.TS", r))
	assert.IsType(t, &flv.Demuxer{}, demuxerFor("stream.flv", r))
}

func TestFileInputMissing(t *testing.T) {
	in := &FileInput{Path: filepath.Join(t.TempDir(), "missing.mp4")}
	_, err := in.OpenExtractor()
	assert.Error(t, err)
}

func TestFileInputEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp4")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	in := &FileInput{Path: path}
	_, err := in.OpenExtractor()
	assert.Error(t, err)
}
