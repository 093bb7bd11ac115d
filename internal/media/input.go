package media

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jeffallen/seekinghttp"
	"github.com/nareix/joy4/av"
	"github.com/nareix/joy4/format/flv"
	"github.com/nareix/joy4/format/mp4"
	"github.com/nareix/joy4/format/ts"
	"github.com/pkg/errors"

	"github.com/lanikai/transcoder/internal/probe"
)

// An Input opens the platform handles of one media file. Each call returns a
// fresh handle positioned at the start of the input.
type Input interface {
	OpenExtractor() (Extractor, error)
	OpenRetriever() (Retriever, error)
	String() string
}

// demuxerFor picks a joy4 demuxer by file extension. MP4 is the default, as it
// is the only container that supports seeking.
func demuxerFor(name string, r io.ReadSeeker) av.Demuxer {
	switch strings.ToLower(path.Ext(name)) {
	case ".ts", ".m2ts", ".mts":
		return ts.NewDemuxer(r)
	case ".flv":
		return flv.NewDemuxer(r)
	default:
		return mp4.NewDemuxer(r)
	}
}

// FileInput reads a local file.
type FileInput struct {
	Path  string
	Probe probe.Config
}

func (in *FileInput) OpenExtractor() (Extractor, error) {
	log.Info("Opening file %s", in.Path)
	file, err := os.Open(in.Path)
	if err != nil {
		return nil, err
	}
	x, err := newJoyExtractor(demuxerFor(in.Path, file), file)
	if err != nil {
		return nil, errors.Wrap(err, in.Path)
	}
	return x, nil
}

func (in *FileInput) OpenRetriever() (Retriever, error) {
	r, err := probe.Open(context.Background(), in.Path, in.Probe)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (in *FileInput) String() string {
	return "file:" + in.Path
}

// HTTPInput reads a remote file with HTTP range requests.
type HTTPInput struct {
	URL   string
	Probe probe.Config

	// Client overrides http.DefaultClient.
	Client *http.Client
}

func (in *HTTPInput) OpenExtractor() (Extractor, error) {
	log.Info("Opening %s", in.URL)
	u, err := url.Parse(in.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse url")
	}

	r := seekinghttp.New(in.URL)
	if in.Client != nil {
		r.Client = in.Client
	}
	size, err := r.Size()
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", in.URL)
	}
	if size == 0 {
		return nil, errors.Errorf("%s is empty", in.URL)
	}

	var rs io.ReadSeeker = r
	closer, _ := rs.(io.Closer)
	x, err := newJoyExtractor(demuxerFor(u.Path, rs), closer)
	if err != nil {
		return nil, errors.Wrap(err, in.URL)
	}
	return x, nil
}

func (in *HTTPInput) OpenRetriever() (Retriever, error) {
	r, err := probe.Open(context.Background(), in.URL, in.Probe)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (in *HTTPInput) String() string {
	return in.URL
}
