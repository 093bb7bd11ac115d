package media

import (
	"image"

	"github.com/lanikai/transcoder/internal/probe"
)

// A Retriever is the platform metadata reader behind a DefaultDataSource.
// *probe.Retriever is the production implementation.
type Retriever interface {
	// Extract returns the raw metadata value for key, or "" if absent.
	Extract(key probe.Key) string

	// FrameAtTime returns the frame at the sync point nearest to timeUs,
	// scaled to fit width x height when both are positive.
	FrameAtTime(timeUs int64, width, height int) (image.Image, error)

	// Release frees the retriever. Safe to call more than once.
	Release() error
}

var _ Retriever = (*probe.Retriever)(nil)

// emptyRetriever stands in for a retriever that could not be opened, so that
// metadata queries degrade to their sentinels.
type emptyRetriever struct {
	err error
}

func (r emptyRetriever) Extract(probe.Key) string { return "" }

func (r emptyRetriever) FrameAtTime(int64, int, int) (image.Image, error) {
	return nil, r.err
}

func (r emptyRetriever) Release() error { return nil }
