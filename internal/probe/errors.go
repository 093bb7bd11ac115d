package probe

import errors "golang.org/x/xerrors"

var (
	ErrReleased = errors.New("probe: retriever released")
	ErrNoFrame  = errors.New("probe: no frame at requested time")
)
