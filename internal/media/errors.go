//////////////////////////////////////////////////////////////////////////////
//
// Media errors
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package media

import "errors"

var (
	ErrTrackNotFound = errors.New("media: no track of requested type")
	ErrUnknownTrack  = errors.New("media: sample belongs to an unknown track")
	ErrDrained       = errors.New("media: source drained")
	ErrNoVideoSample = errors.New("media: drained before reaching a video sample")

	errNotSupported = errors.New("media: not supported") // "can't do" items
)
