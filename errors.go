package transcoder

import "errors"

var (
	ErrAborted = errors.New("Validator rejected the job")

	errNotSupported = errors.New("Not supported") // "can't do" items
	errStalled      = errors.New("No selected track can be read")
)
