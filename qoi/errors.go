package qoi

import (
	"errors"
	"strconv"
)

var (
	ErrParseHeader    = errors.New("failed to parse QOI header")
	ErrParseEndMarker = errors.New("failed to parse QOI end marker")
	ErrTruncated      = errors.New("truncated QOI chunk")
	ErrPixelCount     = errors.New("pixel count does not match image dimensions")
	ErrInvalidImage   = errors.New("invalid QOI image")
)

// DecodeError reports the byte offset at which decoding became impossible.
type DecodeError struct {
	Offset int
	Err    error
}

func (err *DecodeError) Error() string {
	msg := "qoi: decode failed"
	if err.Err != nil {
		msg = "qoi: " + err.Err.Error()
	}
	return msg + " (at byte " + strconv.Itoa(err.Offset) + ")"
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}
