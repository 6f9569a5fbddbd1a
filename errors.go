package minvideo

import "errors"

var (
	// A dimension or pixel coordinate is outside the allowed range.
	ErrOutOfRange = errors.New("minvideo: out of range")
	// A frame does not share the width and height of the video it is added to.
	ErrDimensionMismatch = errors.New("minvideo: frame dimensions do not match video")
	// Encoded data is not a whole number of frames, or the frames have no area.
	ErrInvalidLength = errors.New("minvideo: invalid data length")
	// Encoded data ends before a region that must be read.
	ErrCorruptData = errors.New("minvideo: corrupt data")
)
