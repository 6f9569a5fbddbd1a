package minvideo

import "fmt"

const (
	// Number of bytes reserved on the wire for one dimension.
	SizeByteLength = 8
	// Largest width or height that fits in SizeByteLength bytes.
	MaxDimension = SizeByteLength * 255
	// Width and height parts precede the first frame.
	BytesBeforeFrames = SizeByteLength * 2
)

// Splits a dimension into SizeByteLength byte-sized parts that sum to it.
// The fewest possible parts are non-zero; the remainder of the division is
// spread one unit at a time over the leading parts and the rest is zero padding.
func SplitDimension(dimension int) ([SizeByteLength]byte, error) {
	var parts [SizeByteLength]byte
	if dimension < 0 || dimension > MaxDimension {
		return parts, fmt.Errorf("minvideo: dimension %d not in [0, %d]: %w", dimension, MaxDimension, ErrOutOfRange)
	}
	if dimension == 0 {
		return parts, nil
	}

	count := (dimension + 254) / 255
	for i := 0; i < count; i++ {
		parts[i] = byte(dimension / count)
	}
	for i := 0; i < dimension%count; i++ {
		parts[i]++
	}
	return parts, nil
}

// Sums the first SizeByteLength bytes of parts back into a dimension.
func JoinDimension(parts []byte) (int, error) {
	if len(parts) < SizeByteLength {
		return 0, fmt.Errorf("minvideo: dimension needs %d bytes, got %d: %w", SizeByteLength, len(parts), ErrCorruptData)
	}
	dimension := 0
	for _, part := range parts[:SizeByteLength] {
		dimension += int(part)
	}
	return dimension, nil
}
