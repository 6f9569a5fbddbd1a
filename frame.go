package minvideo

import (
	"fmt"
	"iter"
)

// Channels stored per pixel.
const Depth = 3

// An RGB color. The zero value is black.
type Color struct {
	R, G, B uint8
}

var Black = Color{}

type Frame struct {
	width  int     // Width of the frame.
	height int     // Height of the frame.
	pixels []Color // Row-major pixel grid, width*height long.
}

// Creates a black frame. Both dimensions must be in [0, MaxDimension].
func NewFrame(width, height int) (*Frame, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}, nil
}

func (frame *Frame) Width() int {
	return frame.width
}

func (frame *Frame) Height() int {
	return frame.height
}

// Returns the color at (x, y). Coordinates outside the frame read as black.
func (frame *Frame) ColorAt(x, y int) Color {
	if !frame.contains(x, y) {
		return Black
	}
	return frame.pixels[Index(x, y, frame.width)]
}

// Sets the color at (x, y). Unlike ColorAt, writes outside the frame fail.
func (frame *Frame) SetColor(x, y int, color Color) error {
	if !frame.contains(x, y) {
		return fmt.Errorf("minvideo: pixel (%d, %d) outside %dx%d frame: %w", x, y, frame.width, frame.height, ErrOutOfRange)
	}
	frame.pixels[Index(x, y, frame.width)] = color
	return nil
}

// Yields the frame's channel bytes row-major, three per pixel, in the
// blue, green, red order used on the wire.
func (frame *Frame) Samples() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, color := range frame.pixels {
			if !yield(color.B) || !yield(color.G) || !yield(color.R) {
				return
			}
		}
	}
}

// Appends the same bytes Samples yields to dst.
func (frame *Frame) AppendSamples(dst []byte) []byte {
	for _, color := range frame.pixels {
		dst = append(dst, color.B, color.G, color.R)
	}
	return dst
}

func (frame *Frame) Clone() *Frame {
	pixels := make([]Color, len(frame.pixels))
	copy(pixels, frame.pixels)
	return &Frame{width: frame.width, height: frame.height, pixels: pixels}
}

func (frame *Frame) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < frame.width && y < frame.height
}

// Linear offset of (x, y) in a row-major grid with origin at the top left.
func Index(x, y, width int) int {
	return y*width + x
}

// Inverse of Index for a grid of the given size.
func Coords(index, width, height int) (int, int) {
	x := index % width
	y := (index / width) % height
	return x, y
}

func checkDimensions(width, height int) error {
	if width < 0 || width > MaxDimension {
		return fmt.Errorf("minvideo: width %d not in [0, %d]: %w", width, MaxDimension, ErrOutOfRange)
	}
	if height < 0 || height > MaxDimension {
		return fmt.Errorf("minvideo: height %d not in [0, %d]: %w", height, MaxDimension, ErrOutOfRange)
	}
	return nil
}
