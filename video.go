package minvideo

import (
	"fmt"
	"runtime"
	"sync"
)

// An ordered sequence of frames sharing one width and height.
type Video struct {
	width  int                     // Width of frames.
	height int                     // Height of frames.
	header [BytesBeforeFrames]byte // Encoded width and height.
	frames []*Frame                // Frames in insertion order.
}

// Creates an empty video. Both dimensions must be in [0, MaxDimension].
func NewVideo(width, height int) (*Video, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	video := &Video{width: width, height: height}
	w, _ := SplitDimension(width)
	h, _ := SplitDimension(height)
	copy(video.header[:SizeByteLength], w[:])
	copy(video.header[SizeByteLength:], h[:])
	return video, nil
}

func (video *Video) Width() int {
	return video.width
}

func (video *Video) Height() int {
	return video.height
}

// Total number of frames in video.
func (video *Video) FrameCount() int {
	return len(video.frames)
}

// Bytes one frame occupies on the wire.
func (video *Video) Stride() int {
	return video.width * video.height * Depth
}

// Appends a frame. The frame must have the video's width and height.
func (video *Video) AddFrame(frame *Frame) error {
	if frame == nil {
		return fmt.Errorf("minvideo: nil frame: %w", ErrDimensionMismatch)
	}
	if frame.width != video.width || frame.height != video.height {
		return fmt.Errorf(
			"minvideo: frame is %dx%d, video is %dx%d: %w",
			frame.width, frame.height, video.width, video.height, ErrDimensionMismatch,
		)
	}
	video.frames = append(video.frames, frame)
	return nil
}

// Returns the n-th frame. The frames are indexed from 0.
func (video *Video) Frame(n int) (*Frame, error) {
	if n < 0 || n >= len(video.frames) {
		return nil, fmt.Errorf("minvideo: frame %d not in [0, %d): %w", n, len(video.frames), ErrOutOfRange)
	}
	return video.frames[n], nil
}

// Returns the frames in insertion order. The slice is a copy; the frames are not.
func (video *Video) Frames() []*Frame {
	frames := make([]*Frame, len(video.frames))
	copy(frames, video.frames)
	return frames
}

// Encodes the video: width parts, height parts, then every frame's samples.
func (video *Video) Bytes() []byte {
	data := make([]byte, 0, BytesBeforeFrames+len(video.frames)*video.Stride())
	data = append(data, video.header[:]...)
	for _, frame := range video.frames {
		data = frame.AppendSamples(data)
	}
	return data
}

func (video *Video) MarshalBinary() ([]byte, error) {
	return video.Bytes(), nil
}

// Replaces the receiver with the video decoded from data.
func (video *Video) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*video = *decoded
	return nil
}

// Decodes a whole encoded video. Frames are decoded concurrently and kept
// in stream order.
func Decode(data []byte) (*Video, error) {
	width, height, count, err := layout(data)
	if err != nil {
		return nil, err
	}
	video, err := NewVideo(width, height)
	if err != nil {
		return nil, err
	}

	video.frames = make([]*Frame, count)
	errs := make([]error, count)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			video.frames[i], errs[i] = decodeFrame(data, i, width, height)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return video, nil
}

// Decodes frames one at a time and passes each to fn, stopping at the first
// error fn returns.
func ForEachFrame(data []byte, fn func(n int, frame *Frame) error) error {
	width, height, count, err := layout(data)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		frame, err := decodeFrame(data, i, width, height)
		if err != nil {
			return err
		}
		if err := fn(i, frame); err != nil {
			return err
		}
	}
	return nil
}

// Reads the width from the start of an encoded video.
func WidthFromData(data []byte) (int, error) {
	return JoinDimension(data)
}

// Reads the height from an encoded video.
func HeightFromData(data []byte) (int, error) {
	if len(data) < SizeByteLength {
		return 0, fmt.Errorf("minvideo: data too short for height: %w", ErrCorruptData)
	}
	return JoinDimension(data[SizeByteLength:])
}

// Counts the frames in an encoded video without decoding them.
func FrameCountFromData(data []byte) (int, error) {
	_, _, count, err := layout(data)
	return count, err
}

// Validates the header and length of data and returns the frame geometry.
func layout(data []byte) (int, int, int, error) {
	width, err := WidthFromData(data)
	if err != nil {
		return 0, 0, 0, err
	}
	height, err := HeightFromData(data)
	if err != nil {
		return 0, 0, 0, err
	}

	stride := width * height * Depth
	if stride == 0 {
		return 0, 0, 0, fmt.Errorf("minvideo: %dx%d frames have no pixels: %w", width, height, ErrInvalidLength)
	}
	payload := len(data) - BytesBeforeFrames
	if payload%stride != 0 {
		return 0, 0, 0, fmt.Errorf(
			"minvideo: %d bytes of frame data is not a multiple of the %d byte frame size: %w",
			payload, stride, ErrInvalidLength,
		)
	}
	return width, height, payload / stride, nil
}

func decodeFrame(data []byte, n, width, height int) (*Frame, error) {
	stride := width * height * Depth
	begin := BytesBeforeFrames + n*stride
	end := begin + stride
	if begin < BytesBeforeFrames || end > len(data) {
		return nil, fmt.Errorf("minvideo: frame %d spans [%d, %d) of %d bytes: %w", n, begin, end, len(data), ErrCorruptData)
	}
	region := data[begin:end]

	frame, err := NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < width*height; i++ {
		x, y := Coords(i, width, height)
		b, g, r := region[i*Depth], region[i*Depth+1], region[i*Depth+2]
		if err := frame.SetColor(x, y, Color{R: r, G: g, B: b}); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
