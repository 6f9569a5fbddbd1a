package minvideo

import (
	"fmt"
	"io"
	"os"
)

// Writes the encoded video to filename, replacing any existing file.
func Save(filename string, video *Video) error {
	if err := os.WriteFile(filename, video.Bytes(), 0o644); err != nil {
		return fmt.Errorf("minvideo: failed to write %s: %w", filename, err)
	}
	return nil
}

// Reads and decodes a whole video file.
func Load(filename string) (*Video, error) {
	if !exists(filename) {
		return nil, fmt.Errorf("minvideo: video file %s does not exist", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("minvideo: failed to read %s: %w", filename, err)
	}
	return Decode(data)
}

// Writes the encoded video to w. Implements io.WriterTo.
func (video *Video) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(video.Bytes())
	return int64(n), err
}

// Reads r to EOF and decodes the result.
func ReadFrom(r io.Reader) (*Video, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("minvideo: failed to read video data: %w", err)
	}
	return Decode(data)
}
