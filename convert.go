package minvideo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

type ImportOptions struct {
	Width  int // Output width. Zero keeps the source width.
	Height int // Output height. Zero keeps the source height.
}

// Decodes any video ffmpeg can read into a Video, rescaling frames when the
// options ask for a different size. A trailing partial frame is dropped.
func Import(ctx context.Context, filename string, options *ImportOptions) (*Video, error) {
	if !exists(filename) {
		return nil, fmt.Errorf("minvideo: video file %s does not exist", filename)
	}
	if err := installed("ffmpeg"); err != nil {
		return nil, err
	}
	if err := installed("ffprobe"); err != nil {
		return nil, err
	}

	data, err := ffprobe(ctx, filename, "v")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("minvideo: no video streams found in %s", filename)
	}
	width, height, err := probedSize(data)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = &ImportOptions{}
	}
	scale := false
	if options.Width > 0 && options.Width != width {
		width, scale = options.Width, true
	}
	if options.Height > 0 && options.Height != height {
		height, scale = options.Height, true
	}

	video, err := NewVideo(width, height)
	if err != nil {
		return nil, err
	}
	if video.Stride() == 0 {
		return nil, fmt.Errorf("minvideo: %s has no pixels: %w", filename, ErrInvalidLength)
	}

	args := importArgs(filename, width, height, scale)
	slog.Debug("minvideo: running ffmpeg", "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("minvideo: failed to access the ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("minvideo: failed to start the ffmpeg cmd: %w", err)
	}

	if err := readFrames(pipe, video); err != nil {
		pipe.Close()
		cmd.Wait()
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("minvideo: ffmpeg failed on %s: %w", filename, err)
	}

	slog.Debug("minvideo: imported video", "file", filename, "width", width, "height", height, "frames", video.FrameCount())
	return video, nil
}

// ffmpeg command to pipe video data to stdout in 8-bit RGB format.
func importArgs(filename string, width, height int, scale bool) []string {
	args := []string{
		"-i", filename,
		"-f", "image2pipe",
		"-loglevel", "quiet",
		"-pix_fmt", "rgb24",
		"-vcodec", "rawvideo",
		"-map", "0:v:0",
	}
	if scale {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", width, height))
	}
	return append(args, "-")
}

// Reads rgb24 frames from r until EOF and appends them to video.
func readFrames(r io.Reader, video *Video) error {
	buffer := make([]byte, video.Stride())
	for {
		if _, err := io.ReadFull(r, buffer); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("minvideo: failed to read frame %d: %w", video.FrameCount(), err)
		}
		frame, err := frameFromRGB(buffer, video.width, video.height)
		if err != nil {
			return err
		}
		if err := video.AddFrame(frame); err != nil {
			return err
		}
	}
}

// Builds a frame from packed R, G, B bytes.
func frameFromRGB(buffer []byte, width, height int) (*Frame, error) {
	frame, err := NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	if len(buffer) < len(frame.pixels)*Depth {
		return nil, fmt.Errorf("minvideo: %d bytes is too short for a %dx%d frame: %w", len(buffer), width, height, ErrCorruptData)
	}
	for i := range frame.pixels {
		frame.pixels[i] = Color{buffer[i*Depth], buffer[i*Depth+1], buffer[i*Depth+2]}
	}
	return frame, nil
}
