package minvideo

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

type ExportOptions struct {
	Bitrate int     // Bitrate for video encoding. Zero lets ffmpeg choose.
	Loop    int     // For GIFs. -1=no loop, 0=loop forever, >0=loop n times.
	Delay   int     // Delay for final frame of GIFs.
	Macro   int     // Macroblock size frames are padded to.
	FPS     float64 // Frames per second.
	Codec   string  // Codec used for video encoding.
}

// Encodes video to filename with ffmpeg. The container follows the file
// extension.
func Export(ctx context.Context, filename string, video *Video, options *ExportOptions) error {
	if video.Stride() == 0 {
		return fmt.Errorf("minvideo: %dx%d video has no pixels: %w", video.width, video.height, ErrInvalidLength)
	}
	if err := installed("ffmpeg"); err != nil {
		return err
	}

	args := exportArgs(filename, video.width, video.height, withExportDefaults(filename, options))
	slog.Debug("minvideo: running ffmpeg", "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	pipe, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("minvideo: failed to access the ffmpeg stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("minvideo: failed to start the ffmpeg cmd: %w", err)
	}

	buffer := make([]byte, 0, video.Stride())
	for i, frame := range video.frames {
		buffer = frame.appendRGB(buffer[:0])
		if _, err := pipe.Write(buffer); err != nil {
			pipe.Close()
			cmd.Wait()
			return fmt.Errorf("minvideo: failed to write frame %d to ffmpeg, likely cause is invalid parameters: %w", i, err)
		}
	}

	if err := pipe.Close(); err != nil {
		return fmt.Errorf("minvideo: failed to close the ffmpeg stdin pipe: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("minvideo: ffmpeg failed writing %s: %w", filename, err)
	}
	return nil
}

// Fills unset options. Defaults follow imageio-ffmpeg:
// https://github.com/imageio/imageio-ffmpeg/blob/master/imageio_ffmpeg/_io.py#L268
func withExportDefaults(filename string, options *ExportOptions) ExportOptions {
	var opts ExportOptions
	if options != nil {
		opts = *options
	}
	if opts.Delay == 0 {
		opts.Delay = -1 // Default to frame delay of previous frame.
	}
	if opts.Macro == 0 {
		opts.Macro = 16
	}
	if opts.FPS == 0 {
		opts.FPS = 25
	}
	if opts.Codec == "" {
		switch {
		case strings.HasSuffix(strings.ToLower(filename), ".wmv"):
			opts.Codec = "msmpeg4"
		case strings.HasSuffix(strings.ToLower(filename), ".gif"):
			opts.Codec = "gif"
		default:
			opts.Codec = "libx264"
		}
	}
	return opts
}

func exportArgs(filename string, width, height int, opts ExportOptions) []string {
	args := []string{
		"-y", // overwrite output file if it exists
		"-loglevel", "quiet",
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-pix_fmt", "rgb24",
		"-r", fmt.Sprintf("%.02f", opts.FPS),
		"-i", "-", // The input comes from stdin
		"-an",
		"-vcodec", opts.Codec,
	}
	if opts.Codec != "gif" {
		args = append(args, "-pix_fmt", "yuv420p")
	}
	if opts.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%d", opts.Bitrate))
	}

	if strings.HasSuffix(strings.ToLower(filename), ".gif") {
		args = append(
			args,
			"-loop", fmt.Sprintf("%d", opts.Loop),
			"-final_delay", fmt.Sprintf("%d", opts.Delay),
		)
	}

	// Resizes the video frames to a size that works with most codecs.
	// https://github.com/imageio/imageio-ffmpeg/blob/master/imageio_ffmpeg/_io.py#L415
	if opts.Macro > 1 && (width%opts.Macro > 0 || height%opts.Macro > 0) {
		w, h := width, height
		if width%opts.Macro > 0 {
			w += opts.Macro - width%opts.Macro
		}
		if height%opts.Macro > 0 {
			h += opts.Macro - height%opts.Macro
		}
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", w, h))
	}

	return append(args, filename)
}

// Appends the frame's pixels as packed R, G, B bytes.
func (frame *Frame) appendRGB(dst []byte) []byte {
	for _, c := range frame.pixels {
		dst = append(dst, c.R, c.G, c.B)
	}
	return dst
}
