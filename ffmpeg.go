package minvideo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Returns true if file exists, false otherwise.
func exists(filename string) bool {
	_, err := os.Stat(filename)
	if err == nil {
		return true
	}
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return false
}

// Checks if the given program is installed.
func installed(program string) error {
	if _, err := exec.LookPath(program); err != nil {
		return fmt.Errorf("minvideo: %s is not installed: %w", program, err)
	}
	return nil
}

// Runs ffprobe on the first stream of the given type ("v" or "a") and
// returns its key/value pairs.
func ffprobe(ctx context.Context, filename, stream string) (map[string]string, error) {
	args := []string{
		"-show_streams",
		"-select_streams", stream,
		"-print_format", "compact",
		"-loglevel", "quiet",
		filename,
	}
	slog.Debug("minvideo: running ffprobe", "args", args)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffprobe", args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("minvideo: ffprobe failed on %s: %w", filename, err)
	}
	return parseFFprobe(out.Bytes()), nil
}

// Parse ffprobe compact output. Only the first occurrence of a key is kept.
func parseFFprobe(input []byte) map[string]string {
	data := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(string(input)), "|") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if _, seen := data[key]; !seen {
			data[key] = value
		}
	}
	return data
}

// Reads the frame size out of ffprobe stream data.
func probedSize(data map[string]string) (int, int, error) {
	width, err := strconv.Atoi(data["width"])
	if err != nil {
		return 0, 0, fmt.Errorf("minvideo: failed to parse the video width: %w", err)
	}
	height, err := strconv.Atoi(data["height"])
	if err != nil {
		return 0, 0, fmt.Errorf("minvideo: failed to parse the video height: %w", err)
	}
	return width, height, nil
}
