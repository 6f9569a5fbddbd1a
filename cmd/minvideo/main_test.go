package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/AlexEidt/minvideo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTestVideo(t *testing.T, width, height, frames int) string {
	t.Helper()
	video, err := minvideo.NewVideo(width, height)
	require.NoError(t, err)
	for n := 0; n < frames; n++ {
		frame, err := minvideo.NewFrame(width, height)
		require.NoError(t, err)
		require.NoError(t, frame.SetColor(0, 0, minvideo.Color{R: uint8(n), G: 100, B: 200}))
		require.NoError(t, video.AddFrame(frame))
	}

	path := filepath.Join(t.TempDir(), "clip.minv")
	require.NoError(t, minvideo.Save(path, video))
	return path
}

func TestRunHelp(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}} {
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), DefaultConfig(), args, &out))
		assert.Contains(t, out.String(), "MinVideo command line tool")
		assert.Contains(t, out.String(), "convert <input> <output> [width] [height]")
	}
}

func TestRunInfo(t *testing.T) {
	path := saveTestVideo(t, 300, 4, 3)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), DefaultConfig(), []string{"info", path}, &out))
	assert.Equal(t, "Size: 300x4\nFrames: 3\n", out.String())
}

func TestRunUnknownOption(t *testing.T) {
	err := run(context.Background(), DefaultConfig(), []string{"play"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unrecognized option")
}

func TestRunMissingArguments(t *testing.T) {
	err := run(context.Background(), DefaultConfig(), []string{"frame", "in.minv"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "requires at least 3 arguments")
}

func TestRunFrame(t *testing.T) {
	path := saveTestVideo(t, 4, 2, 3)
	output := filepath.Join(t.TempDir(), "frame.png")

	require.NoError(t, run(context.Background(), DefaultConfig(), []string{"frame", path, "2", output}, &bytes.Buffer{}))

	frame, err := minvideo.ReadImage(output)
	require.NoError(t, err)
	assert.Equal(t, minvideo.Color{R: 2, G: 100, B: 200}, frame.ColorAt(0, 0))
}

func TestRunFrameOutOfRange(t *testing.T) {
	path := saveTestVideo(t, 4, 2, 1)
	output := filepath.Join(t.TempDir(), "frame.png")

	err := run(context.Background(), DefaultConfig(), []string{"frame", path, "5", output}, &bytes.Buffer{})
	assert.ErrorIs(t, err, minvideo.ErrOutOfRange)
}

func TestRunConvertBadSize(t *testing.T) {
	err := run(context.Background(), DefaultConfig(), []string{"convert", "in.mp4", "out.minv", "wide"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid width")
}
