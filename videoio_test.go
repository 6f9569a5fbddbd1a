package minvideo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.minv")
	original := randomVideo(t, 12, 8, 3, 10)

	require.NoError(t, Save(path, original))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original.Bytes(), data)

	loaded, err := Load(path)
	require.NoError(t, err)
	assertSameVideo(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.minv"))
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.minv")
	require.NoError(t, os.WriteFile(path, append(twoPixelVideo(t).Bytes(), 0), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestWriteToReadFrom(t *testing.T) {
	original := randomVideo(t, 5, 3, 2, 11)

	var buf bytes.Buffer
	n, err := original.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, BytesBeforeFrames+2*5*3*Depth, n)

	decoded, err := ReadFrom(&buf)
	require.NoError(t, err)
	assertSameVideo(t, original, decoded)
}

func TestImageFileRoundTrip(t *testing.T) {
	original := randomVideo(t, 9, 4, 1, 12)
	frame, err := original.Frame(0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, WriteImage(path, frame))

	read, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, frame.pixels, read.pixels)
}

func TestWriteImageUnsupportedExtension(t *testing.T) {
	frame, err := NewFrame(1, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "frame.bmp")
	assert.Error(t, WriteImage(path, frame))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReadImageMissing(t *testing.T) {
	_, err := ReadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
