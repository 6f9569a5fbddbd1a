package minvideo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDimension(t *testing.T) {
	tests := []struct {
		name      string
		dimension int
		expected  [SizeByteLength]byte
	}{
		{"zero", 0, [SizeByteLength]byte{}},
		{"single byte", 2, [SizeByteLength]byte{2}},
		{"byte max", 255, [SizeByteLength]byte{255}},
		{"just over a byte", 256, [SizeByteLength]byte{128, 128}},
		{"even split", 300, [SizeByteLength]byte{150, 150}},
		{"remainder spread", 511, [SizeByteLength]byte{171, 170, 170}},
		{"maximum", MaxDimension, [SizeByteLength]byte{255, 255, 255, 255, 255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := SplitDimension(tt.dimension)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parts)
		})
	}
}

func TestSplitDimensionOutOfRange(t *testing.T) {
	for _, dimension := range []int{-1, MaxDimension + 1, 1 << 20} {
		_, err := SplitDimension(dimension)
		assert.ErrorIs(t, err, ErrOutOfRange, "dimension %d", dimension)
	}
}

func TestJoinInvertsSplit(t *testing.T) {
	for d := 0; d <= MaxDimension; d++ {
		parts, err := SplitDimension(d)
		require.NoError(t, err)

		joined, err := JoinDimension(parts[:])
		require.NoError(t, err)
		require.Equal(t, d, joined)
	}
}

func TestSplitUsesFewestParts(t *testing.T) {
	for d := 1; d <= MaxDimension; d++ {
		parts, _ := SplitDimension(d)
		nonZero := 0
		for _, part := range parts {
			if part != 0 {
				nonZero++
			}
		}
		require.Equal(t, (d+254)/255, nonZero, "dimension %d", d)
	}
}

func TestJoinDimensionIgnoresTrailingBytes(t *testing.T) {
	joined, err := JoinDimension([]byte{1, 2, 3, 0, 0, 0, 0, 0, 99, 99})
	require.NoError(t, err)
	assert.Equal(t, 6, joined)
}

func TestJoinDimensionShortInput(t *testing.T) {
	_, err := JoinDimension([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorruptData)
}
