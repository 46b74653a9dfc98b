package zstdadapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip_OneShot(t *testing.T) {
	data := []byte("zstd round trip test data, zstd round trip test data, zstd round trip test")

	compressed, err := CompressOneShot(data, 0)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	decompressed, err := DecompressOneShot(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestRoundTrip_AllLevels(t *testing.T) {
	data := []byte("level-dependent zstd payload used across every supported compression level")

	for _, level := range []int{1, 3, 6, 12, 19, 22} {
		compressed, err := CompressOneShot(data, level)
		require.NoError(t, err)

		decompressed, err := DecompressOneShot(compressed)
		require.NoError(t, err)
		require.Equal(t, data, decompressed)
	}
}

func TestDecompressOneShot_Empty(t *testing.T) {
	out, err := DecompressOneShot(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDecompressOneShot_RejectsGarbage(t *testing.T) {
	_, err := DecompressOneShot([]byte{0x00, 0x01, 0x02, 0x03})
	require.Error(t, err)
}

func TestClampLevel(t *testing.T) {
	require.Equal(t, defLevel, clampLevel(0, minLevel, maxLevel, defLevel))
	require.Equal(t, maxLevel, clampLevel(100, minLevel, maxLevel, defLevel))
	require.Equal(t, defLevel, clampLevel(-5, minLevel, maxLevel, defLevel))
}
