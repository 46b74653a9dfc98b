package lz4block

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, data []byte) {
	t.Helper()

	dst := make([]byte, CompressBoundBlock(len(data)))
	n, err := CompressBlock(data, dst, 1)
	require.NoError(t, err)

	out := make([]byte, len(data)+64)
	m, err := UncompressBlock(dst[:n], out)
	require.NoError(t, err)
	require.Equal(t, data, out[:m])
}

func TestRoundTrip_Scenarios(t *testing.T) {
	roundTrip(t, []byte{})
	roundTrip(t, bytes.Repeat([]byte("A"), 32))
	roundTrip(t, []byte("Hello, World!"))
	roundTrip(t, bytes.Repeat([]byte("ABCD"), 4096))
	roundTrip(t, []byte{0x42})

	rng := rand.New(rand.NewSource(1))
	randomish := make([]byte, 8192)
	for i := range randomish {
		if i%37 < 10 {
			randomish[i] = byte(i)
		} else {
			randomish[i] = byte(rng.Intn(256))
		}
	}
	roundTrip(t, randomish)
}

func TestEmptyInput_EmitsSingleZeroByte(t *testing.T) {
	dst := make([]byte, 16)
	n, err := CompressBlock(nil, dst, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0), dst[0])

	out := make([]byte, 4)
	m, err := UncompressBlock(dst[:1], out)
	require.NoError(t, err)
	require.Equal(t, 0, m)
}

func TestCompressBlock_OutputTooSmall(t *testing.T) {
	data := bytes.Repeat([]byte("xyz123"), 1000)
	dst := make([]byte, 4)
	_, err := CompressBlock(data, dst, 1)
	require.Error(t, err)
}

func TestUncompressBlock_CorruptOffset(t *testing.T) {
	// token: litLen=0, matchLen=0; offset=0 is illegal.
	src := []byte{0x00, 0x00, 0x00}
	_, err := UncompressBlock(src, make([]byte, 16))
	require.Error(t, err)
}

func TestUncompressBlock_TruncatedInput(t *testing.T) {
	src := []byte{0xF0} // literal-length continuation with no follow-up byte
	_, err := UncompressBlock(src, make([]byte, 16))
	require.Error(t, err)
}

func TestDictionaryInvariant(t *testing.T) {
	dict := bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog. "), 1400) // ~64KiB
	if len(dict) > 65536 {
		dict = dict[len(dict)-65536:]
	}
	follow := []byte("The quick brown fox jumps over the lazy dog again and again.")

	dst := make([]byte, CompressBoundBlock(len(follow)))
	n, err := CompressBlockWithDict(follow, dst, dict, 1)
	require.NoError(t, err)

	out := make([]byte, len(follow)+32)
	m, err := UncompressBlockWithDict(dst[:n], out, dict, true)
	require.NoError(t, err)
	require.Equal(t, follow, out[:m])

	// decompress(b with dict) must equal decompress(prefix||b with noDict)
	// restricted to the follow-up portion.
	combined := append(append([]byte{}, dict...), follow...)
	fullDst := make([]byte, CompressBoundBlock(len(combined)))
	fn, err := CompressBlock(combined, fullDst, 1)
	require.NoError(t, err)
	fullOut := make([]byte, len(combined)+64)
	fm, err := UncompressBlock(fullDst[:fn], fullOut)
	require.NoError(t, err)
	require.Equal(t, combined, fullOut[:fm])
	require.Equal(t, follow, fullOut[len(dict):fm])
}

func TestCompressBlockForPartition_NonLastWithholdsTrailingLiterals(t *testing.T) {
	data := bytes.Repeat([]byte("partition boundary content "), 200)

	dst := make([]byte, CompressBoundBlock(len(data)))
	n, tail, err := CompressBlockForPartition(data, dst, 1, false)
	require.NoError(t, err)
	require.NotEmpty(t, tail)

	lastDst := make([]byte, CompressBoundBlock(len(data)))
	lastN, lastTail, err := CompressBlockForPartition(data, lastDst, 1, true)
	require.NoError(t, err)
	require.Nil(t, lastTail)

	// tail is exactly the suffix of data that the last-block path
	// token-encodes as trailing literals, and withholding it makes the
	// non-last block shorter than the last-block encoding.
	require.Equal(t, data[len(data)-len(tail):], tail)
	require.Less(t, n, lastN)
}

func TestRoundTrip_ProgressiveSizes(t *testing.T) {
	sizes := []int{0, 1, 4, 12, 13, 100, 1024, 65536, 1 << 20}
	for _, size := range sizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i % 251)
		}
		roundTrip(t, data)
	}
}
