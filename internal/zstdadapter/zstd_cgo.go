//go:build cgo

package zstdadapter

import "github.com/valyala/gozstd"

const (
	minLevel = 1
	maxLevel = 22
	defLevel = 3
)

// CompressOneShot compresses data at the given level (clamped to
// [1,22], 0 meaning the adapter default) using libzstd via cgo.
func CompressOneShot(data []byte, level int) ([]byte, error) {
	level = clampLevel(level, minLevel, maxLevel, defLevel)

	return gozstd.CompressLevel(nil, data, level), nil
}

// DecompressOneShot decompresses a zstd frame using libzstd via cgo.
func DecompressOneShot(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, wrapDecodeErr(err)
	}

	return out, nil
}
