package codec

import "github.com/coreframe/codec/internal/zstdadapter"

// zstdCodec drives the Zstandard adapter, backed by
// klauspost/compress/zstd on cgo-free builds and valyala/gozstd's
// libzstd bindings when cgo is available (see internal/zstdadapter's
// build-tagged split).
type zstdCodec struct {
	level int
}

func newZstdCodec() *zstdCodec {
	return &zstdCodec{level: Zstd.ClampLevel(0)}
}

func (c *zstdCodec) Compress(data []byte) ([]byte, error) {
	return zstdadapter.CompressOneShot(data, c.level)
}

func (c *zstdCodec) Decompress(data []byte) ([]byte, error) {
	return zstdadapter.DecompressOneShot(data)
}
