package codec

import "github.com/coreframe/codec/internal/zlibadapter"

// zlibCodec drives the Zlib/Deflate adapter in one-shot mode;
// callers that need incremental flushes use zlibadapter.Stream
// directly.
type zlibCodec struct {
	level int
}

func newZlibCodec() *zlibCodec {
	return &zlibCodec{level: Zlib.ClampLevel(0)}
}

func (c *zlibCodec) Compress(data []byte) ([]byte, error) {
	return zlibadapter.CompressOneShot(data, c.level)
}

func (c *zlibCodec) Decompress(data []byte) ([]byte, error) {
	return zlibadapter.DecompressOneShot(data)
}
