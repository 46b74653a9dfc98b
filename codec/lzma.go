package codec

import "github.com/coreframe/codec/internal/lzmaadapter"

// lzmaCodec drives the raw-LZMA half of the adapter; the XZ container
// wrapper is exposed separately as
// lzmaadapter.XZCompressOneShot/XZDecompressOneShot for callers that
// need the full container framing instead of the bare properties
// header this codec uses.
type lzmaCodec struct {
	preset uint32
}

func newLZMACodec() *lzmaCodec {
	return &lzmaCodec{preset: uint32(LZMA.ClampLevel(0))}
}

func (c *lzmaCodec) Compress(data []byte) ([]byte, error) {
	return lzmaadapter.CompressOneShot(data, c.preset)
}

func (c *lzmaCodec) Decompress(data []byte) ([]byte, error) {
	return lzmaadapter.DecompressOneShot(data)
}
