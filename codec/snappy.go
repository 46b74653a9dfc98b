package codec

import "github.com/coreframe/codec/internal/snappyadapter"

// snappyCodec is the levelless Snappy adapter.
type snappyCodec struct{}

func newSnappyCodec() *snappyCodec { return &snappyCodec{} }

func (c *snappyCodec) Compress(data []byte) ([]byte, error) {
	return snappyadapter.CompressOneShot(data)
}

func (c *snappyCodec) Decompress(data []byte) ([]byte, error) {
	return snappyadapter.DecompressOneShot(data)
}
