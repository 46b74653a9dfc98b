package codec

import "github.com/coreframe/codec/internal/bzip2stream"

// bzip2Codec drives the Bzip2 state machine through its
// one-shot helpers; callers that need RUN/FLUSH/FINISH control use
// bzip2stream.EncodeStream/DecodeStream directly.
type bzip2Codec struct {
	blockSize100k int
	workFactor    int
}

func newBzip2Codec() *bzip2Codec {
	return &bzip2Codec{blockSize100k: Bzip2.ClampLevel(0), workFactor: 0}
}

func (c *bzip2Codec) Compress(data []byte) ([]byte, error) {
	return bzip2stream.CompressOneShot(data, c.blockSize100k, c.workFactor)
}

func (c *bzip2Codec) Decompress(data []byte) ([]byte, error) {
	return bzip2stream.DecompressOneShot(data)
}
