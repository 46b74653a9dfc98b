package codec

import (
	"encoding/binary"

	"github.com/coreframe/codec/errs"
	"github.com/coreframe/codec/internal/dispatch"
	"github.com/coreframe/codec/internal/lz4block"
	"github.com/coreframe/codec/internal/pool"
)

// lz4FuncSet returns the registered LZ4 engine, running Setup first if
// no caller has done so yet (mirroring NewDescriptor's own lazy-Setup
// call), so Compress/Decompress always resolve their engine through
// the dispatch table instead of calling lz4block directly.
func lz4FuncSet() (dispatch.FuncSet, error) {
	reg := dispatch.Global()
	reg.Setup(false, dispatch.OptReference, false)

	fns, ok := reg.Lookup("lz4")
	if !ok {
		return dispatch.FuncSet{}, errs.ErrConfig
	}

	return fns, nil
}

// lz4Codec wraps the hand-written LZ4 block engine behind
// the Codec interface, self-framing each block with a 4-byte
// little-endian length prefix so Compress/Decompress can round-trip
// arbitrary-sized payloads. It is the only adapter in this package
// that adds framing; the others pass through their library's own
// self-describing wire format.
//
// LZ4HC shares the same engine. The reference library's HC mode runs
// an optimal-parse match finder that searches every candidate in a
// position's hash chain instead of just the most recent one; that
// match finder is out of scope here, so LZ4HC is
// implemented as the same greedy engine with acceleration forced to
// its slowest, most exhaustive setting. It is bit-compatible with the
// LZ4 block format but not with AOCL's own HC compression ratio.
type lz4Codec struct {
	id ID
}

func newLZ4Codec(id ID) *lz4Codec {
	return &lz4Codec{id: id}
}

func (c *lz4Codec) acceleration(level int) int {
	if c.id == LZ4HC {
		return 1
	}
	if level <= 0 {
		return 1
	}

	return level
}

func (c *lz4Codec) Compress(data []byte) ([]byte, error) {
	fns, err := lz4FuncSet()
	if err != nil {
		return nil, err
	}

	accel := c.acceleration(c.id.ClampLevel(0))
	bound := lz4block.CompressBoundBlock(len(data))

	scratch := pool.GetPartitionBuffer()
	defer pool.PutPartitionBuffer(scratch)
	scratch.Grow(4 + bound)
	scratch.SetLength(4 + bound)

	dst := scratch.Bytes()
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))

	n, err := fns.Compress(data, dst[4:], accel)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 4+n)
	copy(out, dst[:4+n])

	return out, nil
}

func (c *lz4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, errs.ErrUnexpectedEOF
	}

	fns, err := lz4FuncSet()
	if err != nil {
		return nil, err
	}

	originalLen := int(binary.LittleEndian.Uint32(data))
	dst := make([]byte, originalLen)

	n, err := fns.Decompress(data[4:], dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}
