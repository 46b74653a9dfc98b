// Package codec is the unified façade: one compress/decompress entry
// point keyed by codec identifier and level, fronting the LZ4 block
// engine, the Bzip2 state machine, and the Zlib/Snappy/LZMA/Zstd
// adapters behind a single Codec interface.
package codec

import (
	"fmt"
	"time"

	"github.com/coreframe/codec/errs"
	"github.com/coreframe/codec/internal/hash"
)

// Compressor compresses a byte slice into a newly allocated result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice compressed by the matching
// Compressor into a newly allocated result.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Implementations must be safe for
// concurrent use: GetCodec hands the same Codec value to every caller,
// so one value may be used from multiple goroutines at once.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of a single compress call, for
// monitoring and tuning.
type CompressionStats struct {
	Algorithm           ID
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
	// BlockHash is the xxHash64 of the compressed bytes, recorded so a
	// caller archiving CompressionStats alongside a block can detect
	// silent on-disk corruption without re-decompressing the block.
	BlockHash uint64
}

// CompressionRatio returns CompressedSize / OriginalSize; 0 if
// OriginalSize is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage in [0,100].
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// StatsFor measures a single Compress call against c and fills in a
// CompressionStats, the façade's equivalent of timing a Descriptor's
// CompressDuration field end to end.
func StatsFor(c Codec, id ID, data []byte) (CompressionStats, []byte, error) {
	start := time.Now()
	out, err := c.Compress(data)
	elapsed := time.Since(start)
	if err != nil {
		return CompressionStats{}, nil, err
	}

	return CompressionStats{
		Algorithm:         id,
		OriginalSize:      int64(len(data)),
		CompressedSize:    int64(len(out)),
		CompressionTimeNs: elapsed.Nanoseconds(),
		BlockHash:         hash.BlockHash(out),
	}, out, nil
}

// CreateCodec is a factory function that builds a fresh Codec for id.
// Unlike GetCodec, it never shares state across calls — use it when a
// caller needs an isolated handle (e.g. one per RAP worker).
func CreateCodec(id ID, target string) (Codec, error) {
	switch id {
	case LZ4, LZ4HC:
		return newLZ4Codec(id), nil
	case Snappy:
		return newSnappyCodec(), nil
	case Zlib:
		return newZlibCodec(), nil
	case Bzip2:
		return newBzip2Codec(), nil
	case LZMA:
		return newLZMACodec(), nil
	case Zstd:
		return newZstdCodec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s: %w", target, id, errs.ErrUnsupportedCodec)
	}
}

var builtinCodecs = map[ID]Codec{
	LZ4:    newLZ4Codec(LZ4),
	LZ4HC:  newLZ4Codec(LZ4HC),
	Snappy: newSnappyCodec(),
	Zlib:   newZlibCodec(),
	Bzip2:  newBzip2Codec(),
	LZMA:   newLZMACodec(),
	Zstd:   newZstdCodec(),
}

// GetCodec retrieves a shared, process-wide Codec instance for id.
// Codec implementations in this package hold no mutable state beyond
// their configured level, so sharing is safe across goroutines.
func GetCodec(id ID) (Codec, error) {
	if c, ok := builtinCodecs[id]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s: %w", id, errs.ErrUnsupportedCodec)
}
