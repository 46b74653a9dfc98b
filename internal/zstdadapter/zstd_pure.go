//go:build !cgo

package zstdadapter

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	minLevel = 1
	maxLevel = 22
	defLevel = 3
)

var decoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(err)
		}

		return decoder
	},
}

var encoderPools sync.Map // zstd.EncoderLevel -> *sync.Pool

// speedForLevel buckets the adapter's 1-22 level range onto
// klauspost/compress/zstd's four named speed tiers, the only
// granularity the pure-Go encoder exposes.
func speedForLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 6:
		return zstd.SpeedDefault
	case level <= 12:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func encoderPoolForSpeed(speed zstd.EncoderLevel) *sync.Pool {
	if p, ok := encoderPools.Load(speed); ok {
		return p.(*sync.Pool)
	}

	p := &sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(speed),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(err)
			}

			return encoder
		},
	}
	actual, _ := encoderPools.LoadOrStore(speed, p)

	return actual.(*sync.Pool)
}

// CompressOneShot compresses data at the given level (clamped to
// [1,22], 0 meaning the adapter default).
func CompressOneShot(data []byte, level int) ([]byte, error) {
	level = clampLevel(level, minLevel, maxLevel, defLevel)

	pool := encoderPoolForSpeed(speedForLevel(level))
	encoder := pool.Get().(*zstd.Encoder)
	defer pool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// DecompressOneShot decompresses a zstd frame.
func DecompressOneShot(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, wrapDecodeErr(err)
	}

	return out, nil
}
