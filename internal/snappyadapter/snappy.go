// Package snappyadapter implements the Snappy codec as a one-shot
// wrapper around github.com/klauspost/compress/s2. S2's
// snappy-compatible encode/decode entry points reproduce the published
// Snappy block format bit-for-bit while the rest of the package adds
// S2's own extensions, which this adapter does not use.
package snappyadapter

import (
	"github.com/klauspost/compress/s2"

	"github.com/coreframe/codec/errs"
)

// CompressOneShot encodes data using the Snappy block format.
func CompressOneShot(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeSnappy(nil, data), nil
}

// DecompressOneShot decodes Snappy block-format data, as produced by
// CompressOneShot or any standard Snappy encoder.
func DecompressOneShot(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, errs.ErrData
	}

	return out, nil
}

// CompressBound returns the published Snappy bound: 32 + n + n/6.
func CompressBound(n int) int {
	return 32 + n + n/6
}
