package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// BlockHash computes the xxHash64 of a byte block. Used for the
// optional block-integrity hash recorded in a CompressionStats value
// and for identifying a dictionary's contents when an LZ4 decoder
// needs to verify the caller handed it the dictionary a stream was
// compressed against.
func BlockHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DictContextID identifies an LZ4 external dictionary by content hash
// rather than by pointer identity, so a decoder can detect a
// caller-supplied dictionary mismatch instead of silently decoding
// garbage against the wrong context.
func DictContextID(dict []byte) uint64 {
	if len(dict) == 0 {
		return 0
	}

	return BlockHash(dict)
}
