package rap

// spliceLZ4 folds each partition's withheld trailing literal run
// (tails[i], produced by
// lz4block.CompressBlockForPartition for every non-last partition)
// into the first token of the next partition's block, so the
// concatenation of blocks is byte-for-byte one legal LZ4 block stream.
//
// blocks[i] is partition i's compressed output (with no final token
// for i < len(blocks)-1); tails[i] is the literal run withheld from
// blocks[i] (nil for the last partition). The result is the spliced
// body and the compressed length contributed by each partition.
func spliceLZ4(blocks [][]byte, tails [][]byte) (body []byte, lengths []int) {
	lengths = make([]int, len(blocks))

	for i, block := range blocks {
		before := len(body)

		if i > 0 && len(tails[i-1]) > 0 {
			block = foldTail(tails[i-1], block)
		}

		body = append(body, block...)
		lengths[i] = len(body) - before
	}

	return body, lengths
}

// foldTail rewrites next's first token so its literal run grows by
// len(tail), prepending tail's bytes ahead of next's own literal
// bytes. The match-length nibble (and everything from the offset
// field onward) is copied through unchanged.
func foldTail(tail, next []byte) []byte {
	if len(next) == 0 {
		return append(append([]byte(nil), tail...), next...)
	}

	token := next[0]
	litNibble := int(token >> 4)
	matchNibble := token & 0x0F

	pos := 1
	litLen := litNibble
	if litNibble == 15 {
		for pos < len(next) && next[pos] == 255 {
			litLen += 255
			pos++
		}
		if pos < len(next) {
			litLen += int(next[pos])
			pos++
		}
	}

	litStart := pos
	litEnd := litStart + litLen
	if litEnd > len(next) {
		litEnd = len(next)
	}

	newLitLen := litLen + len(tail)
	newNibble := newLitLen
	if newNibble > 15 {
		newNibble = 15
	}

	out := make([]byte, 0, len(tail)+len(next)+8)
	out = append(out, byte(newNibble)<<4|matchNibble)

	if newLitLen >= 15 {
		rem := newLitLen - 15
		for rem >= 255 {
			out = append(out, 255)
			rem -= 255
		}
		out = append(out, byte(rem))
	}

	out = append(out, tail...)
	out = append(out, next[litStart:litEnd]...)
	out = append(out, next[litEnd:]...)

	return out
}

// adlerBase is zlib's Adler-32 modulus.
const adlerBase = 65521

// combineAdler32 implements zlib's adler32_combine: given adler1 (the
// checksum of a prefix of length len1, not needed here) and adler2
// (the checksum of the bytes immediately following, of length len2),
// returns the checksum of the concatenation. Each worker's partition
// checksum is folded into a single running value this way.
func combineAdler32(adler1, adler2 uint32, len2 int64) uint32 {
	rem := uint32(len2 % adlerBase)

	sum1 := adler1 & 0xffff
	sum2 := (rem * sum1) % adlerBase
	sum1 += (adler2 & 0xffff) + adlerBase - 1
	sum2 += ((adler1 >> 16) & 0xffff) + ((adler2 >> 16) & 0xffff) + adlerBase - rem

	if sum1 >= adlerBase {
		sum1 -= adlerBase
	}
	if sum1 >= adlerBase {
		sum1 -= adlerBase
	}
	if sum2 >= (adlerBase << 1) {
		sum2 -= adlerBase << 1
	}
	if sum2 >= adlerBase {
		sum2 -= adlerBase
	}

	return sum1 | (sum2 << 16)
}
