package lz4block

// UncompressBlock decompresses an LZ4 block produced by CompressBlock
// into dst and returns the number of bytes written.
//
// Reference decoders split this into two platform-selected loops (a
// wildcopy fast loop and a bounds-checked safe loop); this
// reimplementation runs a single bounds-checked loop for both, since
// Go's slice bounds checks make the "fast" distinction a
// micro-optimization rather than a correctness concern (see
// DESIGN.md). UncompressBlockSafe is kept as a distinct entry point so
// callers that specifically want the bounds-checked loop by name have
// a stable one to call.
func UncompressBlock(src, dst []byte) (int, error) {
	return uncompressInto(src, dst, nil, true, true)
}

// UncompressBlockSafe is an alias of UncompressBlock kept for call
// sites that want to express "use the safe loop" explicitly.
func UncompressBlockSafe(src, dst []byte) (int, error) {
	return UncompressBlock(src, dst)
}

// UncompressBlockPartial stops at the first token that would overflow
// dst and reports the number of bytes actually produced, instead of
// treating an output overflow as an error.
func UncompressBlockPartial(src, dst []byte) (int, error) {
	return uncompressInto(src, dst, nil, false, true)
}

// UncompressBlockWithDict decompresses src into dst, resolving any
// back-reference that points before the start of dst against dict, as
// if dict immediately preceded dst in memory.
//
// isLastThread=false marks a non-final RAP partition, whose block may
// end right after a match instead of with a literal-only sequence;
// with isLastThread=true a block that runs out of input after a match
// is rejected as truncated.
func UncompressBlockWithDict(src, dst, dict []byte, isLastThread bool) (int, error) {
	return uncompressInto(src, dst, dict, true, isLastThread)
}

func uncompressInto(src, dst, dict []byte, failOnOverflow, isLast bool) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	ip := 0
	op := 0
	srcEnd := len(src)
	dstCap := len(dst)

	for {
		if ip >= srcEnd {
			if !isLast {
				return op, nil
			}

			return 0, errUnexpectedEOF
		}

		token := src[ip]
		ip++

		litLen := int(token >> 4)
		if litLen == 15 {
			for {
				if ip >= srcEnd {
					return 0, errUnexpectedEOF
				}
				b := src[ip]
				ip++
				litLen += int(b)
				if b != 255 {
					break
				}
			}
		}

		if ip+litLen > srcEnd {
			return 0, errUnexpectedEOF
		}
		if op+litLen > dstCap {
			if !failOnOverflow {
				return op, nil
			}

			return 0, errOutbuffFull
		}

		copy(dst[op:op+litLen], src[ip:ip+litLen])
		ip += litLen
		op += litLen

		if ip >= srcEnd {
			// Terminal literal-only sequence (LASTLITERALS): no match
			// follows the final token in a block.
			return op, nil
		}

		if ip+2 > srcEnd {
			return 0, errUnexpectedEOF
		}
		offset := int(getLE16(src[ip : ip+2]))
		ip += 2
		if offset == 0 {
			return 0, errData
		}

		matchLen := int(token & 0x0F)
		if matchLen == 15 {
			for {
				if ip >= srcEnd {
					return 0, errUnexpectedEOF
				}
				b := src[ip]
				ip++
				matchLen += int(b)
				if b != 255 {
					break
				}
			}
		}
		matchLen += minMatch

		if op+matchLen > dstCap {
			if !failOnOverflow {
				return op, nil
			}

			return 0, errOutbuffFull
		}

		matchStart := op - offset
		if matchStart < 0 {
			if dict == nil || -matchStart > len(dict) {
				return 0, errData
			}
			if err := copyFromDict(dst, dict, op, matchStart, matchLen); err != nil {
				return 0, err
			}
		} else {
			copyMatch(dst, op, matchStart, matchLen)
		}

		op += matchLen
	}
}

// copyMatch reproduces a back-reference of `length` bytes ending at
// dstPos+length, sourced from srcPos. When the reference overlaps its
// own output (srcPos+length > dstPos, i.e. offset < length) each byte
// must be written before it can be read back, so the copy runs byte by
// byte; otherwise it runs as a single bulk copy.
func copyMatch(dst []byte, dstPos, srcPos, length int) {
	if srcPos+length <= dstPos {
		copy(dst[dstPos:dstPos+length], dst[srcPos:srcPos+length])

		return
	}

	for i := 0; i < length; i++ {
		dst[dstPos+i] = dst[srcPos+i]
	}
}

// copyFromDict copies a match that starts before the output buffer
// (matchStart < 0, i.e. it references the external dictionary) and may
// cross the dictionary/output boundary, requiring a two-segment copy
//.
func copyFromDict(dst, dict []byte, dstPos, matchStart, length int) error {
	dictIdx := len(dict) + matchStart
	if dictIdx < 0 {
		return errData
	}

	fromDict := -matchStart
	if fromDict > length {
		fromDict = length
	}

	for i := 0; i < fromDict; i++ {
		dst[dstPos+i] = dict[dictIdx+i]
	}

	remaining := length - fromDict
	if remaining <= 0 {
		return nil
	}

	// The remainder references the output buffer itself, starting at
	// its beginning (matchStart + fromDict == 0).
	copyMatch(dst, dstPos+fromDict, 0, remaining)

	return nil
}
