package lz4block

// skipTrigger controls how quickly the match finder accelerates past
// low-match regions: the number of consecutive failed probes is
// right-shifted by this factor to compute the next skip distance.
const skipTrigger = 6

// CompressBlock compresses src into dst using the LZ4 block format and
// returns the number of bytes written. acceleration is clamped into
// [1, 65537]; higher values trade ratio for speed by widening the skip
// distance on failed probes.
//
// Returns errs.ErrOutbuffFull if dst is too small for the worst case
// written so far, and errs.ErrParam if srcLen falls outside
// [0, 2GiB-1].
func CompressBlock(src, dst []byte, acceleration int) (int, error) {
	return compressFrom(src, 0, dst, acceleration)
}

// CompressBlockWithDict compresses src so that it may reference content
// in dict as if dict immediately preceded src in memory. dict is not
// itself emitted to dst.
func CompressBlockWithDict(src, dst, dict []byte, acceleration int) (int, error) {
	if len(dict) == 0 {
		return CompressBlock(src, dst, acceleration)
	}

	combined := make([]byte, 0, len(dict)+len(src))
	combined = append(combined, dict...)
	combined = append(combined, src...)

	return compressFrom(combined, len(dict), dst, acceleration)
}

// CompressBlockForPartition compresses a RAP worker's partition.
// A non-last partition never writes a final literal-only token: instead
// it returns the bytes that token would have carried as tail, so the
// splice step can fold them into the next partition's
// first token instead of terminating this block on its own. The last
// partition in a plan behaves exactly like CompressBlock.
func CompressBlockForPartition(src, dst []byte, acceleration int, isLastPartition bool) (n int, tail []byte, err error) {
	return compressPartition(src, 0, dst, acceleration, isLastPartition)
}

// compressFrom runs the match finder over window, emitting tokens only
// for the bytes from `start` onward; bytes before `start` (a prefix or
// external dictionary) seed the hash table but are never themselves
// written to dst. This single code path serves both CompressBlock
// (start == 0) and CompressBlockWithDict (start == len(dict)).
func compressFrom(window []byte, start int, dst []byte, acceleration int) (int, error) {
	n, _, err := compressPartition(window, start, dst, acceleration, true)

	return n, err
}

func compressPartition(window []byte, start int, dst []byte, acceleration int, isLastPartition bool) (n int, tail []byte, err error) {
	srcLen := len(window) - start
	if srcLen == 0 {
		if len(dst) < 1 {
			return 0, nil, errOutbuffFull
		}
		dst[0] = 0

		return 1, nil, nil
	}
	if srcLen < 0 || len(window) > 0x7FFFFFFF {
		return 0, nil, errParam
	}

	acceleration = clampAccel(acceleration)
	tbl := newTable(len(window), start > 0)

	// Seed the table with the dictionary/prefix region so the first
	// real search can immediately find cross-boundary matches.
	for p := 0; p+4 <= start; p++ {
		tbl.put(hash4(le32(window[p:p+4]), hashLog), int32(p))
	}

	end := len(window)
	anchor := start
	ip := start
	mfLimitPos := end - mfLimit
	if mfLimitPos < start {
		mfLimitPos = start
	}

	di := 0
	writeByte := func(b byte) bool {
		if di >= len(dst) {
			return false
		}
		dst[di] = b
		di++

		return true
	}
	writeBytes := func(b []byte) bool {
		if di+len(b) > len(dst) {
			return false
		}
		di += copy(dst[di:di+len(b)], b)

		return true
	}
	writeLength := func(l int) bool {
		for l >= 255 {
			if !writeByte(255) {
				return false
			}
			l -= 255
		}

		return writeByte(byte(l))
	}

	if mfLimitPos > start {
		searchMatchNb := acceleration << skipTrigger

		for ip < mfLimitPos {
			candidate := ip
			found := false
			matchPos := 0

			for {
				if candidate >= mfLimitPos {
					break
				}

				h := hash4(le32(window[candidate:candidate+4]), hashLog)
				pos := tbl.get(h)
				tbl.put(h, int32(candidate))

				if pos != noPosition && candidate-int(pos) <= maxDistance &&
					le32(window[pos:pos+4]) == le32(window[candidate:candidate+4]) {
					matchPos = int(pos)
					found = true
					ip = candidate

					break
				}

				step := searchMatchNb >> skipTrigger
				if step < 1 {
					step = 1
				}
				searchMatchNb += acceleration
				candidate += step
			}

			if !found {
				break
			}

			// Extend the match backwards toward the anchor.
			for ip > anchor && matchPos > start && window[ip-1] == window[matchPos-1] {
				ip--
				matchPos--
			}

			litLen := ip - anchor

			// Extend the match forwards, stopping short of LASTLITERALS.
			matchLimit := end - lastLiterals
			mEnd := ip + minMatch
			mPos := matchPos + minMatch
			for mEnd < matchLimit && window[mEnd] == window[mPos] {
				mEnd++
				mPos++
			}
			matchLen := mEnd - ip
			encodedMatchLen := matchLen - minMatch
			offset := ip - matchPos

			litNibble := litLen
			if litNibble > 15 {
				litNibble = 15
			}
			matchNibble := encodedMatchLen
			if matchNibble > 15 {
				matchNibble = 15
			}

			if !writeByte(byte(litNibble<<4 | matchNibble)) {
				return 0, nil, errOutbuffFull
			}
			if litLen >= 15 && !writeLength(litLen-15) {
				return 0, nil, errOutbuffFull
			}
			if !writeBytes(window[anchor:ip]) {
				return 0, nil, errOutbuffFull
			}
			if offset < 1 || offset > maxDistance {
				return 0, nil, errData
			}
			if !writeByte(byte(offset)) || !writeByte(byte(offset >> 8)) {
				return 0, nil, errOutbuffFull
			}
			if encodedMatchLen >= 15 && !writeLength(encodedMatchLen-15) {
				return 0, nil, errOutbuffFull
			}

			anchor = mEnd
			ip = mEnd
		}
	}

	// LASTLITERALS: the remaining bytes are always a literal-only run.
	// A non-last RAP partition withholds this run instead of terminating
	// its own block with it, so the splice step can fold it into the
	// next partition's first token.
	if !isLastPartition {
		return di, append([]byte(nil), window[anchor:end]...), nil
	}

	finalLen := end - anchor
	finalNibble := finalLen
	if finalNibble > 15 {
		finalNibble = 15
	}
	if !writeByte(byte(finalNibble << 4)) {
		return 0, nil, errOutbuffFull
	}
	if finalLen >= 15 && !writeLength(finalLen-15) {
		return 0, nil, errOutbuffFull
	}
	if !writeBytes(window[anchor:end]) {
		return 0, nil, errOutbuffFull
	}

	return di, nil, nil
}
