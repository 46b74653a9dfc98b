// Package rap implements the RAP ("Randomly Accessible Partitions")
// parallel framing layer: it splits an input buffer across
// worker goroutines, runs each partition through a single-threaded
// codec, and splices the results back into one stream that remains
// decodable in whole or in part by that codec's sequential decoder.
package rap

import "github.com/coreframe/codec/codec"

// minWindowByCodec is the smallest partition window accepted for a
// codec before the plan folds back to a single thread; below
// this a partition can't amortize a worker's own framing overhead.
var minWindowByCodec = map[codec.ID]int{
	codec.LZ4:  4 << 10,
	codec.Zlib: 4 << 10,
}

// headerEntrySize is the encoded size of one per-thread RAP header
// entry: partition_offset, partition_length, partition_decomp, each a
// uint32.
const headerEntrySize = 12

// margin is the extra slack, beyond the codec's own compress-bound,
// reserved per partition's staging buffer to absorb the
// splice step's token-folding growth.
const margin = 64

// Plan is the output of PlanPartitions: a partitioning of an input of
// length N into one or more contiguous, non-overlapping windows.
type Plan struct {
	ID       codec.ID
	Threads  int
	Windows  []Window
	Parallel bool // false when the plan folded back to one worker
}

// Window is one worker's contiguous slice of the input.
type Window struct {
	Start, End int // [Start, End) into the original input
	BoundSize  int // staging buffer size this window's compressor needs
}

// PlanPartitions decides, given an input length n, an output capacity
// m, and a caller-requested thread count threads, whether to partition
// in parallel or fall back to a single thread.
func PlanPartitions(id codec.ID, n, m, threads int) Plan {
	w := minWindowByCodec[id]
	if w == 0 {
		w = 4 << 10
	}

	if threads < 1 {
		threads = 1
	}

	if threads == 1 || n < w*threads || !fitsHeader(id, n, m, threads) {
		return Plan{
			ID:      id,
			Threads: 1,
			Windows: []Window{{Start: 0, End: n, BoundSize: compressBound(id, n) + margin}},
		}
	}

	commonSize := alignUp(id, (n+threads-1)/threads)
	windows := make([]Window, 0, threads)

	start := 0
	for t := 0; t < threads-1; t++ {
		end := start + commonSize
		if end > n {
			end = n
		}
		windows = append(windows, Window{Start: start, End: end, BoundSize: compressBound(id, end-start) + margin})
		start = end
	}
	windows = append(windows, Window{Start: start, End: n, BoundSize: compressBound(id, n-start) + margin})

	return Plan{ID: id, Threads: threads, Windows: windows, Parallel: true}
}

// fitsHeader checks that the output capacity can hold the worst-case
// expansion of every partition plus a RAP header of `threads` entries
//.
func fitsHeader(id codec.ID, n, m, threads int) bool {
	if m <= 0 {
		return true // caller is using a growable buffer; no capacity check
	}

	headerSize := 4 + threads*headerEntrySize

	return headerSize+compressBound(id, n)+threads*margin <= m
}

// alignUp rounds size up to the codec's natural block alignment; LZ4
// and Zlib have no hard alignment requirement, so this is a no-op
// reserved for codecs that gain one later.
func alignUp(id codec.ID, size int) int {
	return size
}

// compressBound returns the codec's worst-case compressed size for an
// input of n bytes.
func compressBound(id codec.ID, n int) int {
	switch id {
	case codec.LZ4, codec.LZ4HC:
		return n + (n+254)/255 + 16
	case codec.Zlib:
		return n + n/12 + n/14 + n/25 + 13
	default:
		return n + n/2 + 64
	}
}
