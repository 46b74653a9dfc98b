package rap

import (
	"encoding/binary"

	"github.com/coreframe/codec/codec"
	"github.com/coreframe/codec/errs"
	"github.com/coreframe/codec/internal/lz4block"
	"github.com/coreframe/codec/internal/zlibadapter"
)

// supportedRAPCodecs are the codecs with a multi-worker partition
// layout. Every other codec id still compresses correctly through this
// package — Compress silently runs a single-thread plan for them.
var supportedRAPCodecs = map[codec.ID]bool{
	codec.LZ4:  true,
	codec.Zlib: true,
}

// Compress runs the RAP pipeline end to end: plan
// partitions, fork workers, splice the results, and emit the header.
// threads <= 1, an id outside supportedRAPCodecs, or a plan that folds
// back to one window all produce the same single-partition RAP frame,
// which is still valid RAP framing with Threads == 1.
func Compress(id codec.ID, data []byte, threads int) ([]byte, error) {
	if !supportedRAPCodecs[id] {
		threads = 1
	}

	plan := PlanPartitions(id, len(data), 0, threads)

	switch id {
	case codec.LZ4:
		return compressLZ4(plan, data)
	case codec.Zlib:
		return compressZlib(plan, data)
	default:
		return compressGeneric(plan, data, id)
	}
}

func compressGeneric(plan Plan, data []byte, id codec.ID) ([]byte, error) {
	c, err := codec.CreateCodec(id, "rap")
	if err != nil {
		return nil, err
	}

	w := plan.Windows[0]
	out, err := c.Compress(data[w.Start:w.End])
	if err != nil {
		return nil, err
	}

	return emitHeader([][]byte{out}, []int{w.End - w.Start}), nil
}

func compressLZ4(plan Plan, data []byte) ([]byte, error) {
	results := runFork(len(plan.Windows), func(i int) workerResult {
		w := plan.Windows[i]
		isLast := i == len(plan.Windows)-1

		dst := make([]byte, w.BoundSize)
		n, tail, err := lz4block.CompressBlockForPartition(data[w.Start:w.End], dst, 1, isLast)
		if err != nil {
			return workerResult{err: err}
		}

		return workerResult{compressed: dst[:n], tail: tail, decompressed: w.End - w.Start}
	})
	if err := firstErr(results); err != nil {
		return nil, err
	}

	blocks := make([][]byte, len(results))
	tails := make([][]byte, len(results))
	decompSizes := make([]int, len(results))
	for i, r := range results {
		blocks[i] = r.compressed
		tails[i] = r.tail
		// spliceLZ4 moves each withheld tail into the next block, so a
		// block decodes to the previous tail plus its own partition
		// minus its own tail.
		decompSizes[i] = r.decompressed - len(r.tail)
		if i > 0 {
			decompSizes[i] += len(results[i-1].tail)
		}
	}

	body, lengths := spliceLZ4(blocks, tails)

	return assembleFrame(body, lengths, decompSizes), nil
}

func compressZlib(plan Plan, data []byte) ([]byte, error) {
	results := runFork(len(plan.Windows), func(i int) workerResult {
		w := plan.Windows[i]
		isLast := i == len(plan.Windows)-1

		s, err := zlibadapter.NewPartitionStream(zlibDefaultLevel)
		if err != nil {
			return workerResult{err: err}
		}

		var out []byte
		if isLast {
			out, err = s.StepFinish(data[w.Start:w.End])
		} else {
			out, err = s.StepSyncFlush(data[w.Start:w.End])
		}
		if err != nil {
			return workerResult{err: err}
		}

		return workerResult{
			compressed:   out,
			checksum:     zlibadapter.Adler32(data[w.Start:w.End]),
			decompressed: w.End - w.Start,
		}
	})
	if err := firstErr(results); err != nil {
		return nil, err
	}

	header, err := zlibadapter.ZlibHeader(zlibDefaultLevel)
	if err != nil {
		return nil, err
	}

	// One zlib header wraps the whole spliced body: each
	// partition contributed a raw, headerless deflate block sequence,
	// so only the outer frame needs a single CMF/FLG pair and a single
	// combined Adler-32 trailer, not one per worker. The header is
	// attributed to partition 0's length and the trailer to the last
	// partition's, matching their physical placement in body so the
	// RAP header's offsets stay accurate.
	var body []byte
	lengths := make([]int, len(results))
	decompSizes := make([]int, len(results))

	var combined uint32
	for i, r := range results {
		before := len(body)
		if i == 0 {
			body = append(body, header[:]...)
		}
		body = append(body, r.compressed...)
		lengths[i] = len(body) - before
		decompSizes[i] = r.decompressed

		if i == 0 {
			combined = r.checksum
		} else {
			combined = combineAdler32(combined, r.checksum, int64(r.decompressed))
		}
	}

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], combined)
	body = append(body, trailer[:]...)
	lengths[len(lengths)-1] += len(trailer)

	return assembleFrame(body, lengths, decompSizes), nil
}

const zlibDefaultLevel = 6

// assembleFrame wraps a spliced body with the RAP header: total length, then one (offset, length, decomp)
// triple per partition in insertion order.
func assembleFrame(body []byte, lengths, decompSizes []int) []byte {
	return emitHeaderFromLengths(body, lengths, decompSizes)
}

func emitHeader(blocks [][]byte, decompSizes []int) []byte {
	var body []byte
	lengths := make([]int, len(blocks))
	for i, b := range blocks {
		lengths[i] = len(b)
		body = append(body, b...)
	}

	return emitHeaderFromLengths(body, lengths, decompSizes)
}

func emitHeaderFromLengths(body []byte, lengths, decompSizes []int) []byte {
	headerSize := 4 + len(lengths)*headerEntrySize
	out := make([]byte, headerSize+len(body))

	offset := headerSize
	pos := 4
	for i, l := range lengths {
		binary.LittleEndian.PutUint32(out[pos:], uint32(offset))
		binary.LittleEndian.PutUint32(out[pos+4:], uint32(l))
		binary.LittleEndian.PutUint32(out[pos+8:], uint32(decompSizes[i]))
		pos += headerEntrySize
		offset += l
	}
	binary.LittleEndian.PutUint32(out, uint32(headerSize))
	copy(out[headerSize:], body)

	return out
}

// Header is a parsed RAP header.
type Header struct {
	TotalLength int
	Partitions  []PartitionEntry
}

// PartitionEntry is one per-thread triple from the RAP header.
type PartitionEntry struct {
	Offset, Length, Decompressed int
}

// ParseHeader reads the RAP header prefixing data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < 4 {
		return Header{}, errs.ErrUnexpectedEOF
	}

	totalLength := int(binary.LittleEndian.Uint32(data))
	if totalLength < 4 || totalLength > len(data) {
		return Header{}, errs.ErrData
	}

	n := (totalLength - 4) / headerEntrySize
	entries := make([]PartitionEntry, n)
	pos := 4
	for i := 0; i < n; i++ {
		entries[i] = PartitionEntry{
			Offset:       int(binary.LittleEndian.Uint32(data[pos:])),
			Length:       int(binary.LittleEndian.Uint32(data[pos+4:])),
			Decompressed: int(binary.LittleEndian.Uint32(data[pos+8:])),
		}
		pos += headerEntrySize
	}

	return Header{TotalLength: totalLength, Partitions: entries}, nil
}

// Decompress parses the header, then decodes each partition's block
// independently (in parallel when there is more than one) into its
// correct position in the output. A partition that
// is not the last is decoded with isLastThread=false so the LZ4
// decoder skips its LASTLITERALS check against a token that may look
// truncated at the splice boundary.
//
// Zlib is the one exception: a RAP-framed Zlib body is a single
// deflate bitstream split into byte-aligned blocks, not
// a sequence of independently headered blocks the way LZ4's are, so
// per-partition bytes are not separately decodable — only the whole
// body is. Real parallel-deflate tools have the same constraint (they
// parallelize compression, never decompression), so Zlib here always
// decodes the spliced body sequentially regardless of partition count.
func Decompress(id codec.ID, data []byte) ([]byte, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if id == codec.Zlib {
		return zlibadapter.DecompressOneShot(data[hdr.TotalLength:])
	}

	total := 0
	for _, p := range hdr.Partitions {
		total += p.Decompressed
	}
	out := make([]byte, total)

	results := runFork(len(hdr.Partitions), func(i int) workerResult {
		p := hdr.Partitions[i]
		block := data[p.Offset : p.Offset+p.Length]
		isLast := i == len(hdr.Partitions)-1

		var dst []byte
		var n int
		var err error

		switch id {
		case codec.LZ4:
			dst = make([]byte, p.Decompressed)
			n, err = lz4block.UncompressBlockWithDict(block, dst, nil, isLast)
		default:
			dst, err = decodeGenericPartition(id, block)
			n = len(dst)
		}
		if err != nil {
			return workerResult{err: err}
		}

		return workerResult{compressed: dst[:n], decompressed: n}
	})
	if err := firstErr(results); err != nil {
		return nil, err
	}

	pos := 0
	for i, r := range results {
		copy(out[pos:], r.compressed)
		pos += hdr.Partitions[i].Decompressed
	}

	return out, nil
}

func decodeGenericPartition(id codec.ID, block []byte) ([]byte, error) {
	c, err := codec.CreateCodec(id, "rap")
	if err != nil {
		return nil, err
	}

	return c.Decompress(block)
}
