// Package zlibadapter implements the Zlib/Deflate adapter: a thin
// one-shot and streaming wrapper around the standard library's
// compress/zlib, which is itself the ecosystem-standard Go
// implementation of RFC 1950/1951 — no repo in the example corpus
// reimplements Deflate, so this is the one adapter that reaches for
// the standard library directly rather than a third-party codec.
package zlibadapter

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"hash/adler32"
	"io"

	"github.com/coreframe/codec/errs"
)

// Flush selects a streaming flush mode.
type Flush int

const (
	NoFlush Flush = iota
	SyncFlush
	Finish
)

// CompressOneShot deflates data at the given level (zlib's own
// level range, clamped by the caller via the façade).
func CompressOneShot(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecompressOneShot inflates a zlib stream.
func DecompressOneShot(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.ErrMagic
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.ErrData
	}

	return out, nil
}

// Stream is the streaming half of the adapter.
// Go's zlib.Writer has no explicit SYNC_FLUSH primitive exposed
// through a single call that also reports whether more output is
// pending, so Stream buffers produced bytes and drains them to the
// caller-provided destination across calls, the same shape as
// bzip2stream's handles.
type Stream struct {
	buf     bytes.Buffer
	w       *zlib.Writer
	pending []byte
}

// NewStream creates a streaming deflate handle at the given level.
func NewStream(level int) (*Stream, error) {
	s := &Stream{}
	w, err := zlib.NewWriterLevel(&s.buf, level)
	if err != nil {
		return nil, err
	}
	s.w = w

	return s, nil
}

// Step writes in through the deflator, and for SyncFlush/Finish drains
// the writer so the produced bytes are available immediately.
func (s *Stream) Step(flush Flush, in []byte, out []byte) (consumed, produced int, err error) {
	if _, err := s.w.Write(in); err != nil {
		return 0, 0, err
	}

	switch flush {
	case SyncFlush:
		if err := s.w.Flush(); err != nil {
			return len(in), 0, err
		}
	case Finish:
		if err := s.w.Close(); err != nil {
			return len(in), 0, err
		}
	}

	s.pending = append(s.pending, s.buf.Bytes()...)
	s.buf.Reset()

	n := copy(out, s.pending)
	s.pending = s.pending[n:]

	return len(in), n, nil
}

// Adler32 returns the Adler-32 checksum of data alone (it keeps no
// running state); the RAP splice step combines the per-partition
// values.
func Adler32(data []byte) uint32 {
	return adler32.Checksum(data)
}

// ZlibHeader returns the 2-byte CMF/FLG header stdlib's zlib writer
// would emit at the given level. A RAP-framed Zlib stream
// wraps exactly one such header around the whole spliced body, rather
// than one per partition, so this is derived once rather than copied
// out of each worker's own stream.
func ZlibHeader(level int) ([2]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return [2]byte{}, err
	}
	if err := w.Close(); err != nil {
		return [2]byte{}, err
	}

	var hdr [2]byte
	copy(hdr[:], buf.Bytes()[:2])

	return hdr, nil
}

// PartitionStream is a RAP worker's raw-deflate (RFC 1951, no zlib
// wrapper) streaming handle. Concatenating the byte-aligned output of
// several independent PartitionStreams — each flushed with
// StepSyncFlush except the last, which is finished with StepFinish —
// produces one continuous, valid deflate block sequence, the same
// trick pigz and similar parallel-gzip tools use: only the BFINAL bit
// of the very last deflate block may be set, and only the first
// worker's caller needs the outer zlib header, attached once rather
// than per partition.
type PartitionStream struct {
	buf bytes.Buffer
	w   *flate.Writer
}

// NewPartitionStream creates a raw-deflate partition handle at level.
func NewPartitionStream(level int) (*PartitionStream, error) {
	s := &PartitionStream{}
	w, err := flate.NewWriter(&s.buf, level)
	if err != nil {
		return nil, err
	}
	s.w = w

	return s, nil
}

// StepSyncFlush writes in and flushes to a byte boundary without
// closing the deflate block sequence.
func (s *PartitionStream) StepSyncFlush(in []byte) ([]byte, error) {
	if _, err := s.w.Write(in); err != nil {
		return nil, err
	}
	if err := s.w.Flush(); err != nil {
		return nil, err
	}

	out := append([]byte(nil), s.buf.Bytes()...)
	s.buf.Reset()

	return out, nil
}

// StepFinish writes in and closes the deflate block sequence,
// emitting the final BFINAL-marked block.
func (s *PartitionStream) StepFinish(in []byte) ([]byte, error) {
	if _, err := s.w.Write(in); err != nil {
		return nil, err
	}
	if err := s.w.Close(); err != nil {
		return nil, err
	}

	out := append([]byte(nil), s.buf.Bytes()...)
	s.buf.Reset()

	return out, nil
}
