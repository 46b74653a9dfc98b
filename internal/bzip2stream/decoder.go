package bzip2stream

import (
	"bytes"
	stdbzip2 "compress/bzip2"
	"errors"
	"io"
)

// DecodeStream is the decoder half of the Bzip2 streaming handle. It
// feeds the raw, unframed byte stream produced by EncodeStream straight
// into the standard library's compress/bzip2 reader, which walks
// concatenated bzip2 streams on its own (re-checking for the stream
// magic after each footer) and does the BWT/MTF/Huffman decode.
type DecodeStream struct {
	state State
	small bool

	totalIn  uint64
	totalOut uint64

	raw     []byte // undecoded input bytes accumulated so far
	pending []byte // decoded bytes not yet delivered to caller
}

// NewDecodeStream constructs a decoder handle in the RUNNING state.
// small is stored for API parity with the reference handle; it does
// not change decoding, since compress/bzip2 has a single decoding
// variant and the flag is not passed to it.
func NewDecodeStream(small bool) *DecodeStream {
	return &DecodeStream{state: StateRunning, small: small}
}

func (s *DecodeStream) State() State { return s.state }

func (s *DecodeStream) Totals() (inLo, inHi, outLo, outHi uint32) {
	return uint32(s.totalIn), uint32(s.totalIn >> 32), uint32(s.totalOut), uint32(s.totalOut >> 32)
}

func (s *DecodeStream) drain(out []byte) int {
	n := copy(out, s.pending)
	s.pending = s.pending[n:]
	s.totalOut += uint64(n)

	return n
}

// decodeReady decodes everything buffered in s.raw as one chain of
// bzip2 streams and, only if the whole chain decodes, appends its
// plaintext to s.pending and empties s.raw. A trailing stream still
// being written by the encoder reads as io.ErrUnexpectedEOF once the
// bit reader runs out of input before reaching that stream's footer;
// that case means "wait for more bytes", not corruption, so nothing is
// appended (not even the complete streams before it) and s.raw is left
// untouched for the next call to decode again from its start.
func (s *DecodeStream) decodeReady() error {
	if len(s.raw) == 0 {
		return nil
	}

	r := stdbzip2.NewReader(bytes.NewReader(s.raw))
	decoded, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}

		return err
	}

	s.pending = append(s.pending, decoded...)
	s.raw = s.raw[:0]

	return nil
}

// Decompress advances the decoder's state machine by one action,
// mirroring EncodeStream.Compress.
func (s *DecodeStream) Decompress(action Action, in, out []byte) (consumed, produced int, status Status, err error) {
	switch s.state {
	case StateIdle:
		return 0, 0, 0, errSequence

	case StateRunning:
		switch action {
		case ActionRun:
			s.raw = append(s.raw, in...)
			s.totalIn += uint64(len(in))
			if err := s.decodeReady(); err != nil {
				return len(in), 0, 0, err
			}

			return len(in), s.drain(out), StatusRunOK, nil
		case ActionFlush:
			s.state = StateFlushing
		case ActionFinish:
			s.state = StateFinishing
		}

	case StateFlushing:
		if action != ActionFlush {
			return 0, 0, 0, errSequence
		}

	case StateFinishing:
		if action != ActionFinish {
			return 0, 0, 0, errSequence
		}
	}

	s.raw = append(s.raw, in...)
	s.totalIn += uint64(len(in))
	if err := s.decodeReady(); err != nil {
		return len(in), 0, 0, err
	}

	produced = s.drain(out)
	drained := len(s.raw) == 0 && len(s.pending) == 0

	switch s.state {
	case StateFlushing:
		if drained {
			s.state = StateRunning

			return len(in), produced, StatusRunOK, nil
		}

		return len(in), produced, StatusFlushOK, nil

	case StateFinishing:
		if drained {
			s.state = StateIdle

			return len(in), produced, StatusStreamEnd, nil
		}

		return len(in), produced, StatusFinishOK, nil
	}

	return len(in), produced, StatusRunOK, nil
}
