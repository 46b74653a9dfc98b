package bzip2stream

import (
	"bytes"

	dsbzip2 "github.com/dsnet/compress/bzip2"
)

// EncodeStream is the encoder half of the Bzip2 streaming handle. Each
// FLUSH or FINISH closes out the current dsnet bzip2.Writer, producing
// one complete, independently valid bzip2 stream, and appends it
// directly to the pending output: back-to-back bzip2 streams are
// already self-delimiting (each carries its own header magic and
// per-stream footer), and compress/bzip2's reader follows that chain
// across stream boundaries on its own, so DecodeStream needs no
// proprietary framing to walk the segment sequence back out.
type EncodeStream struct {
	state         State
	blockSize100k int
	workFactor    int // retained for API parity; dsnet has no fallback-sorter knob to forward it to.

	totalIn  uint64
	totalOut uint64

	sink    bytes.Buffer
	inner   *dsbzip2.Writer
	pending []byte
}

// NewEncodeStream constructs an encoder handle already in the RUNNING
// state, mirroring BZ2_bzCompressInit transitioning straight into
// RUNNING.
func NewEncodeStream(blockSize100k, workFactor int) *EncodeStream {
	s := &EncodeStream{
		state:         StateRunning,
		blockSize100k: clampBlockSize100k(blockSize100k),
		workFactor:    clampWorkFactor(workFactor),
	}
	s.resetInner()

	return s
}

func (s *EncodeStream) resetInner() {
	s.sink.Reset()
	s.inner, _ = dsbzip2.NewWriterLevel(&s.sink, s.blockSize100k)
}

// State returns the encoder's current position in the state machine.
func (s *EncodeStream) State() State { return s.state }

// Totals returns the running input/output byte counts as two 32-bit
// halves each, matching the public bzip2 handle's lo/hi fields.
func (s *EncodeStream) Totals() (inLo, inHi, outLo, outHi uint32) {
	return uint32(s.totalIn), uint32(s.totalIn >> 32), uint32(s.totalOut), uint32(s.totalOut >> 32)
}

func (s *EncodeStream) drain(out []byte) int {
	n := copy(out, s.pending)
	s.pending = s.pending[n:]
	s.totalOut += uint64(n)

	return n
}

func (s *EncodeStream) closeSegment() error {
	if err := s.inner.Close(); err != nil {
		return err
	}

	s.pending = append(s.pending, s.sink.Bytes()...)
	s.resetInner()

	return nil
}

// Compress advances the state machine by one action. It
// consumes as much of in as the current action allows, writes produced
// bytes into out, and returns (consumed, produced, status, err).
//
// err is non-nil only for errs.ErrSequence (illegal (state, action)
// pair) or an underlying codec failure; legal transitions always
// return a Status describing the outcome even when more calls are
// needed to finish a FLUSH or FINISH.
func (s *EncodeStream) Compress(action Action, in, out []byte) (consumed, produced int, status Status, err error) {
	switch s.state {
	case StateIdle:
		return 0, 0, 0, errSequence

	case StateRunning:
		switch action {
		case ActionRun:
			n, werr := s.inner.Write(in)
			s.totalIn += uint64(n)
			if werr != nil {
				return n, 0, 0, werr
			}

			return n, s.drain(out), StatusRunOK, nil
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

	// Shared tail for FLUSHING/FINISHING: consume remaining input, and
	// once it is drained, close out the current segment.
	n, werr := s.inner.Write(in)
	s.totalIn += uint64(n)
	if werr != nil {
		return n, 0, 0, werr
	}

	inputDrained := n == len(in)
	if inputDrained {
		if err := s.closeSegment(); err != nil {
			return n, 0, 0, err
		}
	}

	produced = s.drain(out)
	outputEmpty := len(s.pending) == 0

	switch s.state {
	case StateFlushing:
		if inputDrained && outputEmpty {
			s.state = StateRunning

			return n, produced, StatusRunOK, nil
		}

		return n, produced, StatusFlushOK, nil

	case StateFinishing:
		if inputDrained && outputEmpty {
			s.state = StateIdle

			return n, produced, StatusStreamEnd, nil
		}

		return n, produced, StatusFinishOK, nil
	}

	return n, produced, StatusRunOK, nil
}
