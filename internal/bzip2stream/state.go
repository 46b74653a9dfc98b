// Package bzip2stream implements the Bzip2 streaming state machine:
// the RUN/FLUSH/FINISH/IDLE transition rules exposed at the API
// boundary, over caller-supplied input/output buffers. The Burrows-
// Wheeler transform, move-to-front, and Huffman coding stay out of
// scope — they are provided by github.com/dsnet/compress/bzip2 on the
// encode side and the standard library's compress/bzip2 on the
// decode side (the standard library has no bzip2 writer, which is
// exactly why the encode half needs a third-party codec).
package bzip2stream

import "github.com/coreframe/codec/errs"

// Action is the action code a caller passes to a Compress call.
type Action int

const (
	ActionRun Action = iota
	ActionFlush
	ActionFinish
)

// State is a position in the RUN/FLUSH/FINISH/IDLE state machine.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFlushing
	StateFinishing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateFlushing:
		return "FLUSHING"
	case StateFinishing:
		return "FINISHING"
	default:
		return "UNKNOWN"
	}
}

// Status is the per-call result reported alongside the new State.
type Status int

const (
	StatusRunOK Status = iota
	StatusFlushOK
	StatusFinishOK
	StatusStreamEnd
)

func (s Status) String() string {
	switch s {
	case StatusRunOK:
		return "run-ok"
	case StatusFlushOK:
		return "flush-ok"
	case StatusFinishOK:
		return "finish-ok"
	case StatusStreamEnd:
		return "stream-end"
	default:
		return "unknown"
	}
}

// clampBlockSize100k maps an out-of-range block size to the nearest
// legal value in [1, 9].
func clampBlockSize100k(n int) int {
	if n < 1 {
		return 1
	}
	if n > 9 {
		return 9
	}

	return n
}

// clampWorkFactor maps 0 to the documented default of 30 and clamps
// the legal range [0, 250].
func clampWorkFactor(n int) int {
	if n == 0 {
		return 30
	}
	if n < 0 {
		return 0
	}
	if n > 250 {
		return 250
	}

	return n
}

var errSequence = errs.ErrSequence
