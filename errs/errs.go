// Package errs defines the sentinel error taxonomy shared by every codec
// and framing component in this module.
//
// Each sentinel corresponds to exactly one error Kind. Components return these sentinels directly, or wrap them with
// fmt.Errorf("...: %w", errs.ErrX) to attach context; callers compare
// with errors.Is rather than string matching.
package errs

import "errors"

// Kind classifies an error into the closed taxonomy surfaced alongside
// each codec's native error codes.
type Kind int

const (
	KindOK Kind = iota
	KindSequenceError
	KindParamError
	KindMemError
	KindDataError
	KindMagicError
	KindIOError
	KindUnexpectedEOF
	KindOutbuffFull
	KindConfigError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindSequenceError:
		return "sequence-error"
	case KindParamError:
		return "param-error"
	case KindMemError:
		return "mem-error"
	case KindDataError:
		return "data-error"
	case KindMagicError:
		return "magic-error"
	case KindIOError:
		return "io-error"
	case KindUnexpectedEOF:
		return "unexpected-eof"
	case KindOutbuffFull:
		return "outbuff-full"
	case KindConfigError:
		return "config-error"
	default:
		return "unknown"
	}
}

var (
	// ErrSequence is returned when an action is inconsistent with the
	// current state of a streaming handle (Bzip2 state machine, RAP
	// worker lifecycle).
	ErrSequence = errors.New("action inconsistent with current state")

	// ErrParam is returned for invalid arguments: null buffers,
	// out-of-range levels, unaligned sizes.
	ErrParam = errors.New("invalid parameter")

	// ErrMem is returned when an allocation could not be satisfied
	// (e.g. a caller-supplied allocator callback failed).
	ErrMem = errors.New("allocation failed")

	// ErrData is returned for corrupt compressed input: an invalid
	// token, a failed checksum, an impossible back-reference offset.
	ErrData = errors.New("corrupt compressed data")

	// ErrMagic is returned when a stream does not begin with the
	// expected magic bytes for its codec.
	ErrMagic = errors.New("unexpected stream magic")

	// ErrIO is returned when an underlying I/O callback fails.
	ErrIO = errors.New("underlying I/O failed")

	// ErrUnexpectedEOF is returned when a stream ends before its
	// logical end-of-stream marker.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrOutbuffFull is returned when a one-shot call's output buffer
	// is too small to hold the result.
	ErrOutbuffFull = errors.New("output buffer too small")

	// ErrConfig is returned when a setup-time sanity check fails
	// (mis-registered codec, invalid dispatch table).
	ErrConfig = errors.New("library mis-configured")

	// ErrUnsupportedCodec is returned by factory functions for an
	// unrecognized codec identifier.
	ErrUnsupportedCodec = errors.New("unsupported codec")
)

// kindBySentinel lets callers recover the Kind of a wrapped sentinel
// without re-deriving it by hand at every call site.
var kindBySentinel = map[error]Kind{
	ErrSequence:         KindSequenceError,
	ErrParam:            KindParamError,
	ErrMem:              KindMemError,
	ErrData:             KindDataError,
	ErrMagic:            KindMagicError,
	ErrIO:               KindIOError,
	ErrUnexpectedEOF:    KindUnexpectedEOF,
	ErrOutbuffFull:      KindOutbuffFull,
	ErrConfig:           KindConfigError,
	ErrUnsupportedCodec: KindParamError,
}

// KindOf maps an error produced by this module onto its Kind. It walks
// the error chain with errors.Is against each registered sentinel, so
// wrapped errors classify the same as their sentinel. Errors with no
// registered sentinel classify as KindDataError, the most common
// external-input failure mode.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}

	for sentinel, kind := range kindBySentinel {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return KindDataError
}
