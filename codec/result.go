package codec

import "github.com/coreframe/codec/errs"

// Result carries a Descriptor call's outcome across the boundary
// between a caller and the core the way a C-ABI status code would:
// instead of forcing every caller to re-derive a Kind from an error
// chain, RunCompress/RunDecompress fill one in alongside the error
// itself.
type Result struct {
	Kind errs.Kind
	Err  error
}

// OK reports whether the call completed without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// RunCompress runs c.Compress against d.Input, stores the newly
// allocated result in *dst (d.Output is not written), records elapsed
// time into d.CompressDuration, and classifies the outcome into a
// Result.
func RunCompress(d *Descriptor, c Compressor, dst *[]byte) Result {
	var out []byte
	err := timeit(&d.CompressDuration, func() error {
		var innerErr error
		out, innerErr = c.Compress(d.Input)

		return innerErr
	})
	if err == nil {
		*dst = out
		d.ObservedInputSize = len(d.Input)
		d.ObservedOutputSize = len(out)
	}

	return Result{Kind: errs.KindOf(err), Err: err}
}

// RunDecompress is RunCompress's mirror for the decode direction.
func RunDecompress(d *Descriptor, c Decompressor, dst *[]byte) Result {
	var out []byte
	err := timeit(&d.DecompressDuration, func() error {
		var innerErr error
		out, innerErr = c.Decompress(d.Input)

		return innerErr
	})
	if err == nil {
		*dst = out
		d.ObservedInputSize = len(d.Input)
		d.ObservedOutputSize = len(out)
	}

	return Result{Kind: errs.KindOf(err), Err: err}
}
