package codec

import (
	"time"

	"github.com/coreframe/codec/internal/dispatch"
	"github.com/coreframe/codec/internal/options"
)

// Descriptor is the boundary record between caller and core: created by the caller, mutated by the
// core during a single compress or decompress call, discarded when
// the call returns.
type Descriptor struct {
	Input  []byte
	Output []byte

	Codec         ID
	Level         int
	ExtraParam    int
	MemLimitBytes int64
	OptLevel      dispatch.OptLevel

	// Observed fields, set by the core after the call completes.
	ObservedInputSize  int
	ObservedOutputSize int
	CompressDuration   time.Duration
	DecompressDuration time.Duration
}

// Option configures a Descriptor at construction time.
type Option = options.Option[*Descriptor]

// NewDescriptor builds a Descriptor for id, clamping Level and filling
// ExtraParam with the codec's default before applying opts.
func NewDescriptor(id ID, input, output []byte, opts ...Option) (*Descriptor, error) {
	reg := dispatch.Global()
	reg.Setup(false, dispatch.OptReference, false)

	d := &Descriptor{
		Input:      input,
		Output:     output,
		Codec:      id,
		Level:      id.ClampLevel(0),
		ExtraParam: id.DefaultExtraParam(),
		OptLevel:   reg.OptLevel(),
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// WithLevel overrides the descriptor's level, clamped to the codec's
// supported range.
func WithLevel(level int) Option {
	return options.NoError(func(d *Descriptor) {
		d.Level = d.Codec.ClampLevel(level)
	})
}

// WithExtraParam overrides the codec's extra tuning parameter (LZ4
// acceleration being the motivating case).
func WithExtraParam(extra int) Option {
	return options.NoError(func(d *Descriptor) {
		d.ExtraParam = extra
	})
}

// WithMemLimit records a memory limit on the descriptor; zero means
// unlimited. No codec in this package reads the limit.
func WithMemLimit(limit int64) Option {
	return options.NoError(func(d *Descriptor) {
		d.MemLimitBytes = limit
	})
}

// timeit runs fn and records its wall-clock duration into dst.
func timeit(dst *time.Duration, fn func() error) error {
	start := time.Now()
	err := fn()
	*dst = time.Since(start)

	return err
}
