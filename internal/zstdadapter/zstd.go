// Package zstdadapter implements the Zstandard adapter: a pure-Go
// path backed by github.com/klauspost/compress/zstd for cgo-free
// builds, and a cgo path backed by github.com/valyala/gozstd's
// libzstd bindings when cgo is available, selected by build tags
// (zstd_pure.go / zstd_cgo.go). The entropy coder and frame format
// internals of Zstandard stay out of scope — both paths delegate
// entirely to their underlying library.
package zstdadapter

import "github.com/coreframe/codec/errs"

// clampLevel clamps a level parameter to the adapter's supported
// range, shared by both build variants.
func clampLevel(level, min, max, def int) int {
	if level == 0 {
		return def
	}
	if level < min {
		return def
	}
	if level > max {
		return max
	}

	return level
}

func wrapDecodeErr(err error) error {
	if err == nil {
		return nil
	}

	return errs.ErrData
}
