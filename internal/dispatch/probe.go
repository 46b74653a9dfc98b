// Package dispatch implements the process-wide CPU-feature probe and
// codec registry that the façade consults once per process before
// forwarding a compress/decompress call to a codec-specific engine.
package dispatch

import "golang.org/x/sys/cpu"

// OptLevel is the resolved optimization tier a codec engine should run
// at. It widens monotonically with the CPU features actually present.
type OptLevel int

const (
	// OptReference selects the portable, scalar code path.
	OptReference OptLevel = iota
	// OptSSE2 selects the SSE2 wide-copy path.
	OptSSE2
	// OptAVX selects the AVX wide-copy path.
	OptAVX
	// OptAVX2 selects the AVX2 wide-copy path.
	OptAVX2
	// OptAVX512 selects the AVX-512 wide-copy path.
	OptAVX512
)

func (l OptLevel) String() string {
	switch l {
	case OptReference:
		return "reference"
	case OptSSE2:
		return "sse2"
	case OptAVX:
		return "avx"
	case OptAVX2:
		return "avx2"
	case OptAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// ProbeCPU inspects the running CPU's feature bits (as surfaced by
// golang.org/x/sys/cpu, which itself reads identification leaves 1 and
// 7 and checks XGETBV for OS support of the wide register file on
// amd64) and returns the highest optimization level it can safely use.
//
// On non-x86 architectures cpu.X86 is a zero-value struct, so every
// feature test is false and ProbeCPU correctly reports OptReference.
func ProbeCPU() OptLevel {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW:
		return OptAVX512
	case cpu.X86.HasAVX2:
		return OptAVX2
	case cpu.X86.HasAVX:
		return OptAVX
	case cpu.X86.HasSSE2:
		return OptSSE2
	default:
		return OptReference
	}
}
