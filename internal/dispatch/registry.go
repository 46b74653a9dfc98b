package dispatch

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/coreframe/codec/internal/lz4block"
)

// Env var names recognized at setup time.
const (
	EnvDisableOpt  = "AOCL_DISABLE_OPT"
	EnvOptLevel    = "AOCL_ENABLE_INSTRUCTIONS"
	EnvLogVerbose  = "AOCL_ENABLE_LOG"
)

// LogLevel is the verbosity the registry logs diagnostics at.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogErr
	LogInfo
	LogDebug
	LogTrace
)

func parseLogLevel(s string) LogLevel {
	switch s {
	case "ERR":
		return LogErr
	case "INFO":
		return LogInfo
	case "DEBUG":
		return LogDebug
	case "TRACE":
		return LogTrace
	default:
		return LogNone
	}
}

func parseOptLevelEnv(s string) (OptLevel, bool) {
	switch s {
	case "SSE2":
		return OptSSE2, true
	case "AVX":
		return OptAVX, true
	case "AVX2":
		return OptAVX2, true
	case "AVX512":
		return OptAVX512, true
	default:
		return OptReference, false
	}
}

// FuncSet is the per-codec record of function pointers that a C-ABI
// dispatch table would hold as raw pointers. In Go these are simply
// closures; the registry stores one FuncSet per codec identifier so a
// codec's Compress/Decompress methods can resolve their engine
// indirectly through Lookup rather than calling it directly, leaving a
// seam where a future architecture-specific engine could be registered
// under the same name without changing any call site.
type FuncSet struct {
	Compress   func(src, dst []byte, level int) (int, error)
	Decompress func(src, dst []byte) (int, error)
}

// Registry is the process-wide, lazily-initialized codec dispatch
// table. The zero value is usable; Setup
// must be called (and succeed) before Lookup returns non-zero entries.
type Registry struct {
	mu       sync.Mutex
	once     sync.Once
	setupOK  atomic.Bool
	optLevel OptLevel
	logLevel LogLevel
	table    map[string]FuncSet
}

var global = &Registry{}

// Global returns the process-wide registry singleton.
func Global() *Registry { return global }

// Setup performs one-shot initialization of the optimization level
// honouring, in precedence order: explicit caller override, the
// disable-env-var, the fixed-level-env-var, then the CPU probe. It is
// idempotent: concurrent and repeated calls after the first succeed
// immediately without re-running the resolution logic.
func (r *Registry) Setup(optOff bool, optOverride OptLevel, hasOverride bool) {
	r.once.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.logLevel = parseLogLevel(os.Getenv(EnvLogVerbose))
		r.table = map[string]FuncSet{
			"lz4": {
				Compress:   lz4block.CompressBlock,
				Decompress: lz4block.UncompressBlockSafe,
			},
		}

		switch {
		case optOff:
			r.optLevel = OptReference
		case hasOverride:
			r.optLevel = optOverride
		case os.Getenv(EnvDisableOpt) == "ON":
			r.optLevel = OptReference
		default:
			if lvl, ok := parseOptLevelEnv(os.Getenv(EnvOptLevel)); ok {
				r.optLevel = lvl
			} else {
				r.optLevel = ProbeCPU()
			}
		}

		r.setupOK.Store(true)
		r.Logf(LogInfo, "dispatch: setup complete, optLevel=%s", r.optLevel)
	})
}

// Teardown clears the setup_ok flag and the dispatch table under the
// same critical section used by Setup, and resets the once-guard so a
// subsequent Setup call re-runs resolution. Re-entrancy after Teardown
// is intentional: it is how tests and callers that change the
// environment variables between calls force re-probing.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setupOK.Store(false)
	r.table = nil
	r.once = sync.Once{}
}

// Ready reports whether Setup has completed successfully.
func (r *Registry) Ready() bool { return r.setupOK.Load() }

// OptLevel returns the resolved optimization level. Setup must have
// been called first; it returns OptReference otherwise.
func (r *Registry) OptLevel() OptLevel {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.optLevel
}

// Register installs the function pointers for a codec. Safe to call
// concurrently; last writer for a given name wins.
func (r *Registry) Register(name string, fns FuncSet) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.table == nil {
		r.table = make(map[string]FuncSet)
	}
	r.table[name] = fns
}

// Lookup retrieves the function pointers registered for a codec.
func (r *Registry) Lookup(name string) (FuncSet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fns, ok := r.table[name]

	return fns, ok
}

// Logf writes a diagnostic line to stderr when the registry's
// configured AOCL_ENABLE_LOG verbosity is at least level. This is the
// smallest possible ambient logger: the core engines never log on
// their hot paths; only the registry's Setup does.
func (r *Registry) Logf(level LogLevel, format string, args ...any) {
	if level == LogNone || level > r.logLevel {
		return
	}

	fmt.Fprintf(os.Stderr, "["+strconv.Itoa(int(level))+"] "+format+"\n", args...)
}
