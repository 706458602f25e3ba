// Package obs is the toolkit's ambient logging seam: a package-level
// zerolog.Logger, silent by default, that callers can point at their own
// sink via SetLogger, kept as a mutex-protected global behind accessor
// functions rather than threaded through every constructor, since nothing
// in the prover/verifier/batch-verifier API needs per-call log
// configuration.
package obs

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(io.Discard)
)

// SetLogger replaces the package-level logger. Pass zerolog.New(os.Stderr)
// or similar to observe debug events; the default logger writes to
// io.Discard, so importing this toolkit never produces unsolicited output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the current logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug starts a debug-level event on the current logger. Call sites in
// toolbox use this at prover commit time, verifier challenge-recompute
// time, and batch-verify aggregation time — never inside the scalar
// arithmetic hot loop.
func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Debug()
}
