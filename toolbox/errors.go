package toolbox

import "github.com/cockroachdb/errors"

// The closed set of error kinds driver functions return. Verification
// failure is never distinguished by cause — a single
// ErrVerificationFailure variant preserves the zero-knowledge property at
// the API boundary, even when the internal reason (bad challenge, bad
// pairing-free MSM check, malformed proof shape) differs.
var (
	ErrPointMalformed      = errors.New("toolbox: point malformed or not in subgroup")
	ErrVerificationFailure = errors.New("toolbox: verification failure")
	ErrLengthMismatch      = errors.New("toolbox: length mismatch")
	ErrInternalArithmetic  = errors.New("toolbox: internal arithmetic error")
)
