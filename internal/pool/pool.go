// Package pool provides a sync.Pool of reusable byte buffers for the
// oversampled random-scalar draws curve.RandomScalar performs on every
// prover blinding factor and every batch-verifier batching scalar, cutting
// GC pressure on a hot cryptographic path.
package pool

import "sync"

const bufferSize = 40 // (curve.Order.BitLen() + 64 + 7) / 8, for the BLS12-381 Fr modulus

var buffers = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// GetBuffer returns a byte slice of length n: a pooled buffer when its
// capacity is at least n, otherwise a freshly allocated one.
func GetBuffer(n int) []byte {
	ptr := buffers.Get().(*[]byte)
	buf := *ptr
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	return buf[:n]
}

// PutBuffer returns buf to the pool for reuse. Callers must not retain buf
// after calling PutBuffer.
func PutBuffer(buf []byte) {
	buf = buf[:cap(buf)]
	buffers.Put(&buf)
}
