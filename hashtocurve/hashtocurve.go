// Package hashtocurve maps arbitrary messages onto the BLS12-381 G1
// subgroup, for statements (DLEQ, VRF) whose second generator is derived
// from a message rather than fixed ahead of time. The Prover and Verifier
// never call this mapping directly; statement packages own that wiring.
package hashtocurve

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/curve"
)

// DomainSeparationTag is the application DST for this toolkit's BLS12-381
// G1 binding, naming the RFC 9380 suite (XMD:SHA-256 expansion, SSWU map)
// it commits to. Fixed for interop; changing it invalidates every proof
// whose statement derives a point from a message.
const DomainSeparationTag = "DALEK-ZKP-V01-CS02-with-BLS12381G1_XMD:SHA-256_SSWU_RO_"

// HashToG1 maps msg onto the BLS12-381 G1 subgroup under dst using
// gnark-crypto's RFC 9380 hash_to_curve implementation. The result always
// lands in the prime-order subgroup by construction, so callers can feed it
// straight into curve.PointFromG1Affine without a redundant subgroup check.
func HashToG1(msg, dst []byte) (curve.Point, error) {
	aff, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return curve.Point{}, errors.Wrap(err, "hashtocurve: map message to G1")
	}
	return curve.PointFromG1Affine(aff), nil
}
