// Package signature implements a Schnorr-style single-statement signature,
// "knowledge of x such that A = x*B" for the fixed generator B, as a
// reusable KeyPair/Signature API rather than an inline proof call.
package signature

import (
	"crypto/rand"

	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/statement"
	"github.com/anupsv/sigma-zkp/toolbox"
	"github.com/anupsv/sigma-zkp/transcript"
)

const proofLabel = "Sig"

var shape = mustBuild()

func mustBuild() *statement.Shape {
	s, err := statement.New("sig_proof").
		Secret("x").
		Instance("A").
		Static("B").
		Equation("A", statement.T("x", "B")).
		Build()
	if err != nil {
		panic(err)
	}
	return s
}

// SecretKey is a single scalar witness.
type SecretKey struct {
	x curve.Scalar
}

// NewSecretKey draws a fresh random secret key from crypto/rand.
func NewSecretKey() (SecretKey, error) {
	x, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		return SecretKey{}, errors.Wrap(err, "signature: draw secret key")
	}
	return SecretKey{x: x}, nil
}

// PublicKey is the secret key's image under the fixed generator.
type PublicKey struct {
	A curve.Point
}

// Derive computes the public key A = x*G for the standard G1 generator.
func (sk SecretKey) Derive() PublicKey {
	return PublicKey{A: curve.Generator().Mul(sk.x)}
}

// Scalar exposes the underlying witness for collaborators that build other
// statements over the same key, such as package vrf.
func (sk SecretKey) Scalar() curve.Scalar {
	return sk.x
}

// KeyPair bundles a secret key with its derived public key.
type KeyPair struct {
	SK SecretKey
	PK PublicKey
}

// NewKeyPair draws a fresh key pair.
func NewKeyPair() (KeyPair, error) {
	sk, err := NewSecretKey()
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{SK: sk, PK: sk.Derive()}, nil
}

// Signature wraps a batchable knowledge-of-discrete-log proof over a
// message absorbed into the signer's transcript before proving.
type Signature struct {
	proof *toolbox.BatchableProof
}

// Sign appends message to sigTranscript under the "msg" tag, then proves
// knowledge of kp.SK.x such that kp.PK.A = x*G.
func (kp KeyPair) Sign(message []byte, sigTranscript *transcript.Transcript) (Signature, error) {
	sigTranscript.AppendMessage([]byte("msg"), message)
	proof, _, err := shape.ProveBatchable([]byte(proofLabel), sigTranscript, map[string]any{
		"x": kp.SK.x,
		"A": kp.PK.A,
		"B": curve.Generator(),
	})
	if err != nil {
		return Signature{}, err
	}
	return Signature{proof: proof}, nil
}

// Verify appends message to sigTranscript identically to Sign, then checks
// that the signature proves knowledge of the discrete log of pubkey.A with
// respect to the fixed generator.
func (sig Signature) Verify(message []byte, pubkey PublicKey, sigTranscript *transcript.Transcript) error {
	sigTranscript.AppendMessage([]byte("msg"), message)
	aEnc := pubkey.A.Bytes()
	gEnc := curve.Generator().Bytes()
	return shape.VerifyBatchable([]byte(proofLabel), sigTranscript, sig.proof, map[string]any{
		"A": aEnc[:],
		"B": gEnc[:],
	})
}
