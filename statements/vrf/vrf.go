// Package vrf implements a verifiable random function on top of the
// toolkit's knowledge-of-discrete-log statement: A = x*B (the signer's
// public key) and G = x*H (the VRF output), where H is the message hashed
// onto the curve via a caller-owned "function transcript".
package vrf

import (
	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/hashtocurve"
	"github.com/anupsv/sigma-zkp/statement"
	"github.com/anupsv/sigma-zkp/statements/signature"
	"github.com/anupsv/sigma-zkp/toolbox"
	"github.com/anupsv/sigma-zkp/transcript"
)

const proofLabel = "VRF"

var shape = mustBuild()

func mustBuild() *statement.Shape {
	s, err := statement.New("vrf_proof").
		Secret("x").
		Instance("A", "G", "H").
		Static("B").
		Equation("A", statement.T("x", "B")).
		Equation("G", statement.T("x", "H")).
		Build()
	if err != nil {
		panic(err)
	}
	return s
}

// KeyPair reuses signature.KeyPair: the VRF's signing key and the
// signature scheme's key are the same kind of witness/public-key pair.
type KeyPair = signature.KeyPair

// NewKeyPair draws a fresh VRF key pair.
func NewKeyPair() (KeyPair, error) {
	return signature.NewKeyPair()
}

// Output is the VRF output point G = x*H.
type Output struct {
	G curve.Point
}

// Proof is the compact knowledge proof binding A, G, and H together.
type Proof struct {
	proof *toolbox.CompactProof
}

func hashMessageToGroup(functionTranscript *transcript.Transcript, message []byte) curve.Point {
	functionTranscript.AppendMessage([]byte("msg"), message)
	var out [curve.PointWidth]byte
	functionTranscript.ChallengeBytes([]byte("output"), out[:])
	h, err := hashtocurve.HashToG1(out[:], []byte(hashtocurve.DomainSeparationTag))
	if err != nil {
		panic(err)
	}
	return h
}

// Evaluate computes the VRF output and proof for message, hashing it to a
// group element H via functionTranscript, then proving knowledge of kp.SK.x
// over proofTranscript.
func Evaluate(kp KeyPair, functionTranscript *transcript.Transcript, message []byte, proofTranscript *transcript.Transcript) (Output, Proof, error) {
	h := hashMessageToGroup(functionTranscript, message)
	g := h.Mul(kp.SK.Scalar())

	proof, _, err := shape.ProveCompact([]byte(proofLabel), proofTranscript, map[string]any{
		"x": kp.SK.Scalar(),
		"A": kp.PK.A,
		"B": curve.Generator(),
		"G": g,
		"H": h,
	})
	if err != nil {
		return Output{}, Proof{}, err
	}
	return Output{G: g}, Proof{proof: proof}, nil
}

// Verify recomputes H from functionTranscript and message, then checks that
// proof proves the output was correctly derived under pubkey.
func (o Output) Verify(functionTranscript *transcript.Transcript, message []byte, pubkey signature.PublicKey, proofTranscript *transcript.Transcript, proof Proof) error {
	h := hashMessageToGroup(functionTranscript, message)

	aEnc := pubkey.A.Bytes()
	gEnc := curve.Generator().Bytes()
	oEnc := o.G.Bytes()
	hEnc := h.Bytes()
	return shape.VerifyCompact([]byte(proofLabel), proofTranscript, proof.proof, map[string]any{
		"A": aEnc[:],
		"B": gEnc[:],
		"G": oEnc[:],
		"H": hEnc[:],
	})
}
