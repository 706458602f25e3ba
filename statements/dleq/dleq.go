// Package dleq is the discrete-log-equality statement: knowledge of x such
// that A = x*G and B = x*H, for a fixed generator G and a per-instance
// second point H.
package dleq

import (
	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/statement"
	"github.com/anupsv/sigma-zkp/toolbox"
	"github.com/anupsv/sigma-zkp/transcript"
)

const proofLabel = "DLEQProof"

var shape = mustBuild()

func mustBuild() *statement.Shape {
	s, err := statement.New("dleq").
		Secret("x").
		Instance("A", "B", "H").
		Static("G").
		Equation("A", statement.T("x", "G")).
		Equation("B", statement.T("x", "H")).
		Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ProveAssignments holds the witness and public values the prover needs.
type ProveAssignments struct {
	X curve.Scalar
	A curve.Point
	B curve.Point
	G curve.Point
	H curve.Point
}

// VerifyAssignments holds the wire-encoded public values the verifier
// checks against.
type VerifyAssignments struct {
	A []byte
	B []byte
	G []byte
	H []byte
}

func (a ProveAssignments) toMap() map[string]any {
	return map[string]any{"x": a.X, "A": a.A, "B": a.B, "G": a.G, "H": a.H}
}

func (a VerifyAssignments) toMap() map[string]any {
	return map[string]any{"A": a.A, "B": a.B, "G": a.G, "H": a.H}
}

// ProveCompact produces a CompactProof over t, echoing back the canonical
// encodings of the allocated public points for transmission with the proof.
func ProveCompact(t *transcript.Transcript, a ProveAssignments) (*toolbox.CompactProof, statement.Points, error) {
	return shape.ProveCompact([]byte(proofLabel), t, a.toMap())
}

// ProveBatchable produces a BatchableProof over t.
func ProveBatchable(t *transcript.Transcript, a ProveAssignments) (*toolbox.BatchableProof, statement.Points, error) {
	return shape.ProveBatchable([]byte(proofLabel), t, a.toMap())
}

// VerifyCompact checks proof against t.
func VerifyCompact(proof *toolbox.CompactProof, t *transcript.Transcript, a VerifyAssignments) error {
	return shape.VerifyCompact([]byte(proofLabel), t, proof, a.toMap())
}

// VerifyBatchable checks proof against t.
func VerifyBatchable(proof *toolbox.BatchableProof, t *transcript.Transcript, a VerifyAssignments) error {
	return shape.VerifyBatchable([]byte(proofLabel), t, proof, a.toMap())
}

// BatchVerifyAssignments holds the per-instance public values for a batch
// of n DLEQ proofs sharing one generator G.
type BatchVerifyAssignments struct {
	A [][]byte
	B [][]byte
	H [][]byte
	G []byte
}

// BatchVerify checks n proofs, one transcript per instance, all forked from
// t's domain-separated state.
func BatchVerify(t *transcript.Transcript, proofs []*toolbox.BatchableProof, a BatchVerifyAssignments) error {
	n := len(proofs)
	return shape.BatchVerify([]byte(proofLabel), t, n, proofs, map[string]any{
		"A": a.A, "B": a.B, "H": a.H, "G": a.G,
	})
}
