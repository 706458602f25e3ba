package transcript

import (
	"github.com/anupsv/sigma-zkp/curve"
)

// Byte tags are part of the external wire contract and must not change:
// every implementation binding to this protocol has to agree on them bit
// for bit.
const (
	tagProofLabel  = "proof-label"
	tagScalarVar   = "scvar"
	tagPointVar    = "ptvar"
	tagBlindCommit = "blindcom"
	tagChallenge   = "chal"
)

// DomainSep binds the statement's proof label, separating this proof's
// transcript region from whatever the caller absorbed before constructing
// the Prover/Verifier.
func (t *Transcript) DomainSep(proofLabel []byte) {
	t.AppendMessage([]byte(tagProofLabel), proofLabel)
}

// AppendScalarVar binds a secret variable's label (never its value) into the
// transcript, forcing prover and verifier allocation order to agree.
func (t *Transcript) AppendScalarVar(label []byte) {
	t.AppendMessage([]byte(tagScalarVar), label)
}

// AppendPointVar binds a public variable's label and canonical point
// encoding.
func (t *Transcript) AppendPointVar(label []byte, p curve.Point) {
	enc := p.Bytes()
	t.AppendMessage([]byte(tagPointVar), label)
	t.AppendMessage([]byte(tagPointVar), enc[:])
}

// AppendBlindingCommitment binds a constraint's recomputed or freshly
// computed blinding commitment T, labeled by its lhs variable's label.
func (t *Transcript) AppendBlindingCommitment(lhsLabel []byte, commitment curve.Point) {
	enc := commitment.Bytes()
	t.AppendMessage([]byte(tagBlindCommit), lhsLabel)
	t.AppendMessage([]byte(tagBlindCommit), enc[:])
}

// GetChallenge squeezes a Fiat-Shamir challenge scalar. The squeezed bytes
// are wide (2*ScalarWidth) and reduced with wide reduction, never narrow
// modular reduction.
func (t *Transcript) GetChallenge(label []byte) curve.Scalar {
	wide := make([]byte, 2*curve.ScalarWidth)
	t.ChallengeBytes(label, wide)
	return curve.ScalarFromWideBytes(wide)
}

// ChallengeLabel is the fixed "chal" tag used for the Fiat-Shamir challenge
// squeeze.
const ChallengeLabel = tagChallenge
