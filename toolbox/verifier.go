package toolbox

import (
	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/internal/obs"
	"github.com/anupsv/sigma-zkp/transcript"
)

// Verifier checks a single proof instance. Allocation order and constraint
// structure must mirror exactly what the Prover that produced the proof did —
// the transcript has no way to detect a mismatch other than producing a
// challenge the proof was never computed against.
type Verifier struct {
	transcript  *transcript.Transcript
	points      []curve.Point
	pointLabels [][]byte
	numScalars  int
	constraints []constraint
}

// NewVerifier domain-separates transcript identically to NewProver.
func NewVerifier(proofLabel []byte, t *transcript.Transcript) *Verifier {
	t.DomainSep(proofLabel)
	return &Verifier{transcript: t}
}

// AllocateScalar reserves the next response slot for label. The verifier
// never sees scalar values, only their position.
func (v *Verifier) AllocateScalar(label []byte) ScalarVar {
	v.transcript.AppendScalarVar(label)
	v.numScalars++
	return ScalarVar(v.numScalars - 1)
}

// AllocatePoint decodes and subgroup-checks the wire encoding of a public
// point before it enters the transcript: a malformed or off-subgroup point
// fails closed with ErrPointMalformed rather than being absorbed and
// silently producing a proof that can never verify.
func (v *Verifier) AllocatePoint(label []byte, encoded []byte) (PointVar, curve.Point, error) {
	p, err := curve.PointFromBytes(encoded)
	if err != nil {
		return PointVar(0), curve.Point{}, errors.Mark(errors.Wrap(err, "toolbox: allocate verifier point"), ErrPointMalformed)
	}
	v.transcript.AppendPointVar(label, p)
	v.points = append(v.points, p)
	v.pointLabels = append(v.pointLabels, label)
	return PointVar(len(v.points) - 1), p, nil
}

// Constrain records that P_lhs = Σ rhs, mirroring Prover.Constrain.
func (v *Verifier) Constrain(lhs PointVar, rhs []Term) {
	if len(rhs) == 0 {
		panic("toolbox: constraint right-hand side must be non-empty")
	}
	v.constraints = append(v.constraints, constraint{lhs: lhs, rhs: cloneTerms(rhs)})
}

// VerifyCompact recomputes each constraint's commitment as
// T_j = (Σ_k r_k·Q_jk) − c·P_j, re-derives the challenge from those
// commitments, and accepts only if it equals the proof's own challenge.
func (v *Verifier) VerifyCompact(proof *CompactProof) error {
	if len(proof.Responses) != v.numScalars {
		return errors.Mark(errors.Newf("toolbox: expected %d responses, got %d", v.numScalars, len(proof.Responses)), ErrVerificationFailure)
	}

	for _, c := range v.constraints {
		pts := make([]curve.Point, 0, len(c.rhs)+1)
		scs := make([]curve.Scalar, 0, len(c.rhs)+1)
		for _, term := range c.rhs {
			pts = append(pts, v.points[term.Point])
			scs = append(scs, proof.Responses[term.Scalar])
		}
		pts = append(pts, v.points[c.lhs])
		scs = append(scs, proof.Challenge.Neg())

		commitment, err := curve.MultiScalarMul(pts, scs)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "toolbox: recompute commitment"), ErrInternalArithmetic)
		}
		v.transcript.AppendBlindingCommitment(v.pointLabels[c.lhs], commitment)
	}

	challenge := v.transcript.GetChallenge([]byte(transcript.ChallengeLabel))
	obs.Debug().Bool("matches", challenge.Equal(proof.Challenge)).Msg("toolbox: verifier recomputed challenge")
	if !challenge.Equal(proof.Challenge) {
		return ErrVerificationFailure
	}
	return nil
}

// VerifyBatchable checks that the proof's responses are consistent with its
// own stated commitments (T_j = Σ r_k·Q_jk − c·P_j, for a challenge derived
// from those same commitments).
func (v *Verifier) VerifyBatchable(proof *BatchableProof) error {
	if len(proof.Responses) != v.numScalars {
		return errors.Mark(errors.Newf("toolbox: expected %d responses, got %d", v.numScalars, len(proof.Responses)), ErrVerificationFailure)
	}
	if len(proof.Commitments) != len(v.constraints) {
		return errors.Mark(errors.Newf("toolbox: expected %d commitments, got %d", len(v.constraints), len(proof.Commitments)), ErrVerificationFailure)
	}

	for i, c := range v.constraints {
		v.transcript.AppendBlindingCommitment(v.pointLabels[c.lhs], proof.Commitments[i])
	}
	challenge := v.transcript.GetChallenge([]byte(transcript.ChallengeLabel))

	for i, c := range v.constraints {
		pts := make([]curve.Point, 0, len(c.rhs)+1)
		scs := make([]curve.Scalar, 0, len(c.rhs)+1)
		for _, term := range c.rhs {
			pts = append(pts, v.points[term.Point])
			scs = append(scs, proof.Responses[term.Scalar])
		}
		pts = append(pts, v.points[c.lhs])
		scs = append(scs, challenge.Neg())

		recomputed, err := curve.MultiScalarMul(pts, scs)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "toolbox: recompute commitment"), ErrInternalArithmetic)
		}
		if !recomputed.Equal(proof.Commitments[i]) {
			return ErrVerificationFailure
		}
	}
	return nil
}
