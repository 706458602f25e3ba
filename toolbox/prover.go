package toolbox

import (
	"crypto/rand"

	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/internal/obs"
	"github.com/anupsv/sigma-zkp/transcript"
)

// Prover builds a Σ-protocol proof. Construct with NewProver, allocate
// secret and public variables, record constraints via Constrain, then call
// ProveCompact or ProveBatchable exactly once — a Prover is consumed by
// either call and must not be reused afterward; reusing a consumed prover is
// a programming error, not a recoverable one.
type Prover struct {
	transcript  *transcript.Transcript
	scalars     []curve.Scalar
	points      []curve.Point
	pointLabels [][]byte
	constraints []constraint
}

// NewProver domain-separates transcript with proofLabel and returns an empty
// prover state.
func NewProver(proofLabel []byte, t *transcript.Transcript) *Prover {
	t.DomainSep(proofLabel)
	return &Prover{transcript: t}
}

// AllocateScalar appends the variable's label to the transcript, records its
// value, and returns a dense handle. Allocation order fixes response order.
func (p *Prover) AllocateScalar(label []byte, value curve.Scalar) ScalarVar {
	p.transcript.AppendScalarVar(label)
	p.scalars = append(p.scalars, value)
	return ScalarVar(len(p.scalars) - 1)
}

// AllocatePoint appends the variable's label and canonical encoding to the
// transcript, records its value, and returns both a handle and the point
// itself (so callers can echo public outputs without a second lookup).
func (p *Prover) AllocatePoint(label []byte, value curve.Point) (PointVar, curve.Point) {
	p.transcript.AppendPointVar(label, value)
	p.points = append(p.points, value)
	p.pointLabels = append(p.pointLabels, label)
	return PointVar(len(p.points) - 1), value
}

// Constrain records that P_lhs = Σ rhs. Constraint structure itself is never
// absorbed into the transcript — only variable bindings are, before the
// challenge is drawn. An empty rhs is a statement-definition bug, not a
// runtime condition to recover from.
func (p *Prover) Constrain(lhs PointVar, rhs []Term) {
	if len(rhs) == 0 {
		panic("toolbox: constraint right-hand side must be non-empty")
	}
	p.constraints = append(p.constraints, constraint{lhs: lhs, rhs: cloneTerms(rhs)})
}

// proveImpl is the single algorithmic skeleton shared by ProveCompact and
// ProveBatchable: draw a witness-seeded, entropy-mixed blinding for each
// scalar, commit to each constraint's blinded right-hand side, squeeze the
// Fiat-Shamir challenge, then compute responses.
func (p *Prover) proveImpl() (curve.Scalar, []curve.Scalar, []curve.Point, error) {
	rngBuilder := p.transcript.BuildRng()
	for _, s := range p.scalars {
		b := s.Bytes()
		rngBuilder = rngBuilder.RekeyWithWitnessBytes([]byte(""), b[:])
	}
	rng, err := rngBuilder.Finalize(rand.Reader)
	if err != nil {
		return curve.Scalar{}, nil, nil, errors.Mark(errors.Wrap(err, "toolbox: seed prover rng"), ErrInternalArithmetic)
	}

	blindings := make([]curve.Scalar, len(p.scalars))
	for i := range blindings {
		b, err := curve.RandomScalar(rng)
		if err != nil {
			return curve.Scalar{}, nil, nil, errors.Mark(errors.Wrap(err, "toolbox: draw blinding scalar"), ErrInternalArithmetic)
		}
		blindings[i] = b
	}

	commitments := make([]curve.Point, 0, len(p.constraints))
	for _, c := range p.constraints {
		pts := make([]curve.Point, len(c.rhs))
		scs := make([]curve.Scalar, len(c.rhs))
		for j, term := range c.rhs {
			pts[j] = p.points[term.Point]
			scs[j] = blindings[term.Scalar]
		}
		commitment, err := curve.MultiScalarMul(pts, scs)
		if err != nil {
			return curve.Scalar{}, nil, nil, errors.Mark(errors.Wrap(err, "toolbox: compute blinding commitment"), ErrInternalArithmetic)
		}
		p.transcript.AppendBlindingCommitment(p.pointLabels[c.lhs], commitment)
		commitments = append(commitments, commitment)
	}
	obs.Debug().Int("constraints", len(p.constraints)).Int("scalars", len(p.scalars)).Msg("toolbox: prover committed")

	challenge := p.transcript.GetChallenge([]byte(transcript.ChallengeLabel))

	responses := make([]curve.Scalar, len(p.scalars))
	for i, s := range p.scalars {
		responses[i] = blindings[i].Add(s.Mul(challenge))
	}

	return challenge, responses, commitments, nil
}

// ProveCompact consumes the prover to produce a CompactProof: {challenge,
// responses}. Commitments are recomputed by the verifier, so they are
// discarded here.
func (p *Prover) ProveCompact() (*CompactProof, error) {
	challenge, responses, _, err := p.proveImpl()
	if err != nil {
		return nil, err
	}
	return &CompactProof{Challenge: challenge, Responses: responses}, nil
}

// ProveBatchable consumes the prover to produce a BatchableProof:
// {commitments, responses}. The challenge is recomputed by the verifier from
// the commitments, so it is discarded here.
func (p *Prover) ProveBatchable() (*BatchableProof, error) {
	_, responses, commitments, err := p.proveImpl()
	if err != nil {
		return nil, err
	}
	return &BatchableProof{Commitments: commitments, Responses: responses}, nil
}
