package toolbox

import (
	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/curve"
)

// CompactProof is {challenge, responses} — the smaller of the two encodings,
// at the cost of the verifier needing to recompute commitments from scratch.
type CompactProof struct {
	Challenge curve.Scalar
	Responses []curve.Scalar
}

// BatchableProof is {commitments, responses} — larger, but because it
// carries the commitments, each proof's check is a linear equation that a
// batch verifier can fold together with the others' into one random linear
// combination.
type BatchableProof struct {
	Commitments []curve.Point
	Responses   []curve.Scalar
}

// Marshal encodes the proof as scalar(challenge) || scalar(r_1) || ... ||
// scalar(r_m).
func (p *CompactProof) Marshal() []byte {
	out := make([]byte, 0, curve.ScalarWidth*(1+len(p.Responses)))
	cb := p.Challenge.Bytes()
	out = append(out, cb[:]...)
	for _, r := range p.Responses {
		rb := r.Bytes()
		out = append(out, rb[:]...)
	}
	return out
}

// UnmarshalCompactProof decodes a CompactProof with exactly nScalars
// responses. A length mismatch is untrusted-input malformation, so it is
// reported as ErrVerificationFailure rather than a distinct error kind.
func UnmarshalCompactProof(data []byte, nScalars int) (*CompactProof, error) {
	want := curve.ScalarWidth * (1 + nScalars)
	if len(data) != want {
		return nil, errors.Mark(errors.Newf("toolbox: compact proof must be %d bytes, got %d", want, len(data)), ErrVerificationFailure)
	}
	challenge, err := curve.ScalarFromBytes(data[:curve.ScalarWidth])
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "toolbox: decode compact proof challenge"), ErrVerificationFailure)
	}
	responses := make([]curve.Scalar, nScalars)
	off := curve.ScalarWidth
	for i := range responses {
		r, err := curve.ScalarFromBytes(data[off : off+curve.ScalarWidth])
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "toolbox: decode compact proof response"), ErrVerificationFailure)
		}
		responses[i] = r
		off += curve.ScalarWidth
	}
	return &CompactProof{Challenge: challenge, Responses: responses}, nil
}

// Marshal encodes the proof as point(T_1) || ... || point(T_m) ||
// scalar(r_1) || ... || scalar(r_n).
func (p *BatchableProof) Marshal() []byte {
	out := make([]byte, 0, curve.PointWidth*len(p.Commitments)+curve.ScalarWidth*len(p.Responses))
	for _, c := range p.Commitments {
		cb := c.Bytes()
		out = append(out, cb[:]...)
	}
	for _, r := range p.Responses {
		rb := r.Bytes()
		out = append(out, rb[:]...)
	}
	return out
}

// UnmarshalBatchableProof decodes a BatchableProof with exactly
// nConstraints commitments and nScalars responses. Point decoding performs
// the same subgroup check as Verifier.AllocatePoint — a malformed
// commitment fails closed here rather than surfacing later as a confusing
// arithmetic error.
func UnmarshalBatchableProof(data []byte, nConstraints, nScalars int) (*BatchableProof, error) {
	want := curve.PointWidth*nConstraints + curve.ScalarWidth*nScalars
	if len(data) != want {
		return nil, errors.Mark(errors.Newf("toolbox: batchable proof must be %d bytes, got %d", want, len(data)), ErrVerificationFailure)
	}
	commitments := make([]curve.Point, nConstraints)
	off := 0
	for i := range commitments {
		p, err := curve.PointFromBytes(data[off : off+curve.PointWidth])
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "toolbox: decode batchable proof commitment"), ErrVerificationFailure)
		}
		commitments[i] = p
		off += curve.PointWidth
	}
	responses := make([]curve.Scalar, nScalars)
	for i := range responses {
		r, err := curve.ScalarFromBytes(data[off : off+curve.ScalarWidth])
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "toolbox: decode batchable proof response"), ErrVerificationFailure)
		}
		responses[i] = r
		off += curve.ScalarWidth
	}
	return &BatchableProof{Commitments: commitments, Responses: responses}, nil
}
