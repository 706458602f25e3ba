package toolbox

import (
	"crypto/rand"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/internal/obs"
	"github.com/anupsv/sigma-zkp/transcript"
)

type pointKind int

const (
	staticPointKind pointKind = iota
	instancePointKind
)

type batchPoint struct {
	kind      pointKind
	label     []byte
	static    curve.Point
	instances []curve.Point
}

// BatchVerifier checks N proofs of the same statement shape at once. Points
// are either static — one value shared by every instance, such as a common
// generator — or per-instance, one value per proof. The instance count N is
// fixed at construction and every AllocateInstancePoint call must supply
// exactly N encodings, enforced via ErrLengthMismatch rather than a generic
// verification failure, because this is a caller-shape error rather than an
// attacker-controlled proof defect.
type BatchVerifier struct {
	n              int
	baseTranscript *transcript.Transcript
	points         []batchPoint
	numScalars     int
	constraints    []constraint
}

// NewBatchVerifier domain-separates the shared transcript and fixes the
// instance count n.
func NewBatchVerifier(proofLabel []byte, t *transcript.Transcript, n int) *BatchVerifier {
	t.DomainSep(proofLabel)
	return &BatchVerifier{n: n, baseTranscript: t}
}

// AllocateScalar reserves the next per-instance response slot for label.
func (bv *BatchVerifier) AllocateScalar(label []byte) ScalarVar {
	bv.baseTranscript.AppendScalarVar(label)
	bv.numScalars++
	return ScalarVar(bv.numScalars - 1)
}

// AllocateStaticPoint decodes, subgroup-checks, and binds a single point
// shared by all N instances.
func (bv *BatchVerifier) AllocateStaticPoint(label []byte, encoded []byte) (PointVar, error) {
	p, err := curve.PointFromBytes(encoded)
	if err != nil {
		return PointVar(0), errors.Mark(errors.Wrap(err, "toolbox: allocate static point"), ErrPointMalformed)
	}
	bv.baseTranscript.AppendPointVar(label, p)
	bv.points = append(bv.points, batchPoint{kind: staticPointKind, label: label, static: p})
	return PointVar(len(bv.points) - 1), nil
}

// AllocateInstancePoint decodes and subgroup-checks exactly N encodings, one
// per instance. Binding into the transcript happens lazily, per instance,
// during BatchVerify — these points vary across instances, so they cannot
// be absorbed into the shared base transcript at allocation time.
func (bv *BatchVerifier) AllocateInstancePoint(label []byte, encodedPerInstance [][]byte) (PointVar, error) {
	if len(encodedPerInstance) != bv.n {
		return PointVar(0), errors.Mark(errors.Newf("toolbox: expected %d instance points for %q, got %d", bv.n, label, len(encodedPerInstance)), ErrLengthMismatch)
	}
	decoded := make([]curve.Point, bv.n)
	for i, enc := range encodedPerInstance {
		p, err := curve.PointFromBytes(enc)
		if err != nil {
			return PointVar(0), errors.Mark(errors.Wrapf(err, "toolbox: allocate instance point %q[%d]", label, i), ErrPointMalformed)
		}
		decoded[i] = p
	}
	bv.points = append(bv.points, batchPoint{kind: instancePointKind, label: label, instances: decoded})
	return PointVar(len(bv.points) - 1), nil
}

// Constrain records that P_lhs = Σ rhs, mirroring Prover.Constrain and
// Verifier.Constrain.
func (bv *BatchVerifier) Constrain(lhs PointVar, rhs []Term) {
	if len(rhs) == 0 {
		panic("toolbox: constraint right-hand side must be non-empty")
	}
	bv.constraints = append(bv.constraints, constraint{lhs: lhs, rhs: cloneTerms(rhs)})
}

func (bv *BatchVerifier) pointAt(pv PointVar, instance int) curve.Point {
	decl := bv.points[pv]
	if decl.kind == staticPointKind {
		return decl.static
	}
	return decl.instances[instance]
}

// BatchVerify checks all N proofs via a random linear combination: for each
// constraint j, Σ_i α_i·(Σ_k r_{i,k}·Q_{j,k,i} − T_{j,i} − c_i·P_{j,i}) must
// equal the identity, where α_i are fresh random nonzero batching scalars
// and c_i is the Fiat-Shamir challenge recomputed for instance i from its
// own commitments. Per-instance challenge derivation must stay
// serial — each fork of the transcript absorbs that instance's instance
// points and commitments independently — but once every challenge is known,
// the per-constraint aggregation check is independent across constraints
// and runs concurrently via errgroup.
func (bv *BatchVerifier) BatchVerify(proofs []*BatchableProof) error {
	if len(proofs) != bv.n {
		return errors.Mark(errors.Newf("toolbox: expected %d proofs, got %d", bv.n, len(proofs)), ErrLengthMismatch)
	}
	for i, proof := range proofs {
		if len(proof.Responses) != bv.numScalars {
			return errors.Mark(errors.Newf("toolbox: proof %d: expected %d responses, got %d", i, bv.numScalars, len(proof.Responses)), ErrVerificationFailure)
		}
		if len(proof.Commitments) != len(bv.constraints) {
			return errors.Mark(errors.Newf("toolbox: proof %d: expected %d commitments, got %d", i, len(bv.constraints), len(proof.Commitments)), ErrVerificationFailure)
		}
	}

	challenges := make([]curve.Scalar, bv.n)
	for i := range proofs {
		ti := bv.baseTranscript.Clone()
		for _, decl := range bv.points {
			if decl.kind == instancePointKind {
				ti.AppendPointVar(decl.label, decl.instances[i])
			}
		}
		for j, c := range bv.constraints {
			ti.AppendBlindingCommitment(bv.points[c.lhs].label, proofs[i].Commitments[j])
		}
		challenges[i] = ti.GetChallenge([]byte(transcript.ChallengeLabel))
	}

	alphas := make([]curve.Scalar, bv.n)
	for i := range alphas {
		a, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			return errors.Mark(errors.Wrap(err, "toolbox: draw batching scalar"), ErrInternalArithmetic)
		}
		for a.IsZero() {
			a, err = curve.RandomScalar(rand.Reader)
			if err != nil {
				return errors.Mark(errors.Wrap(err, "toolbox: draw batching scalar"), ErrInternalArithmetic)
			}
		}
		alphas[i] = a
	}

	obs.Debug().Int("instances", bv.n).Int("constraints", len(bv.constraints)).Msg("toolbox: batch verifier aggregating")

	g := new(errgroup.Group)
	for j := range bv.constraints {
		j := j
		g.Go(func() error {
			return bv.checkConstraintAggregate(j, proofs, challenges, alphas)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

func (bv *BatchVerifier) checkConstraintAggregate(j int, proofs []*BatchableProof, challenges, alphas []curve.Scalar) error {
	c := bv.constraints[j]
	pts := make([]curve.Point, 0, bv.n*(len(c.rhs)+2))
	scs := make([]curve.Scalar, 0, bv.n*(len(c.rhs)+2))
	for i := range proofs {
		for _, term := range c.rhs {
			pts = append(pts, bv.pointAt(term.Point, i))
			scs = append(scs, alphas[i].Mul(proofs[i].Responses[term.Scalar]))
		}
		pts = append(pts, proofs[i].Commitments[j])
		scs = append(scs, alphas[i].Neg())
		pts = append(pts, bv.pointAt(c.lhs, i))
		scs = append(scs, alphas[i].Neg().Mul(challenges[i]))
	}
	sum, err := curve.MultiScalarMul(pts, scs)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "toolbox: aggregate constraint check"), ErrInternalArithmetic)
	}
	if !sum.IsIdentity() {
		return ErrVerificationFailure
	}
	return nil
}
