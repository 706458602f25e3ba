// Package statement provides a runtime-checked way to declare a Σ-protocol
// statement: instead of generating typed ProveAssignments / VerifyAssignments
// structs at compile time, Builder records a statement's secret, point, and
// static variable names and its equations at runtime, and Shape's driver
// methods walk a map[string]any assignment table built against that
// recorded schema.
package statement

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/toolbox"
	"github.com/anupsv/sigma-zkp/transcript"
)

// The closed set of schema errors a caller can hit while building or
// driving a Shape. These are programming errors — a wrong assignment table
// or a malformed equation — not properties of untrusted proof bytes, so
// they are kept separate from toolbox's proof-verification error set.
var (
	ErrUnknownVariable   = errors.New("statement: equation references undeclared variable")
	ErrNameCollision     = errors.New("statement: variable name declared in more than one category")
	ErrEmptyEquation     = errors.New("statement: equation right-hand side must be non-empty")
	ErrMissingAssignment = errors.New("statement: assignment map missing required variable")
	ErrWrongType         = errors.New("statement: assignment has the wrong Go type for its variable kind")
)

// Term names one (secretName, pointName) pair in an equation's right-hand
// side, resolved against the Builder's declared names at Build time.
type Term struct {
	Scalar string
	Point  string
}

// T is a convenience constructor for Term, read as "scalar times point".
func T(scalar, point string) Term {
	return Term{Scalar: scalar, Point: point}
}

type equation struct {
	lhs string
	rhs []Term
}

// Builder accumulates a statement's variable declarations and equations.
// Declaration order fixes allocation order in the underlying toolbox
// Prover/Verifier, so callers should declare variables in the same order
// across every Shape built from logically equivalent statements.
type Builder struct {
	name        string
	secretNames []string
	pointNames  []string
	staticNames []string
	equations   []equation
}

// New starts a Builder for a statement named name. The name is used only
// in error messages and String; the wire-level domain separation comes from the
// proofLabel passed to the Shape's driver methods.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Secret declares one or more witness scalar names.
func (b *Builder) Secret(names ...string) *Builder {
	b.secretNames = append(b.secretNames, names...)
	return b
}

// Instance declares one or more public point names whose values vary per
// proof instance.
func (b *Builder) Instance(names ...string) *Builder {
	b.pointNames = append(b.pointNames, names...)
	return b
}

// Static declares one or more public point names shared across every
// instance of a batch, e.g. a common generator.
func (b *Builder) Static(names ...string) *Builder {
	b.staticNames = append(b.staticNames, names...)
	return b
}

// Equation records that lhs = Σ rhs, where lhs names a declared point and
// each rhs Term names a declared secret and a declared point or static.
func (b *Builder) Equation(lhs string, rhs ...Term) *Builder {
	b.equations = append(b.equations, equation{lhs: lhs, rhs: rhs})
	return b
}

// Shape is a validated, immutable statement ready to drive proving and
// verification. Build a Shape once per statement and reuse it across many
// proofs.
type Shape struct {
	name        string
	secretNames []string
	pointNames  []string
	staticNames []string
	equations   []equation

	secretIndex map[string]int
	pointIndex  map[string]int // indexes into the combined point+static namespace
	isStatic    map[string]bool
}

// Build validates name uniqueness across categories, that every equation
// references only declared names, and that no equation has an empty
// right-hand side, then returns the resulting Shape.
func (b *Builder) Build() (*Shape, error) {
	secretIndex := make(map[string]int, len(b.secretNames))
	for i, n := range b.secretNames {
		if _, dup := secretIndex[n]; dup {
			return nil, errors.Mark(errors.Newf("statement %q: secret %q declared twice", b.name, n), ErrNameCollision)
		}
		secretIndex[n] = i
	}

	pointIndex := make(map[string]int, len(b.pointNames)+len(b.staticNames))
	isStatic := make(map[string]bool, len(b.pointNames)+len(b.staticNames))
	order := 0
	for _, n := range b.pointNames {
		if _, clash := secretIndex[n]; clash {
			return nil, errors.Mark(errors.Newf("statement %q: point %q collides with a secret name", b.name, n), ErrNameCollision)
		}
		if _, dup := pointIndex[n]; dup {
			return nil, errors.Mark(errors.Newf("statement %q: point %q declared twice", b.name, n), ErrNameCollision)
		}
		pointIndex[n] = order
		isStatic[n] = false
		order++
	}
	for _, n := range b.staticNames {
		if _, clash := secretIndex[n]; clash {
			return nil, errors.Mark(errors.Newf("statement %q: static %q collides with a secret name", b.name, n), ErrNameCollision)
		}
		if _, dup := pointIndex[n]; dup {
			return nil, errors.Mark(errors.Newf("statement %q: static %q collides with an existing point name", b.name, n), ErrNameCollision)
		}
		pointIndex[n] = order
		isStatic[n] = true
		order++
	}
	for _, eq := range b.equations {
		if len(eq.rhs) == 0 {
			return nil, errors.Mark(errors.Newf("statement %q: equation for %q has no terms", b.name, eq.lhs), ErrEmptyEquation)
		}
		if _, ok := pointIndex[eq.lhs]; !ok {
			return nil, errors.Mark(errors.Newf("statement %q: equation lhs %q is not a declared point", b.name, eq.lhs), ErrUnknownVariable)
		}
		for _, term := range eq.rhs {
			if _, ok := secretIndex[term.Scalar]; !ok {
				return nil, errors.Mark(errors.Newf("statement %q: equation term references undeclared secret %q", b.name, term.Scalar), ErrUnknownVariable)
			}
			if _, ok := pointIndex[term.Point]; !ok {
				return nil, errors.Mark(errors.Newf("statement %q: equation term references undeclared point %q", b.name, term.Point), ErrUnknownVariable)
			}
		}
	}

	return &Shape{
		name:        b.name,
		secretNames: append([]string(nil), b.secretNames...),
		pointNames:  append([]string(nil), b.pointNames...),
		staticNames: append([]string(nil), b.staticNames...),
		equations:   b.equations,
		secretIndex: secretIndex,
		pointIndex:  pointIndex,
		isStatic:    isStatic,
	}, nil
}

func (s *Shape) scalarAssignment(assignments map[string]any, name string) (curve.Scalar, error) {
	v, ok := assignments[name]
	if !ok {
		return curve.Scalar{}, errors.Mark(errors.Newf("statement %q: missing secret %q", s.name, name), ErrMissingAssignment)
	}
	sc, ok := v.(curve.Scalar)
	if !ok {
		return curve.Scalar{}, errors.Mark(errors.Newf("statement %q: secret %q must be curve.Scalar, got %T", s.name, name, v), ErrWrongType)
	}
	return sc, nil
}

func (s *Shape) pointAssignment(assignments map[string]any, name string) (curve.Point, error) {
	v, ok := assignments[name]
	if !ok {
		return curve.Point{}, errors.Mark(errors.Newf("statement %q: missing point %q", s.name, name), ErrMissingAssignment)
	}
	p, ok := v.(curve.Point)
	if !ok {
		return curve.Point{}, errors.Mark(errors.Newf("statement %q: point %q must be curve.Point, got %T", s.name, name, v), ErrWrongType)
	}
	return p, nil
}

func (s *Shape) bytesAssignment(assignments map[string]any, name string) ([]byte, error) {
	v, ok := assignments[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("statement %q: missing point %q", s.name, name), ErrMissingAssignment)
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, errors.Mark(errors.Newf("statement %q: point %q must be []byte, got %T", s.name, name, v), ErrWrongType)
	}
	return b, nil
}

func (s *Shape) byteSliceAssignment(assignments map[string]any, name string) ([][]byte, error) {
	v, ok := assignments[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("statement %q: missing instance list for point %q", s.name, name), ErrMissingAssignment)
	}
	b, ok := v.([][]byte)
	if !ok {
		return nil, errors.Mark(errors.Newf("statement %q: point %q must be [][]byte, got %T", s.name, name, v), ErrWrongType)
	}
	return b, nil
}

func (s *Shape) termsFor(eq equation, scalarVar map[string]toolbox.ScalarVar, pointVar map[string]toolbox.PointVar) []toolbox.Term {
	terms := make([]toolbox.Term, len(eq.rhs))
	for i, t := range eq.rhs {
		terms[i] = toolbox.Term{Scalar: scalarVar[t.Scalar], Point: pointVar[t.Point]}
	}
	return terms
}

// Points echoes back the canonical encodings of every public point a prove
// call allocated, keyed by variable name, so callers can transmit them
// alongside the proof without re-encoding.
type Points map[string][]byte

// ProveCompact allocates assignments onto a fresh Prover in declaration
// order, records every equation, and returns the resulting CompactProof
// together with the allocated points' canonical encodings.
func (s *Shape) ProveCompact(proofLabel []byte, t *transcript.Transcript, assignments map[string]any) (*toolbox.CompactProof, Points, error) {
	p, points, err := s.buildProver(proofLabel, t, assignments)
	if err != nil {
		return nil, nil, err
	}
	proof, err := p.ProveCompact()
	if err != nil {
		return nil, nil, err
	}
	return proof, points, nil
}

// ProveBatchable is ProveCompact's batchable-encoding counterpart.
func (s *Shape) ProveBatchable(proofLabel []byte, t *transcript.Transcript, assignments map[string]any) (*toolbox.BatchableProof, Points, error) {
	p, points, err := s.buildProver(proofLabel, t, assignments)
	if err != nil {
		return nil, nil, err
	}
	proof, err := p.ProveBatchable()
	if err != nil {
		return nil, nil, err
	}
	return proof, points, nil
}

func (s *Shape) buildProver(proofLabel []byte, t *transcript.Transcript, assignments map[string]any) (*toolbox.Prover, Points, error) {
	p := toolbox.NewProver(proofLabel, t)

	scalarVar := make(map[string]toolbox.ScalarVar, len(s.secretNames))
	for _, name := range s.secretNames {
		v, err := s.scalarAssignment(assignments, name)
		if err != nil {
			return nil, nil, err
		}
		scalarVar[name] = p.AllocateScalar([]byte(name), v)
	}

	pointVar := make(map[string]toolbox.PointVar, len(s.pointNames)+len(s.staticNames))
	points := make(Points, len(s.pointNames)+len(s.staticNames))
	for _, name := range allPointNames(s.staticNames, s.pointNames) {
		v, err := s.pointAssignment(assignments, name)
		if err != nil {
			return nil, nil, err
		}
		pv, echoed := p.AllocatePoint([]byte(name), v)
		pointVar[name] = pv
		enc := echoed.Bytes()
		points[name] = enc[:]
	}

	for _, eq := range s.equations {
		p.Constrain(pointVar[eq.lhs], s.termsFor(eq, scalarVar, pointVar))
	}
	return p, points, nil
}

// VerifyCompact allocates the verifier side of the same schema and checks
// proof. Point assignments must be raw wire encodings ([]byte of
// curve.PointWidth bytes): decoding and the subgroup check happen at
// allocation, per toolbox.Verifier.AllocatePoint.
func (s *Shape) VerifyCompact(proofLabel []byte, t *transcript.Transcript, proof *toolbox.CompactProof, assignments map[string]any) error {
	v, err := s.buildVerifier(proofLabel, t, assignments)
	if err != nil {
		return err
	}
	return v.VerifyCompact(proof)
}

// VerifyBatchable is VerifyCompact's batchable-encoding counterpart.
func (s *Shape) VerifyBatchable(proofLabel []byte, t *transcript.Transcript, proof *toolbox.BatchableProof, assignments map[string]any) error {
	v, err := s.buildVerifier(proofLabel, t, assignments)
	if err != nil {
		return err
	}
	return v.VerifyBatchable(proof)
}

func (s *Shape) buildVerifier(proofLabel []byte, t *transcript.Transcript, assignments map[string]any) (*toolbox.Verifier, error) {
	v := toolbox.NewVerifier(proofLabel, t)

	scalarVar := make(map[string]toolbox.ScalarVar, len(s.secretNames))
	for _, name := range s.secretNames {
		scalarVar[name] = v.AllocateScalar([]byte(name))
	}

	pointVar := make(map[string]toolbox.PointVar, len(s.pointNames)+len(s.staticNames))
	for _, name := range allPointNames(s.staticNames, s.pointNames) {
		enc, err := s.bytesAssignment(assignments, name)
		if err != nil {
			return nil, err
		}
		pv, _, err := v.AllocatePoint([]byte(name), enc)
		if err != nil {
			return nil, err
		}
		pointVar[name] = pv
	}

	for _, eq := range s.equations {
		v.Constrain(pointVar[eq.lhs], s.termsFor(eq, scalarVar, pointVar))
	}
	return v, nil
}

// BatchVerify checks n proofs of this Shape at once. Static-category
// assignments must be a single []byte encoding; point-category assignments
// must be a [][]byte of length n, one encoding per instance. Statics are
// allocated before instance points, matching allPointNames and the order
// buildProver/buildVerifier use, so a proof produced for a single instance
// binds the same transcript bytes here.
func (s *Shape) BatchVerify(proofLabel []byte, t *transcript.Transcript, n int, proofs []*toolbox.BatchableProof, assignments map[string]any) error {
	bv := toolbox.NewBatchVerifier(proofLabel, t, n)

	scalarVar := make(map[string]toolbox.ScalarVar, len(s.secretNames))
	for _, name := range s.secretNames {
		scalarVar[name] = bv.AllocateScalar([]byte(name))
	}

	pointVar := make(map[string]toolbox.PointVar, len(s.pointNames)+len(s.staticNames))
	for _, name := range s.staticNames {
		enc, err := s.bytesAssignment(assignments, name)
		if err != nil {
			return err
		}
		pv, err := bv.AllocateStaticPoint([]byte(name), enc)
		if err != nil {
			return err
		}
		pointVar[name] = pv
	}
	for _, name := range s.pointNames {
		enc, err := s.byteSliceAssignment(assignments, name)
		if err != nil {
			return err
		}
		pv, err := bv.AllocateInstancePoint([]byte(name), enc)
		if err != nil {
			return err
		}
		pointVar[name] = pv
	}

	for _, eq := range s.equations {
		bv.Constrain(pointVar[eq.lhs], s.termsFor(eq, scalarVar, pointVar))
	}
	return bv.BatchVerify(proofs)
}

// allPointNames returns every point name in the order the transcript must
// see them: statics first, then instance points. toolbox.BatchVerifier
// absorbs static points into its shared base transcript at allocation time
// and only appends instance points later, per instance, when forking that
// base for each proof — so statics always precede instance points in the
// effective byte sequence regardless of call order. buildProver and
// buildVerifier must allocate in this same order so a single-instance proof
// and a batch-verified instance bind identical transcript bytes.
func allPointNames(statics, points []string) []string {
	out := make([]string, 0, len(statics)+len(points))
	out = append(out, statics...)
	out = append(out, points...)
	return out
}

// String implements fmt.Stringer for debugging/logging.
func (s *Shape) String() string {
	return fmt.Sprintf("statement %q: %d secrets, %d points, %d statics, %d equations",
		s.name, len(s.secretNames), len(s.pointNames), len(s.staticNames), len(s.equations))
}
