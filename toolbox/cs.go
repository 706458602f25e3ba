// Package toolbox implements the Σ-protocol prover/verifier engine: the
// constraint-system surface, the Prover, the single-instance Verifier, the
// BatchVerifier, and the two proof encodings.
package toolbox

// ScalarVar is an opaque handle into a CS's scalar table. Valid only within
// the CS that issued it.
type ScalarVar int

// PointVar is an opaque handle into a CS's point table.
type PointVar int

// Term is one (scalar, point) pair in a constraint's right-hand side.
type Term struct {
	Scalar ScalarVar
	Point  PointVar
}

// SchnorrCS is the capability a statement function needs: the ability to
// record that P_lhs = Σ Term.Scalar·Term.Point. Allocation is deliberately
// not part of this interface — Prover.AllocateScalar takes a witness value,
// Verifier.AllocateScalar does not, and BatchVerifier.AllocateInstancePoint
// takes N values — so allocation stays on each concrete type, and only the
// allocation-order-agnostic constraint recording is shared.
type SchnorrCS interface {
	Constrain(lhs PointVar, rhs []Term)
}

type constraint struct {
	lhs PointVar
	rhs []Term
}

func cloneTerms(rhs []Term) []Term {
	out := make([]Term, len(rhs))
	copy(out, rhs)
	return out
}
