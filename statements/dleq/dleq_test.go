package dleq

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/anupsv/sigma-zkp/curve"
	"github.com/anupsv/sigma-zkp/hashtocurve"
	"github.com/anupsv/sigma-zkp/toolbox"
	"github.com/anupsv/sigma-zkp/transcript"
)

// secondBase derives the second generator H by hashing the canonical
// encoding of the first one, so the two bases have no known discrete-log
// relation.
func secondBase(t *testing.T) curve.Point {
	t.Helper()
	gEnc := curve.Generator().Bytes()
	h, err := hashtocurve.HashToG1(gEnc[:], []byte(hashtocurve.DomainSeparationTag))
	require.NoError(t, err)
	return h
}

func TestCreateAndVerifyCompact(t *testing.T) {
	g := curve.Generator()
	h := secondBase(t)

	x := curve.ScalarFromUint64(89327492234)
	a := g.Mul(x)
	b := h.Mul(x)

	proof, points, err := ProveCompact(transcript.New([]byte("DLEQTest")), ProveAssignments{X: x, A: a, B: b, G: g, H: h})
	require.NoError(t, err)

	err = VerifyCompact(proof, transcript.New([]byte("DLEQTest")), VerifyAssignments{A: points["A"], B: points["B"], G: points["G"], H: points["H"]})
	require.NoError(t, err)
}

func TestVerifyCompactFailsOnFlippedPointBit(t *testing.T) {
	g := curve.Generator()
	h := secondBase(t)

	x := curve.ScalarFromUint64(89327492234)
	a := g.Mul(x)
	b := h.Mul(x)

	proof, points, err := ProveCompact(transcript.New([]byte("DLEQTest")), ProveAssignments{X: x, A: a, B: b, G: g, H: h})
	require.NoError(t, err)

	mutatedA := append([]byte(nil), points["A"]...)
	mutatedA[curve.PointWidth-1] ^= 0x01
	err = VerifyCompact(proof, transcript.New([]byte("DLEQTest")), VerifyAssignments{A: mutatedA, B: points["B"], G: points["G"], H: points["H"]})
	require.Error(t, err)
}

func TestCreateAndVerifyBatchable(t *testing.T) {
	g := curve.Generator()
	h := secondBase(t)

	x := curve.ScalarFromUint64(89327492234)
	a := g.Mul(x)
	b := h.Mul(x)

	proof, points, err := ProveBatchable(transcript.New([]byte("DLEQTest")), ProveAssignments{X: x, A: a, B: b, G: g, H: h})
	require.NoError(t, err)

	// Round-trip through the wire encoding: the verified proof is the parsed
	// one, not the in-memory original.
	parsed, err := toolbox.UnmarshalBatchableProof(proof.Marshal(), 2, 1)
	require.NoError(t, err)

	err = VerifyBatchable(parsed, transcript.New([]byte("DLEQTest")), VerifyAssignments{A: points["A"], B: points["B"], G: points["G"], H: points["H"]})
	require.NoError(t, err)
}

// batchFixture produces n valid DLEQ proofs, one per message, sharing the
// generator G, with per-instance H derived from the message.
func batchFixture(t *testing.T, messages []string) (proofs []*toolbox.BatchableProof, aEncs, bEncs, hEncs [][]byte) {
	t.Helper()
	g := curve.Generator()

	proofs = make([]*toolbox.BatchableProof, len(messages))
	aEncs = make([][]byte, len(messages))
	bEncs = make([][]byte, len(messages))
	hEncs = make([][]byte, len(messages))

	for i, msg := range messages {
		h, err := hashtocurve.HashToG1([]byte(msg), []byte(hashtocurve.DomainSeparationTag))
		require.NoError(t, err)

		x := curve.ScalarFromUint64(89327492234).Mul(curve.ScalarFromUint64(uint64(i + 1)))
		a := g.Mul(x)
		b := h.Mul(x)

		proof, points, err := ProveBatchable(transcript.New([]byte("DLEQTest")), ProveAssignments{X: x, A: a, B: b, G: g, H: h})
		require.NoError(t, err)
		proofs[i] = proof
		aEncs[i], bEncs[i], hEncs[i] = points["A"], points["B"], points["H"]
	}
	return proofs, aEncs, bEncs, hEncs
}

func TestCreateBatchAndBatchVerify(t *testing.T) {
	messages := []string{"One message", "Another message", "A third message", "A fourth message"}
	proofs, aEncs, bEncs, hEncs := batchFixture(t, messages)

	gEnc := curve.Generator().Bytes()
	err := BatchVerify(transcript.New([]byte("DLEQTest")), proofs, BatchVerifyAssignments{A: aEncs, B: bEncs, H: hEncs, G: gEnc[:]})
	require.NoError(t, err)
}

func TestBatchVerifyRejectsWrongInstancePoint(t *testing.T) {
	messages := []string{"One message", "Another message", "A third message", "A fourth message"}
	proofs, aEncs, bEncs, hEncs := batchFixture(t, messages)

	// Shift one instance's B off its true value by the generator. The point
	// still decodes and passes the subgroup check, so only the aggregated
	// equation can catch it.
	badB, err := curve.PointFromBytes(bEncs[2])
	require.NoError(t, err)
	shifted := badB.Add(curve.Generator()).Bytes()
	bEncs[2] = shifted[:]

	gEnc := curve.Generator().Bytes()
	err = BatchVerify(transcript.New([]byte("DLEQTest")), proofs, BatchVerifyAssignments{A: aEncs, B: bEncs, H: hEncs, G: gEnc[:]})
	require.Error(t, err)
	require.True(t, errors.Is(err, toolbox.ErrVerificationFailure))
}

func TestBatchVerifyRejectsTamperedProof(t *testing.T) {
	messages := []string{"first", "second", "third"}
	proofs, aEncs, bEncs, hEncs := batchFixture(t, messages)

	proofs[0].Responses[0] = proofs[0].Responses[0].Add(curve.ScalarFromUint64(1))

	gEnc := curve.Generator().Bytes()
	err := BatchVerify(transcript.New([]byte("DLEQTest")), proofs, BatchVerifyAssignments{A: aEncs, B: bEncs, H: hEncs, G: gEnc[:]})
	require.Error(t, err)
	require.True(t, errors.Is(err, toolbox.ErrVerificationFailure))
}
