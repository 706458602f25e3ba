package transcript

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anupsv/sigma-zkp/curve"
)

func TestChallengeBytesDeterministicGivenSameAbsorptions(t *testing.T) {
	mk := func() []byte {
		tr := New([]byte("test"))
		tr.AppendMessage([]byte("m"), []byte("hello"))
		out := make([]byte, 32)
		tr.ChallengeBytes([]byte("c"), out)
		return out
	}
	require.Equal(t, mk(), mk())
}

func TestChallengeBytesDivergeOnDifferentAbsorptions(t *testing.T) {
	tr1 := New([]byte("test"))
	tr1.AppendMessage([]byte("m"), []byte("hello"))
	out1 := make([]byte, 32)
	tr1.ChallengeBytes([]byte("c"), out1)

	tr2 := New([]byte("test"))
	tr2.AppendMessage([]byte("m"), []byte("goodbye"))
	out2 := make([]byte, 32)
	tr2.ChallengeBytes([]byte("c"), out2)

	require.False(t, bytes.Equal(out1, out2))
}

func TestSuccessiveChallengesDiverge(t *testing.T) {
	tr := New([]byte("test"))
	out1 := make([]byte, 32)
	tr.ChallengeBytes([]byte("c"), out1)
	out2 := make([]byte, 32)
	tr.ChallengeBytes([]byte("c"), out2)
	require.False(t, bytes.Equal(out1, out2))
}

func TestGetChallengeUsesWideReduction(t *testing.T) {
	tr := New([]byte("test"))
	s := tr.GetChallenge([]byte(ChallengeLabel))
	require.False(t, s.IsZero())

	wide := make([]byte, 2*curve.ScalarWidth)
	New([]byte("test")).ChallengeBytes([]byte(ChallengeLabel), wide)
	require.True(t, s.Equal(curve.ScalarFromWideBytes(wide)))
}

func TestRngBuilderDeterministicOverWitnessGivenSameEntropy(t *testing.T) {
	witness := curve.ScalarFromUint64(12345)
	wb := witness.Bytes()

	build := func() []byte {
		tr := New([]byte("test"))
		rng, err := tr.BuildRng().RekeyWithWitnessBytes([]byte(""), wb[:]).Finalize(bytes.NewReader(bytes.Repeat([]byte{7}, 32)))
		require.NoError(t, err)
		out := make([]byte, 16)
		_, err = rng.Read(out)
		require.NoError(t, err)
		return out
	}
	require.Equal(t, build(), build())
}

func TestRngBuilderDivergesOnWitness(t *testing.T) {
	entropy := func() []byte { return bytes.Repeat([]byte{7}, 32) }

	mk := func(witness uint64) []byte {
		wb := curve.ScalarFromUint64(witness).Bytes()
		tr := New([]byte("test"))
		rng, err := tr.BuildRng().RekeyWithWitnessBytes([]byte(""), wb[:]).Finalize(bytes.NewReader(entropy()))
		require.NoError(t, err)
		out := make([]byte, 16)
		_, err = rng.Read(out)
		require.NoError(t, err)
		return out
	}

	require.NotEqual(t, mk(1), mk(2))
}

func TestRngBuilderDivergesOnEntropyEvenWithSameWitness(t *testing.T) {
	wb := curve.ScalarFromUint64(999).Bytes()

	mk := func(seed byte) []byte {
		tr := New([]byte("test"))
		rng, err := tr.BuildRng().RekeyWithWitnessBytes([]byte(""), wb[:]).Finalize(bytes.NewReader(bytes.Repeat([]byte{seed}, 32)))
		require.NoError(t, err)
		out := make([]byte, 16)
		_, err = rng.Read(out)
		require.NoError(t, err)
		return out
	}

	require.NotEqual(t, mk(1), mk(2))
}

func TestRngBuilderFailsOnShortEntropy(t *testing.T) {
	tr := New([]byte("test"))
	_, err := tr.BuildRng().Finalize(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestCloneIndependence(t *testing.T) {
	tr := New([]byte("test"))
	tr.AppendMessage([]byte("m"), []byte("shared prefix"))

	clone := tr.Clone()
	tr.AppendMessage([]byte("m"), []byte("only on original"))

	out1 := make([]byte, 16)
	tr.ChallengeBytes([]byte("c"), out1)
	out2 := make([]byte, 16)
	clone.ChallengeBytes([]byte("c"), out2)

	require.False(t, bytes.Equal(out1, out2))
}

func TestRealOSEntropyWorks(t *testing.T) {
	tr := New([]byte("test"))
	rng, err := tr.BuildRng().Finalize(rand.Reader)
	require.NoError(t, err)
	out := make([]byte, 16)
	_, err = rng.Read(out)
	require.NoError(t, err)
}
