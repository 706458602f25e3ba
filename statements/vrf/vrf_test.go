package vrf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anupsv/sigma-zkp/transcript"
)

func TestCreateAndVerifyVrf(t *testing.T) {
	domainSep := []byte("My VRF Application")
	msg1 := []byte("Test Message 1")
	msg2 := []byte("Test Message 2")

	kp1, err := NewKeyPair()
	require.NoError(t, err)
	kp2, err := NewKeyPair()
	require.NoError(t, err)

	output1, proof1, err := Evaluate(kp1, transcript.New(domainSep), msg1, transcript.New(domainSep))
	require.NoError(t, err)
	output2, proof2, err := Evaluate(kp2, transcript.New(domainSep), msg2, transcript.New(domainSep))
	require.NoError(t, err)

	require.NoError(t, output1.Verify(transcript.New(domainSep), msg1, kp1.PK, transcript.New(domainSep), proof1))
	require.NoError(t, output2.Verify(transcript.New(domainSep), msg2, kp2.PK, transcript.New(domainSep), proof2))

	require.Error(t, output1.Verify(transcript.New(domainSep), msg1, kp2.PK, transcript.New(domainSep), proof1))
	require.Error(t, output2.Verify(transcript.New(domainSep), msg2, kp1.PK, transcript.New(domainSep), proof2))

	require.Error(t, output2.Verify(transcript.New(domainSep), msg1, kp1.PK, transcript.New(domainSep), proof1))
	require.Error(t, output1.Verify(transcript.New(domainSep), msg2, kp2.PK, transcript.New(domainSep), proof2))

	require.Error(t, output1.Verify(transcript.New(domainSep), msg1, kp1.PK, transcript.New([]byte("A different application")), proof1))
	require.Error(t, output2.Verify(transcript.New(domainSep), msg2, kp2.PK, transcript.New([]byte("A different application")), proof2))
}
