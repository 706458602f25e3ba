package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anupsv/sigma-zkp/transcript"
)

func TestCreateAndVerifySig(t *testing.T) {
	domainSep := []byte("My Sig Application")
	msg1 := []byte("Test Message 1")
	msg2 := []byte("Test Message 2")

	kp1, err := NewKeyPair()
	require.NoError(t, err)
	kp2, err := NewKeyPair()
	require.NoError(t, err)

	sig1, err := kp1.Sign(msg1, transcript.New(domainSep))
	require.NoError(t, err)
	sig2, err := kp2.Sign(msg2, transcript.New(domainSep))
	require.NoError(t, err)

	require.NoError(t, sig1.Verify(msg1, kp1.PK, transcript.New(domainSep)))
	require.NoError(t, sig2.Verify(msg2, kp2.PK, transcript.New(domainSep)))

	require.Error(t, sig1.Verify(msg1, kp2.PK, transcript.New(domainSep)))
	require.Error(t, sig2.Verify(msg2, kp1.PK, transcript.New(domainSep)))

	require.Error(t, sig1.Verify(msg2, kp1.PK, transcript.New(domainSep)))
	require.Error(t, sig2.Verify(msg1, kp2.PK, transcript.New(domainSep)))

	require.Error(t, sig1.Verify(msg1, kp1.PK, transcript.New([]byte("Wrong"))))
	require.Error(t, sig2.Verify(msg2, kp2.PK, transcript.New([]byte("Wrong"))))
}

// TestCounterpartySignatureChain exercises two long-lived transcripts
// ratcheting in lockstep as each party alternately signs and the other
// verifies.
func TestCounterpartySignatureChain(t *testing.T) {
	domainSep := []byte("Counterparty Example")

	msg1a := []byte("In this test, two counterparties exchange signatures.")
	msg2a := []byte("However, the counterparties sign and verify messages")
	msg1b := []byte("using stateful transcript objects.")
	msg2b := []byte("When party 1 signs, the party 1 transcript changes;")
	msg1c := []byte("when party 2 verifies, the party 2 transcript syncs.")
	msg2c := []byte("In this way, the transcript states ratchet stateful signatures.")

	kp1, err := NewKeyPair()
	require.NoError(t, err)
	kp2, err := NewKeyPair()
	require.NoError(t, err)

	trans1 := transcript.New(domainSep)
	trans2 := transcript.New(domainSep)

	sig1a, err := kp1.Sign(msg1a, trans1)
	require.NoError(t, err)
	require.NoError(t, sig1a.Verify(msg1a, kp1.PK, trans2))

	sig2a, err := kp2.Sign(msg2a, trans2)
	require.NoError(t, err)
	require.NoError(t, sig2a.Verify(msg2a, kp2.PK, trans1))

	sig1b, err := kp1.Sign(msg1b, trans1)
	require.NoError(t, err)
	require.NoError(t, sig1b.Verify(msg1b, kp1.PK, trans2))

	sig2b, err := kp2.Sign(msg2b, trans2)
	require.NoError(t, err)
	require.NoError(t, sig2b.Verify(msg2b, kp2.PK, trans1))

	sig1c, err := kp1.Sign(msg1c, trans1)
	require.NoError(t, err)
	require.NoError(t, sig1c.Verify(msg1c, kp1.PK, trans2))

	sig2c, err := kp2.Sign(msg2c, trans2)
	require.NoError(t, err)
	require.NoError(t, sig2c.Verify(msg2c, kp2.PK, trans1))
}
