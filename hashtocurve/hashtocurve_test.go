package hashtocurve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashToG1Deterministic(t *testing.T) {
	p1, err := HashToG1([]byte("a VRF input, for instance"), []byte(DomainSeparationTag))
	require.NoError(t, err)
	p2, err := HashToG1([]byte("a VRF input, for instance"), []byte(DomainSeparationTag))
	require.NoError(t, err)
	require.True(t, p1.Equal(p2))
}

func TestHashToG1DivergesOnMessage(t *testing.T) {
	p1, err := HashToG1([]byte("message one"), []byte(DomainSeparationTag))
	require.NoError(t, err)
	p2, err := HashToG1([]byte("message two"), []byte(DomainSeparationTag))
	require.NoError(t, err)
	require.False(t, p1.Equal(p2))
}

func TestHashToG1NotIdentity(t *testing.T) {
	p, err := HashToG1([]byte("nonempty message"), []byte(DomainSeparationTag))
	require.NoError(t, err)
	require.False(t, p.IsIdentity())
}
