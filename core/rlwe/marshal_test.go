package rlwe_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/bfvengine/core/rlwe"
)

// bigIntComparer lets cmp.Diff compare *big.Int values by their
// mathematical value rather than by unexported representation, which
// reflect-based equality (and cmp's default behavior) cannot do safely.
var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

// TestKeyMarshalStructuralRoundTrip diffs a key's polynomial structurally
// rather than via require.Equal, which cannot see inside *big.Int.
func TestKeyMarshalStructuralRoundTrip(t *testing.T) {
	params, err := rlwe.NewParametersFromLiteral(testLiteral())
	require.NoError(t, err)

	kg, err := rlwe.NewSeededKeyGenerator(params, []byte("cmp-roundtrip"))
	require.NoError(t, err)
	sk, err := kg.GenSecretKeyNew()
	require.NoError(t, err)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)

	var decoded rlwe.SecretKey
	require.NoError(t, decoded.UnmarshalBinary(data, params.Q()))

	if diff := cmp.Diff(sk.Value, decoded.Value, bigIntComparer); diff != "" {
		t.Fatalf("secret key round-trip mismatch (-want +got):\n%s", diff)
	}
}
