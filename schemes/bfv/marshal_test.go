package bfv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/bfvengine/schemes/bfv"
)

func TestPlaintextMarshalRoundTrip(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("PlaintextMarshalRoundTrip", params), func(t *testing.T) {
			enc := bfv.NewEncoder(params)
			pt := enc.Encode([]int64{123, 456, -7})

			data, err := pt.MarshalBinary()
			require.NoError(t, err)

			var decoded bfv.Plaintext
			require.NoError(t, decoded.UnmarshalBinary(data, params))

			require.True(t, pt.Value.Equal(decoded.Value))
			require.Equal(t, int64(123), enc.DecodeScalar(&decoded))
		})
	}
}
