package bfv_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/bfvengine/ring"
	"github.com/tuneinsight/bfvengine/utils/noise"
)

// TestNoiseBudgetStaysWellBelowHalfDelta encrypts many scalar messages,
// recomputes the pre-rescale residual nu - Delta*m for each, and checks
// the aggregate noise statistics stay far under the Delta/2 folding
// budget: decryption never errors on budget overflow, so this is the
// place correctness is actually probed statistically.
func TestNoiseBudgetStaysWellBelowHalfDelta(t *testing.T) {
	for _, params := range testParamSets(t) {
		params := params
		t.Run(GetTestName("NoiseBudgetStaysWellBelowHalfDelta", params), func(t *testing.T) {
			tc := genTestContext(t, params, []byte("noise-budget"))

			r := params.Ring()
			mult := ring.NewNativeMultiplier(r)
			delta := params.Delta()
			tMod := params.T().Int64()

			const trials = 64
			samples := make([]float64, 0, trials)

			for i := 0; i < trials; i++ {
				msg := int64(i) % tMod
				pt := tc.encoder.Encode([]int64{msg})
				ct, err := tc.encryptor.EncryptNew(pt)
				require.NoError(t, err)

				c1s, err := mult.Multiply(ct.Value[1], tc.sk.Value)
				require.NoError(t, err)
				nu := r.Add(ct.Value[0], c1s)

				scaled := new(big.Int).Mul(delta, big.NewInt(msg))
				scaled.Mod(scaled, r.Q)

				residual := new(big.Int).Sub(nu[0], scaled)
				residual.Mod(residual, r.Q)
				centered := r.ReduceCenter(ring.Poly{residual})[0]

				samples = append(samples, noise.Sample(centered))
			}

			sd, err := noise.Stddev(samples)
			require.NoError(t, err)
			mx, err := noise.Max(samples)
			require.NoError(t, err)

			halfDelta, _ := new(big.Float).SetInt(new(big.Int).Rsh(delta, 1)).Float64()

			require.Less(t, mx, halfDelta, "worst-case residual noise %f must stay under Delta/2=%f", mx, halfDelta)
			require.Less(t, sd, halfDelta, "residual noise stddev %f must stay under Delta/2=%f", sd, halfDelta)
		})
	}
}
