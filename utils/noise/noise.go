// Package noise provides the noise-budget statistics test suites use
// to probe decryption correctness explicitly: since decryption never
// errors on budget overflow, correctness is a statistical property
// tests must check by sampling residual noise across many
// ciphertexts.
package noise

import (
	"math/big"

	"github.com/montanaflynn/stats"
)

// Sample converts a centered residual (the centered representative of
// ν - Δ·m) into a float64 for statistical aggregation. Callers
// build a []float64 across many trials and pass it to Stddev/Mean.
func Sample(centered *big.Int) float64 {
	f := new(big.Float).SetInt(centered)
	v, _ := f.Float64()
	return v
}

// Stddev returns the sample standard deviation of a set of centered
// residuals, the quantity the noise budget is measured against:
// correctness holds while it stays well below Δ/2.
func Stddev(samples []float64) (float64, error) {
	return stats.StandardDeviationSample(stats.Float64Data(samples))
}

// Mean returns the sample mean of a set of centered residuals.
func Mean(samples []float64) (float64, error) {
	return stats.Mean(stats.Float64Data(samples))
}

// Max returns the maximum absolute centered residual observed, a
// conservative worst-case noise-budget indicator.
func Max(samples []float64) (float64, error) {
	abs := make([]float64, len(samples))
	for i, v := range samples {
		if v < 0 {
			v = -v
		}
		abs[i] = v
	}
	return stats.Max(stats.Float64Data(abs))
}
