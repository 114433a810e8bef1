package ring

import (
	"fmt"
	"math/big"
)

// maxPrimeSearchSteps bounds the NTT-friendly prime search to a
// fixed window of candidates.
const maxPrimeSearchSteps = 1 << 20

// IsNTTFriendly reports whether q ≡ 1 (mod 2N), the condition that
// admits number-theoretic-transform acceleration of ring
// multiplication.
func IsNTTFriendly(q *big.Int, n int) bool {
	twoN := big.NewInt(int64(2 * n))
	r := new(big.Int).Mod(q, twoN)
	return r.Cmp(big.NewInt(1)) == 0
}

// NextNTTPrime finds the smallest prime q >= start such that
// q ≡ 1 (mod 2N), starting the search at start rounded down to the
// nearest multiple of 2N plus 1 and then stepping by 2N. It
// fails if no such prime is found within maxPrimeSearchSteps candidates.
//
// Primality uses big.Int.ProbablyPrime with 20 Miller-Rabin rounds,
// which is more than sufficient for moduli in the range this selector
// produces and remains a valid probabilistic test for larger q.
func NextNTTPrime(start *big.Int, n int) (*big.Int, error) {
	twoN := big.NewInt(int64(2 * n))

	q := new(big.Int).Div(start, twoN)
	q.Mul(q, twoN)
	q.Add(q, big.NewInt(1))
	if q.Cmp(start) < 0 {
		q.Add(q, twoN)
	}

	for i := 0; i < maxPrimeSearchSteps; i++ {
		if q.ProbablyPrime(20) {
			return new(big.Int).Set(q), nil
		}
		q.Add(q, twoN)
	}
	return nil, fmt.Errorf("ring.NextNTTPrime: no NTT-friendly prime found within %d candidates starting at %s", maxPrimeSearchSteps, start.String())
}

// NextPrime finds the smallest prime q >= start, with no NTT-friendly
// congruence constraint. Used by core/rlwe.NewParametersFromLiteral
// when RequireNTTFriendly is false.
func NextPrime(start *big.Int) (*big.Int, error) {
	q := new(big.Int).Set(start)
	if q.Bit(0) == 0 {
		q.Add(q, big.NewInt(1))
	}
	for i := 0; i < maxPrimeSearchSteps; i++ {
		if q.ProbablyPrime(20) {
			return new(big.Int).Set(q), nil
		}
		q.Add(q, big.NewInt(2))
	}
	return nil, fmt.Errorf("ring.NextPrime: no prime found within %d candidates starting at %s", maxPrimeSearchSteps, start.String())
}
