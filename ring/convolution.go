package ring

import "math/big"

// NegacyclicConvolve computes the length-n negacyclic product of a and
// b: the 2n-1 term schoolbook convolution, folded modulo X^n+1 (the
// coefficient at index i>=n is subtracted back into index i-n). The
// result is not reduced modulo any coefficient modulus; callers fold it
// into [0, Q) themselves (via Ring.Fold) at whatever point their
// algorithm requires — immediately, for ordinary ring multiplication, or
// only after accumulating several such products, for tensoring.
func NegacyclicConvolve(a, b Poly, n int) Poly {
	conv := make([]*big.Int, 2*n-1)
	for i := range conv {
		conv[i] = new(big.Int)
	}

	tmp := new(big.Int)
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			if bj.Sign() == 0 {
				continue
			}
			tmp.Mul(ai, bj)
			conv[i+j].Add(conv[i+j], tmp)
		}
	}

	out := make(Poly, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i, c := range conv {
		if i < n {
			out[i].Add(out[i], c)
		} else {
			out[i-n].Sub(out[i-n], c)
		}
	}
	return out
}

// ScaleRound computes floor((v*num + denom/2) / denom) for a
// nonnegative accumulator v, the rounded-rescale primitive shared by
// decryption scaling (num=t, denom=q) and tensor rescaling (num=t,
// denom=q, with the result later reduced mod q instead of mod t). v
// must already be folded into [0, denom) by the caller; ScaleRound
// does not itself fold, so that callers control the fold-then-rescale
// vs. rescale-then-fold ordering explicitly (this module always folds
// first).
func ScaleRound(v, num, denom *big.Int) *big.Int {
	numerator := new(big.Int).Mul(v, num)
	half := new(big.Int).Rsh(denom, 1)
	numerator.Add(numerator, half)
	return numerator.Div(numerator, denom)
}
