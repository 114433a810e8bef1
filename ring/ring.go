// Package ring implements modular polynomial arithmetic over
// R_q = Z_q[X]/(X^N+1), the negacyclic cyclotomic ring used by the BFV
// scheme, using arbitrary-precision coefficients throughout.
package ring

import (
	"fmt"
	"math/big"
)

// Ring is the (N, Q) pair every polynomial operation is parametrized by.
// A Ring is immutable after construction and safe to share across
// goroutines.
type Ring struct {
	N int      // ring degree, a power of two
	Q *big.Int // coefficient modulus
}

// NewRing returns a Ring of degree n over modulus q. n must be a power
// of two and q must be positive; callers that need full parameter
// validation should go through core/rlwe.NewParametersFromLiteral
// instead, which calls this constructor once q has already been chosen.
func NewRing(n int, q *big.Int) (*Ring, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("ring.NewRing: N=%d is not a power of two", n)
	}
	if q.Sign() <= 0 {
		return nil, fmt.Errorf("ring.NewRing: Q must be positive")
	}
	return &Ring{N: n, Q: new(big.Int).Set(q)}, nil
}

// NewPoly returns a zero-valued polynomial in this ring.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.N)
}

func (r *Ring) checkLen(a, b Poly) {
	if len(a) != r.N || len(b) != r.N {
		panic(fmt.Sprintf("ring: operand length mismatch (want %d)", r.N))
	}
}

// Add returns (a+b) mod Q, componentwise.
func (r *Ring) Add(a, b Poly) Poly {
	r.checkLen(a, b)
	out := r.NewPoly()
	for i := range out {
		out[i].Add(a[i], b[i])
		out[i].Mod(out[i], r.Q)
	}
	return out
}

// Sub returns (a-b) mod Q, componentwise.
func (r *Ring) Sub(a, b Poly) Poly {
	r.checkLen(a, b)
	out := r.NewPoly()
	for i := range out {
		out[i].Sub(a[i], b[i])
		out[i].Mod(out[i], r.Q)
	}
	return out
}

// Neg returns (-a) mod Q, componentwise.
func (r *Ring) Neg(a Poly) Poly {
	out := r.NewPoly()
	for i := range out {
		out[i].Neg(a[i])
		out[i].Mod(out[i], r.Q)
	}
	return out
}

// MulScalar returns (a*k) mod Q, componentwise, promoting to
// arbitrary-precision before reduction so no overflow occurs regardless
// of the magnitude of k.
func (r *Ring) MulScalar(a Poly, k *big.Int) Poly {
	out := r.NewPoly()
	for i := range out {
		out[i].Mul(a[i], k)
		out[i].Mod(out[i], r.Q)
	}
	return out
}

// MulCoeffs returns the negacyclic product a*b mod Q: the 2N-1 term
// convolution of a and b, folded modulo X^N+1 (coefficient i of the
// upper half subtracted back into coefficient i-N), then reduced into
// [0, Q) per coefficient. Accumulation happens in arbitrary precision
// since partial sums can reach N*(Q-1)^2 before folding.
func (r *Ring) MulCoeffs(a, b Poly) Poly {
	r.checkLen(a, b)
	raw := NegacyclicConvolve(a, b, r.N)
	out := r.NewPoly()
	for i := range out {
		out[i].Mod(raw[i], r.Q)
	}
	return out
}

// ReduceCenter returns, for every coefficient v in [0, Q), its centered
// representative: v if v <= floor(Q/2), else v-Q. Used for decoding and
// for noise inspection; the result is not reduced mod Q and may be
// negative.
func (r *Ring) ReduceCenter(a Poly) Poly {
	half := new(big.Int).Rsh(r.Q, 1)
	out := make(Poly, len(a))
	for i, c := range a {
		v := new(big.Int).Mod(c, r.Q)
		if v.Cmp(half) > 0 {
			v.Sub(v, r.Q)
		}
		out[i] = v
	}
	return out
}

// Fold reduces every coefficient of a raw (possibly negative,
// possibly-larger-than-Q) accumulator into [0, Q).
func (r *Ring) Fold(a Poly) Poly {
	out := make(Poly, len(a))
	for i, c := range a {
		out[i] = new(big.Int).Mod(c, r.Q)
	}
	return out
}

// RescaleTo folds a raw accumulator into [0, Q), applies the rounded
// (num/Q) rescale to each coefficient, and reduces the
// result modulo finalMod. Decryption scaling calls this with
// num=t, finalMod=t; tensor-product rescaling calls it with num=t,
// finalMod=Q (the rescaled coefficients remain elements of R_Q).
// Folding happens before rescaling (fold-then-rescale) so that
// ScaleRound only ever sees a nonnegative v.
func (r *Ring) RescaleTo(raw Poly, num, finalMod *big.Int) Poly {
	folded := r.Fold(raw)
	out := make(Poly, len(folded))
	for i, v := range folded {
		s := ScaleRound(v, num, r.Q)
		s.Mod(s, finalMod)
		out[i] = s
	}
	return out
}
