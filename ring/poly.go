package ring

import (
	"math/big"

	"github.com/tuneinsight/bfvengine/utils"
)

// Poly is a length-N vector of arbitrary-precision coefficients. A Poly
// produced by a public Ring operation always has every coefficient
// reduced into [0, Q); intermediate accumulators used internally during
// multiplication are allowed to exceed that range and carry a sign.
type Poly []*big.Int

// NewPoly returns a zero-valued polynomial of degree N.
func NewPoly(n int) Poly {
	p := make(Poly, n)
	for i := range p {
		p[i] = new(big.Int)
	}
	return p
}

// CopyNew returns a deep copy of p.
func (p Poly) CopyNew() Poly {
	q := make(Poly, len(p))
	for i, c := range p {
		q[i] = new(big.Int).Set(c)
	}
	return q
}

// Equal reports whether p and other have the same length and coefficients.
func (p Poly) Equal(other Poly) bool {
	return utils.EqualBigIntSlice(p, other)
}

// FromUint64 packs a []uint64 slice into a Poly, zero-padding or
// truncating to length n.
func FromUint64(values []uint64, n int) Poly {
	p := NewPoly(n)
	for i := 0; i < n && i < len(values); i++ {
		p[i].SetUint64(values[i])
	}
	return p
}
