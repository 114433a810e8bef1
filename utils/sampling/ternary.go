package sampling

import (
	"math/big"

	"github.com/tuneinsight/bfvengine/ring"
)

// TernarySampler draws each coefficient independently and uniformly
// from {-1, 0, 1}, rather than a fixed-Hamming-weight distribution.
type TernarySampler struct {
	prng PRNG
	n    int
	q    *big.Int
}

// NewTernarySampler returns a ternary sampler producing length-n
// polynomials with coefficients reduced into [0, q) (so -1 is
// represented as q-1, matching every other Poly in the engine).
func NewTernarySampler(prng PRNG, n int, q *big.Int) (*TernarySampler, error) {
	if n <= 0 {
		return nil, newError("NewTernarySampler", "N must be positive")
	}
	return &TernarySampler{prng: prng, n: n, q: q}, nil
}

// ReadNew returns a fresh ternary-sampled polynomial.
func (s *TernarySampler) ReadNew() ring.Poly {
	p := make(ring.Poly, s.n)
	buf := make([]byte, 1)
	for i := range p {
		p[i] = new(big.Int)

		// Bottom two bits map to {-1,0,1}; the 4th value is rejected
		// to keep the distribution exactly uniform over three outcomes.
		for {
			if _, err := s.prng.Read(buf); err != nil {
				panic("sampling: PRNG read failed: " + err.Error())
			}
			switch buf[0] & 0x3 {
			case 0:
				p[i].Sub(s.q, big.NewInt(1)) // -1 mod q
			case 1:
				// leave as zero
			case 2:
				p[i].SetInt64(1)
			default:
				continue
			}
			break
		}
	}
	return p
}
