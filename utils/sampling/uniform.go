package sampling

import (
	"math/big"

	"github.com/tuneinsight/bfvengine/ring"
)

// UniformSampler draws coefficients uniformly from [0, Q) via rejection
// sampling on the PRNG's byte stream.
type UniformSampler struct {
	prng PRNG
	n    int
	q    *big.Int
}

// NewUniformSampler returns a sampler producing length-n polynomials
// with coefficients uniform in [0, q).
func NewUniformSampler(prng PRNG, n int, q *big.Int) (*UniformSampler, error) {
	if n <= 0 {
		return nil, newError("NewUniformSampler", "N must be positive")
	}
	if q.Sign() <= 0 {
		return nil, newError("NewUniformSampler", "Q must be positive")
	}
	return &UniformSampler{prng: prng, n: n, q: q}, nil
}

// readCoeff draws one coefficient uniformly in [0, Q) via rejection sampling:
// draw ceil(bitlen(Q)/8) random bytes, mask to the next power-of-two-1
// bit mask, and retry if the result is not below Q.
func (s *UniformSampler) readCoeff() *big.Int {
	nbits := s.q.BitLen()
	nbytes := (nbits + 7) / 8
	mask := byte(0xFF)
	if rem := nbits % 8; rem != 0 {
		mask = byte((1 << uint(rem)) - 1)
	}

	buf := make([]byte, nbytes)
	v := new(big.Int)
	for {
		if _, err := s.prng.Read(buf); err != nil {
			// The PRNG abstraction never legitimately runs out of
			// entropy; a read failure here means a misconfigured PRNG,
			// which is a programmer error, not a SamplerError.
			panic("sampling: PRNG read failed: " + err.Error())
		}
		buf[0] &= mask
		v.SetBytes(buf)
		if v.Cmp(s.q) < 0 {
			return v
		}
	}
}

// ReadNew returns a fresh uniformly-sampled polynomial.
func (s *UniformSampler) ReadNew() ring.Poly {
	p := make(ring.Poly, s.n)
	for i := range p {
		p[i] = s.readCoeff()
	}
	return p
}
