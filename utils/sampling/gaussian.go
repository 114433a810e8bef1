package sampling

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/tuneinsight/bfvengine/ring"
)

// GaussianSampler draws coefficients from a discrete Gaussian of
// standard deviation Sigma, clipped to [-Bound, Bound]. The
// clipping bound is a deliberate worst-case noise bound that callers
// must not relax.
type GaussianSampler struct {
	prng  PRNG
	n     int
	q     *big.Int
	sigma float64
}

// NewGaussianSampler returns a bounded discrete Gaussian sampler.
// sigma must be strictly positive.
func NewGaussianSampler(prng PRNG, n int, q *big.Int, sigma float64) (*GaussianSampler, error) {
	if sigma <= 0 {
		return nil, newError("NewGaussianSampler", "sigma must be positive")
	}
	if n <= 0 {
		return nil, newError("NewGaussianSampler", "N must be positive")
	}
	return &GaussianSampler{prng: prng, n: n, q: q, sigma: sigma}, nil
}

// DefaultBound returns the default clipping bound B = ceil(6*sigma).
func (s *GaussianSampler) DefaultBound() int64 {
	return int64(math.Ceil(6 * s.sigma))
}

// two uniform float64s drawn from the PRNG for Box-Muller: u1 in (0,1)
// (a zero draw is lifted to 2^-53 so Log(u1) is finite) and u2 in [0,1).
func (s *GaussianSampler) uniformPair() (float64, float64) {
	buf := make([]byte, 16)
	if _, err := s.prng.Read(buf); err != nil {
		panic("sampling: PRNG read failed: " + err.Error())
	}
	const mantissaScale = 1 << 53
	u1 := float64(binary.BigEndian.Uint64(buf[0:8])>>11) / mantissaScale
	u2 := float64(binary.BigEndian.Uint64(buf[8:16])>>11) / mantissaScale
	if u1 == 0 {
		u1 = 1.0 / mantissaScale
	}
	return u1, u2
}

// sampleOne draws one sample from N(0, sigma^2), rounds to the nearest
// integer, and clips to [-bound, bound].
func (s *GaussianSampler) sampleOne(bound int64) int64 {
	u1, u2 := s.uniformPair()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	v := int64(math.Round(z * s.sigma))
	if v > bound {
		v = bound
	} else if v < -bound {
		v = -bound
	}
	return v
}

// ReadNew returns a fresh bounded-Gaussian polynomial using the default
// bound B = ceil(6*sigma).
func (s *GaussianSampler) ReadNew() ring.Poly {
	return s.ReadBoundedNew(s.DefaultBound())
}

// ReadBoundedNew returns a fresh bounded-Gaussian polynomial clipped to
// [-bound, bound], for callers that need a non-default bound.
func (s *GaussianSampler) ReadBoundedNew(bound int64) ring.Poly {
	p := make(ring.Poly, s.n)
	for i := range p {
		v := s.sampleOne(bound)
		p[i] = new(big.Int)
		if v < 0 {
			p[i].Sub(s.q, new(big.Int).SetInt64(-v))
		} else {
			p[i].SetInt64(v)
		}
	}
	return p
}
