package bfv

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
)

// TensorMultiplier computes the raw tensor product of two size-2
// ciphertexts and rescales it, the seam an NTT-based kernel may occupy
// instead of nativeTensorMultiplier: it accepts four length-N vectors
// with coefficients in [0, q) and must return three length-N vectors
// bit-identical to what nativeTensorMultiplier computes.
type TensorMultiplier interface {
	Multiply(c10, c11, c20, c21 ring.Poly) (d0, d1, d2 ring.Poly, err error)
}

type nativeTensorMultiplier struct {
	params rlwe.Parameters
}

// NewNativeTensorMultiplier returns the default TensorMultiplier: raw
// negacyclic convolution accumulated in arbitrary precision, folded
// into [0, q) and then rescaled by t/q.
func NewNativeTensorMultiplier(params rlwe.Parameters) TensorMultiplier {
	return &nativeTensorMultiplier{params: params}
}

func (m *nativeTensorMultiplier) Multiply(c10, c11, c20, c21 ring.Poly) (d0, d1, d2 ring.Poly, err error) {
	n := m.params.N()
	if len(c10) != n || len(c11) != n || len(c20) != n || len(c21) != n {
		return nil, nil, nil, fmt.Errorf("bfv.nativeTensorMultiplier.Multiply: operand length mismatch (want %d)", n)
	}

	r := m.params.Ring()
	t, q := m.params.T(), m.params.Q()

	raw00 := ring.NegacyclicConvolve(c10, c20, n)
	raw01 := ring.NegacyclicConvolve(c10, c21, n)
	raw10 := ring.NegacyclicConvolve(c11, c20, n)
	raw11 := ring.NegacyclicConvolve(c11, c21, n)

	raw1 := addRaw(raw01, raw10)

	d0 = r.RescaleTo(raw00, t, q)
	d1 = r.RescaleTo(raw1, t, q)
	d2 = r.RescaleTo(raw11, t, q)
	return d0, d1, d2, nil
}

// addRaw adds two unreduced accumulators coefficientwise without
// folding; the sum is folded later by RescaleTo.
func addRaw(a, b ring.Poly) ring.Poly {
	out := make(ring.Poly, len(a))
	for i := range out {
		out[i] = new(big.Int).Add(a[i], b[i])
	}
	return out
}
