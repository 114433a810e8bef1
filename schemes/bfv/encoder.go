package bfv

import (
	"math/big"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/utils"
)

// Encoder packs integer vectors into Plaintext polynomials and unpacks
// them again. It holds no state beyond Parameters and is safe
// to share.
type Encoder struct {
	params rlwe.Parameters
}

// NewEncoder returns an Encoder for params.
func NewEncoder(params rlwe.Parameters) *Encoder {
	return &Encoder{params: params}
}

// Encode packs values into a length-N Plaintext: coefficient i gets
// values[i] mod t, zero-padded if values is shorter than N and
// truncated if longer.
func (e *Encoder) Encode(values []int64) *Plaintext {
	t := e.params.T()
	p := e.params.Ring().NewPoly()
	for i := 0; i < len(p) && i < len(values); i++ {
		v := big.NewInt(values[i])
		v.Mod(v, t)
		p[i] = v
	}
	return &Plaintext{Value: p, Params: e.params}
}

// Decode returns the centered representative (the
// [-floor(t/2), ceil(t/2)) window) of every coefficient of pt.
func (e *Encoder) Decode(pt *Plaintext) []int64 {
	t := e.params.T()
	out := make([]int64, len(pt.Value))
	for i, c := range pt.Value {
		out[i] = utils.CenteredWindow(c, t).Int64()
	}
	return out
}

// DecodeN returns the centered decode of only the first k coefficients,
// avoiding the full-N allocation when the caller only needs a prefix.
func (e *Encoder) DecodeN(pt *Plaintext, k int) []int64 {
	if k > len(pt.Value) {
		k = len(pt.Value)
	}
	t := e.params.T()
	out := make([]int64, k)
	for i := 0; i < k; i++ {
		out[i] = utils.CenteredWindow(pt.Value[i], t).Int64()
	}
	return out
}

// DecodeScalar returns the centered representative of coefficient 0
// only, the common case for single-value ciphertexts.
func (e *Encoder) DecodeScalar(pt *Plaintext) int64 {
	t := e.params.T()
	return utils.CenteredWindow(pt.Value[0], t).Int64()
}
