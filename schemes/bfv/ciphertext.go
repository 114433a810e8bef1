package bfv

import (
	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
)

// Ciphertext is an ordered tuple of 2 or 3 polynomials plus a reference
// to the Parameters it was produced under. Size 3 arises only from
// one tensoring multiplication; size 2 is canonical and is what
// Encrypt and Relinearize always return (Add and Sub return the size of
// their operands). Ciphertext values are
// immutable by convention: every operation returns a new one.
type Ciphertext struct {
	Value  []ring.Poly
	Params rlwe.Parameters
}

// NewCiphertext returns a zero-valued Ciphertext of the given size (2 or 3).
func NewCiphertext(params rlwe.Parameters, size int) *Ciphertext {
	v := make([]ring.Poly, size)
	for i := range v {
		v[i] = params.Ring().NewPoly()
	}
	return &Ciphertext{Value: v, Params: params}
}

// Size returns the number of polynomials this ciphertext carries.
func (ct *Ciphertext) Size() int { return len(ct.Value) }

// checkCompatible verifies a and b share a fingerprint and size before a
// componentwise operation runs, failing with *rlwe.ParameterMismatch
// otherwise.
func checkCompatible(op string, a, b *Ciphertext) error {
	if a.Size() != b.Size() {
		return rlwe.NewParameterMismatch(op, "ciphertext size mismatch: %d vs %d", a.Size(), b.Size())
	}
	if a.Params.Fingerprint() != b.Params.Fingerprint() {
		return rlwe.NewParameterMismatch(op, "ciphertexts were produced under different parameters")
	}
	return nil
}
