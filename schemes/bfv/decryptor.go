package bfv

import (
	"fmt"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
)

// Decryptor recovers a Plaintext from a size-2 Ciphertext using a
// SecretKey. Size-3 ciphertexts are rejected with ErrNotRelinearized
// rather than decrypted via the s^2 term; callers must relinearize
// first.
type Decryptor struct {
	params rlwe.Parameters
	sk     *rlwe.SecretKey
	mult   ring.Multiplier
}

// NewDecryptor returns a Decryptor bound to sk.
func NewDecryptor(params rlwe.Parameters, sk *rlwe.SecretKey) *Decryptor {
	return &Decryptor{
		params: params,
		sk:     sk,
		mult:   ring.NewNativeMultiplier(params.Ring()),
	}
}

// DecryptNew recovers the Plaintext encrypted in ct:
//
//	nu = c0 + c1*s (mod q)
//	m  = round(nu * t / q) mod t
func (dec *Decryptor) DecryptNew(ct *Ciphertext) (*Plaintext, error) {
	if dec.sk == nil {
		return nil, rlwe.NewKeyError("bfv.Decryptor.DecryptNew", "no secret key installed")
	}
	if ct.Size() == 3 {
		return nil, ErrNotRelinearized
	}
	if ct.Size() != 2 {
		return nil, fmt.Errorf("bfv.Decryptor.DecryptNew: unsupported ciphertext size %d", ct.Size())
	}
	if ct.Params.Fingerprint() != dec.params.Fingerprint() {
		return nil, rlwe.NewParameterMismatch("bfv.Decryptor.DecryptNew", "ciphertext was produced under different parameters")
	}

	r := dec.params.Ring()

	c1s, err := dec.mult.Multiply(ct.Value[1], dec.sk.Value)
	if err != nil {
		return nil, fmt.Errorf("bfv.Decryptor.DecryptNew: %w", err)
	}
	nu := r.Add(ct.Value[0], c1s)

	m := r.RescaleTo(nu, dec.params.T(), dec.params.T())

	return &Plaintext{Value: m, Params: dec.params}, nil
}
