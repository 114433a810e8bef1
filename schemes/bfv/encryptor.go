package bfv

import (
	"fmt"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
	"github.com/tuneinsight/bfvengine/utils/sampling"
)

// Encryptor turns a Plaintext into a size-2 Ciphertext under a
// PublicKey. Constructing one without a key is allowed;
// Encrypt fails with a *rlwe.KeyError only when actually invoked.
type Encryptor struct {
	params rlwe.Parameters
	pk     *rlwe.PublicKey
	prng   sampling.PRNG
	mult   ring.Multiplier
}

// NewEncryptor returns an Encryptor using fresh cryptographically
// strong randomness.
func NewEncryptor(params rlwe.Parameters, pk *rlwe.PublicKey) (*Encryptor, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("bfv.NewEncryptor: %w", err)
	}
	return newEncryptor(params, pk, prng), nil
}

// NewSeededEncryptor returns an Encryptor whose sampling is
// deterministic for the given seed.
func NewSeededEncryptor(params rlwe.Parameters, pk *rlwe.PublicKey, seed []byte) (*Encryptor, error) {
	prng, err := sampling.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("bfv.NewSeededEncryptor: %w", err)
	}
	return newEncryptor(params, pk, prng), nil
}

func newEncryptor(params rlwe.Parameters, pk *rlwe.PublicKey, prng sampling.PRNG) *Encryptor {
	return &Encryptor{
		params: params,
		pk:     pk,
		prng:   prng,
		mult:   ring.NewNativeMultiplier(params.Ring()),
	}
}

// EncryptNew encrypts pt under the installed PublicKey:
//
//	u ternary, e1/e2 bounded-Gaussian
//	c0 = pk.B*u + e1 + Delta*m (mod q)
//	c1 = pk.A*u + e2          (mod q)
func (enc *Encryptor) EncryptNew(pt *Plaintext) (*Ciphertext, error) {
	if enc.pk == nil {
		return nil, rlwe.NewKeyError("bfv.Encryptor.EncryptNew", "no public key installed")
	}

	r := enc.params.Ring()

	ts, err := sampling.NewTernarySampler(enc.prng, enc.params.N(), enc.params.Q())
	if err != nil {
		return nil, fmt.Errorf("bfv.Encryptor.EncryptNew: %w", err)
	}
	gs, err := sampling.NewGaussianSampler(enc.prng, enc.params.N(), enc.params.Q(), enc.params.Sigma())
	if err != nil {
		return nil, fmt.Errorf("bfv.Encryptor.EncryptNew: %w", err)
	}

	u := ts.ReadNew()
	e1 := gs.ReadNew()
	e2 := gs.ReadNew()

	bu, err := enc.mult.Multiply(enc.pk.B, u)
	if err != nil {
		return nil, fmt.Errorf("bfv.Encryptor.EncryptNew: %w", err)
	}
	au, err := enc.mult.Multiply(enc.pk.A, u)
	if err != nil {
		return nil, fmt.Errorf("bfv.Encryptor.EncryptNew: %w", err)
	}

	deltaM := r.MulScalar(pt.Value, enc.params.Delta())

	c0 := r.Add(r.Add(bu, e1), deltaM)
	c1 := r.Add(au, e2)

	return &Ciphertext{Value: []ring.Poly{c0, c1}, Params: enc.params}, nil
}
