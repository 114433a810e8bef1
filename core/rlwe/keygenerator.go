package rlwe

import (
	"fmt"

	"github.com/tuneinsight/bfvengine/ring"
	"github.com/tuneinsight/bfvengine/utils/sampling"
)

// KeyGenerator generates SecretKey, PublicKey and RelinearizationKey
// values for a fixed Parameters. Every operation draws fresh
// randomness; a KeyGenerator holds no hidden state beyond its PRNG and
// is otherwise a pure function of Parameters.
type KeyGenerator struct {
	params Parameters
	prng   sampling.PRNG
	mult   ring.Multiplier
}

// NewKeyGenerator returns a KeyGenerator seeded from a fresh
// cryptographically strong PRNG.
func NewKeyGenerator(params Parameters) (*KeyGenerator, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("rlwe.NewKeyGenerator: %w", err)
	}
	return newKeyGenerator(params, prng), nil
}

// NewSeededKeyGenerator returns a KeyGenerator whose sampler is
// deterministic for the given seed, the constructor every engine test
// suite relies on for reproducible fixtures.
func NewSeededKeyGenerator(params Parameters, seed []byte) (*KeyGenerator, error) {
	prng, err := sampling.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("rlwe.NewSeededKeyGenerator: %w", err)
	}
	return newKeyGenerator(params, prng), nil
}

func newKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{
		params: params,
		prng:   prng,
		mult:   ring.NewNativeMultiplier(params.Ring()),
	}
}

// GenSecretKeyNew samples a fresh ternary SecretKey.
func (kg *KeyGenerator) GenSecretKeyNew() (*SecretKey, error) {
	ts, err := sampling.NewTernarySampler(kg.prng, kg.params.N(), kg.params.Q())
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenSecretKeyNew: %w", err)
	}
	return &SecretKey{Value: ts.ReadNew()}, nil
}

// noiseSampler returns a bounded-Gaussian sampler at this Parameters'
// σ, using the default 6σ clipping bound.
func (kg *KeyGenerator) noiseSampler() (*sampling.GaussianSampler, error) {
	return sampling.NewGaussianSampler(kg.prng, kg.params.N(), kg.params.Q(), kg.params.Sigma())
}

// GenPublicKeyNew derives a PublicKey from sk: a uniform,
// e bounded-Gaussian, b = -(a·s + e) mod q.
func (kg *KeyGenerator) GenPublicKeyNew(sk *SecretKey) (*PublicKey, error) {
	r := kg.params.Ring()

	us, err := sampling.NewUniformSampler(kg.prng, kg.params.N(), kg.params.Q())
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenPublicKeyNew: %w", err)
	}
	gs, err := kg.noiseSampler()
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenPublicKeyNew: %w", err)
	}

	a := us.ReadNew()
	e := gs.ReadNew()

	as, err := kg.mult.Multiply(a, sk.Value)
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenPublicKeyNew: %w", err)
	}
	ase := r.Add(as, e)
	b := r.Neg(ase)

	return &PublicKey{B: b, A: a}, nil
}

// GenKeyPairNew generates a SecretKey and its corresponding PublicKey.
func (kg *KeyGenerator) GenKeyPairNew() (*SecretKey, *PublicKey, error) {
	sk, err := kg.GenSecretKeyNew()
	if err != nil {
		return nil, nil, err
	}
	pk, err := kg.GenPublicKeyNew(sk)
	if err != nil {
		return nil, nil, err
	}
	return sk, pk, nil
}

// encryptKnownNew returns a fresh encryption-under-s of an arbitrary
// known polynomial msg, the "encrypt_known" primitive uses twice
// to build the RelinearizationKey: draw a fresh (a', e'), return
// (-(a'·s + e') + msg mod q, a').
func (kg *KeyGenerator) encryptKnownNew(sk *SecretKey, msg ring.Poly) (b, a ring.Poly, err error) {
	r := kg.params.Ring()

	us, err := sampling.NewUniformSampler(kg.prng, kg.params.N(), kg.params.Q())
	if err != nil {
		return nil, nil, err
	}
	gs, err := kg.noiseSampler()
	if err != nil {
		return nil, nil, err
	}

	a = us.ReadNew()
	e := gs.ReadNew()

	as, err := kg.mult.Multiply(a, sk.Value)
	if err != nil {
		return nil, nil, err
	}
	noise := r.Add(as, e)
	b = r.Add(r.Neg(noise), msg)
	return b, a, nil
}

// GenRelinearizationKeyNew generates the two-part base-T
// RelinearizationKey: k0 encrypts s^2 under s, k1 encrypts T·s^2
// under s.
func (kg *KeyGenerator) GenRelinearizationKeyNew(sk *SecretKey) (*RelinearizationKey, error) {
	r := kg.params.Ring()

	s2, err := kg.mult.Multiply(sk.Value, sk.Value)
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenRelinearizationKeyNew: %w", err)
	}

	k0b, k0a, err := kg.encryptKnownNew(sk, s2)
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenRelinearizationKeyNew: %w", err)
	}

	s2T := r.MulScalar(s2, kg.params.DecompositionBase())
	k1b, k1a, err := kg.encryptKnownNew(sk, s2T)
	if err != nil {
		return nil, fmt.Errorf("rlwe.KeyGenerator.GenRelinearizationKeyNew: %w", err)
	}

	return &RelinearizationKey{K0B: k0b, K0A: k0a, K1B: k1b, K1A: k1a}, nil
}
