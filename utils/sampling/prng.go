// Package sampling implements the PRNG abstraction and the three
// coefficient distributions the BFV engine draws from: uniform,
// ternary, and bounded discrete Gaussian.
package sampling

import (
	"crypto/rand"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// PRNG is an arbitrary-length byte stream. Samplers consume it to draw
// coefficients; it is the only source of non-determinism anywhere in
// the engine, since every other operation is deterministic arithmetic.
type PRNG interface {
	Read(p []byte) (int, error)
}

type xofPRNG struct {
	xof blake2b.XOF
}

func (p *xofPRNG) Read(b []byte) (int, error) { return p.xof.Read(b) }

// NewPRNG returns a cryptographically strong PRNG suitable for
// production key generation and encryption: a BLAKE2b XOF keyed with
// crypto/rand entropy, giving whitened unbounded output from a single
// seed read.
func NewPRNG() (PRNG, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("sampling.NewPRNG: %w", err)
	}
	x, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, fmt.Errorf("sampling.NewPRNG: %w", err)
	}
	return &xofPRNG{xof: x}, nil
}

type keyedPRNG struct {
	digest *blake3.Digest
}

func (p *keyedPRNG) Read(b []byte) (int, error) { return p.digest.Read(b) }

// NewKeyedPRNG returns a deterministic PRNG derived from seed: every
// sampler built on it reproduces the same coefficient stream for the
// same seed, which is what the engine's seeded constructors rely on
// for reproducible tests.
func NewKeyedPRNG(seed []byte) (PRNG, error) {
	key := blake3.Sum256(seed)
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		return nil, fmt.Errorf("sampling.NewKeyedPRNG: %w", err)
	}
	return &keyedPRNG{digest: h.Digest()}, nil
}
