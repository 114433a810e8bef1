package bfv

import (
	"fmt"
	"log"
	"os"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
)

// Engine is the single entry point for BFV usage: it owns Parameters
// and whatever keys have been generated, and exposes the full
// encode/encrypt/decrypt/add/sub/multiply/relinearize surface without
// callers ever touching Encoder/Encryptor/Decryptor/Evaluator
// directly. An Engine is not safe for concurrent key generation; the
// homomorphic operations it wraps are safe to call concurrently once
// keys are installed.
type Engine struct {
	params  rlwe.Parameters
	seed    []byte
	logger  *log.Logger
	backend ring.Backend

	sk  *rlwe.SecretKey
	pk  *rlwe.PublicKey
	rlk *rlwe.RelinearizationKey

	encoder   *Encoder
	evaluator *Evaluator
}

// Option configures Engine construction: its backend choice and RNG
// seed.
type Option func(*Engine)

// WithRNGSeed makes every sampler this Engine's key generator and
// encryptor use deterministic, for reproducible tests.
func WithRNGSeed(seed []byte) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger overrides the diagnostic logger used for the
// BackendUnavailable fallback message; the default writes to stderr.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithBackend requests a Multiplier backend by name ("native" or
// "accelerated"). Requesting "accelerated" when none is bundled falls
// back to native with a logged diagnostic rather than failing
// construction.
func WithBackend(name string) Option {
	return func(e *Engine) {
		if name == "accelerated" {
			e.backend = ring.Accelerated
		}
	}
}

// NewEngine constructs an Engine for params. No keys are generated yet;
// call GenerateKeys and, if multiplication is needed, GenerateRelinKey.
func NewEngine(params rlwe.Parameters, opts ...Option) (*Engine, error) {
	e := &Engine{
		params:  params,
		logger:  log.New(os.Stderr, "bfv: ", log.LstdFlags),
		backend: ring.Native,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.backend == ring.Accelerated {
		if _, err := ring.NewAcceleratedMultiplier(params.Ring()); err != nil {
			e.logger.Printf("accelerated backend unavailable, falling back to native: %v", err)
			e.backend = ring.Native
		}
	}

	e.encoder = NewEncoder(params)
	e.evaluator = NewEvaluator(params, nil)

	return e, nil
}

// GenerateKeys draws a fresh SecretKey and PublicKey, using the
// seeded PRNG if WithRNGSeed was supplied.
func (e *Engine) GenerateKeys() error {
	kg, err := e.newKeyGenerator()
	if err != nil {
		return fmt.Errorf("bfv.Engine.GenerateKeys: %w", err)
	}
	sk, pk, err := kg.GenKeyPairNew()
	if err != nil {
		return fmt.Errorf("bfv.Engine.GenerateKeys: %w", err)
	}
	e.sk, e.pk = sk, pk
	return nil
}

// GenerateRelinKey draws a RelinearizationKey from the installed
// SecretKey. GenerateKeys must have been called first.
func (e *Engine) GenerateRelinKey() error {
	if e.sk == nil {
		return rlwe.NewKeyError("bfv.Engine.GenerateRelinKey", "no secret key installed; call GenerateKeys first")
	}
	kg, err := e.newKeyGenerator()
	if err != nil {
		return fmt.Errorf("bfv.Engine.GenerateRelinKey: %w", err)
	}
	rlk, err := kg.GenRelinearizationKeyNew(e.sk)
	if err != nil {
		return fmt.Errorf("bfv.Engine.GenerateRelinKey: %w", err)
	}
	e.rlk = rlk
	e.evaluator = NewEvaluator(e.params, rlk)
	return nil
}

func (e *Engine) newKeyGenerator() (*rlwe.KeyGenerator, error) {
	if e.seed != nil {
		return rlwe.NewSeededKeyGenerator(e.params, e.seed)
	}
	return rlwe.NewKeyGenerator(e.params)
}

func (e *Engine) newEncryptor() (*Encryptor, error) {
	if e.seed != nil {
		return NewSeededEncryptor(e.params, e.pk, e.seed)
	}
	return NewEncryptor(e.params, e.pk)
}

// Encode packs values into a Plaintext.
func (e *Engine) Encode(values []int64) *Plaintext { return e.encoder.Encode(values) }

// Decode unpacks pt's centered representatives.
func (e *Engine) Decode(pt *Plaintext) []int64 { return e.encoder.Decode(pt) }

// Encrypt encrypts pt under the installed PublicKey.
func (e *Engine) Encrypt(pt *Plaintext) (*Ciphertext, error) {
	enc, err := e.newEncryptor()
	if err != nil {
		return nil, fmt.Errorf("bfv.Engine.Encrypt: %w", err)
	}
	return enc.EncryptNew(pt)
}

// Decrypt recovers the Plaintext encrypted in ct using the installed
// SecretKey.
func (e *Engine) Decrypt(ct *Ciphertext) (*Plaintext, error) {
	dec := NewDecryptor(e.params, e.sk)
	return dec.DecryptNew(ct)
}

// Add returns a+b.
func (e *Engine) Add(a, b *Ciphertext) (*Ciphertext, error) { return e.evaluator.AddNew(a, b) }

// Sub returns a-b.
func (e *Engine) Sub(a, b *Ciphertext) (*Ciphertext, error) { return e.evaluator.SubNew(a, b) }

// Multiply tensors a and b into a size-3 ciphertext.
func (e *Engine) Multiply(a, b *Ciphertext) (*Ciphertext, error) { return e.evaluator.MultiplyNew(a, b) }

// Relinearize reduces a size-3 ciphertext back to size 2.
func (e *Engine) Relinearize(ct *Ciphertext) (*Ciphertext, error) { return e.evaluator.RelinearizeNew(ct) }

// BackendInfo reports the active Multiplier backend.
func (e *Engine) BackendInfo() BackendInfo { return e.evaluator.BackendInfo() }

// Parameters returns the Parameters this Engine was constructed with.
func (e *Engine) Parameters() rlwe.Parameters { return e.params }

// PublicKey returns the installed PublicKey, or nil if GenerateKeys has
// not been called.
func (e *Engine) PublicKey() *rlwe.PublicKey { return e.pk }

// RelinearizationKey returns the installed RelinearizationKey, or nil if
// GenerateRelinKey has not been called.
func (e *Engine) RelinearizationKey() *rlwe.RelinearizationKey { return e.rlk }
