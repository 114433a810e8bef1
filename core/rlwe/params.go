// Package rlwe implements the scheme-independent ring-LWE primitives
// the BFV scheme builds on: parameter selection, key types and
// key generation.
package rlwe

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/bfvengine/ring"
	"github.com/tuneinsight/bfvengine/utils/bignum"
	"github.com/zeebo/blake3"
)

// DefaultSigma is the default noise standard deviation.
const DefaultSigma = 3.2

// ParametersLiteral is the user-facing, JSON/YAML-serializable
// configuration: the inputs to the parameter selector, before the
// selector has chosen q.
type ParametersLiteral struct {
	LogN                 int     `json:"logN" yaml:"logN"`
	PlaintextModulus     uint64  `json:"t" yaml:"t"`
	QBits                int     `json:"qBits" yaml:"qBits"`
	Sigma                float64 `json:"sigma" yaml:"sigma"`
	RequireNTTFriendly   bool    `json:"requireNTTFriendly" yaml:"requireNTTFriendly"`
}

// Parameters is the immutable output of the selector: N, t, q,
// σ, Δ and T. Parameters is safe to share across goroutines and is
// carried by reference from every Ciphertext it produced.
type Parameters struct {
	logN               int
	n                  int
	t                  *big.Int
	sigma              float64
	delta              *big.Int
	decompositionBase  *big.Int
	requireNTTFriendly bool
	ring               *ring.Ring
}

// NewParametersFromLiteral runs the selector: starting from
// q0 = 2^QBits, it either searches for the smallest NTT-friendly prime
// q >= q0 rounded to a multiple of 2N (RequireNTTFriendly=true), or
// searches forward from q0-1 for the nearest prime with no NTT-friendly
// constraint (RequireNTTFriendly=false). It fails with a
// *ParameterError if N is not a power of two, if t >= q, or if the
// selector's bounded search exhausts its window.
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, error) {
	if lit.LogN <= 0 {
		return Parameters{}, paramErr("NewParametersFromLiteral", "LogN must be positive, got %d", lit.LogN)
	}
	n := 1 << uint(lit.LogN)

	if lit.PlaintextModulus == 0 {
		return Parameters{}, paramErr("NewParametersFromLiteral", "plaintext modulus t must be positive")
	}
	t := new(big.Int).SetUint64(lit.PlaintextModulus)

	if lit.QBits <= 0 {
		return Parameters{}, paramErr("NewParametersFromLiteral", "QBits must be positive, got %d", lit.QBits)
	}

	q0 := new(big.Int).Lsh(big.NewInt(1), uint(lit.QBits))

	var q *big.Int
	var err error
	if lit.RequireNTTFriendly {
		q, err = ring.NextNTTPrime(q0, n)
		if err != nil {
			return Parameters{}, paramErr("NewParametersFromLiteral", "selector failed: %v", err)
		}
	} else {
		// "q = 2^QBits - 1 is permitted (with no NTT acceleration)" still
		// has to land on a prime: the Data Model invariant "q prime" is
		// unconditional, so search forward from that candidate rather
		// than accepting it verbatim.
		q, err = ring.NextPrime(new(big.Int).Sub(q0, big.NewInt(1)))
		if err != nil {
			return Parameters{}, paramErr("NewParametersFromLiteral", "selector failed: %v", err)
		}
	}

	if t.Cmp(q) >= 0 {
		return Parameters{}, paramErr("NewParametersFromLiteral", "plaintext modulus t=%s must be smaller than q=%s", t.String(), q.String())
	}

	r, err := ring.NewRing(n, q)
	if err != nil {
		return Parameters{}, paramErr("NewParametersFromLiteral", "%v", err)
	}

	sigma := lit.Sigma
	if sigma <= 0 {
		sigma = DefaultSigma
	}

	delta := new(big.Int).Div(q, t)
	decompositionBase := decompositionBaseFor(q)

	return Parameters{
		logN:               lit.LogN,
		n:                  n,
		t:                  t,
		sigma:              sigma,
		delta:              delta,
		decompositionBase:  decompositionBase,
		requireNTTFriendly: lit.RequireNTTFriendly,
		ring:               r,
	}, nil
}

// decompositionBaseFor derives T = 2^(floor(log2 q)/2), the
// relinearization decomposition base, from q's arbitrary-precision log2
// rather than its raw bit length, and cross-checks the result against
// floor(sqrt(q)). Because both halvings floor, 2^(floor(log2 q)/2) sits
// below sqrt(q) by less than a factor of 2; the check panics only if the
// integer quotient of the larger value by the smaller exceeds 4.
func decompositionBaseFor(q *big.Int) *big.Int {
	logQ, _ := bignum.Log2(q, uint(q.BitLen())+64).Int64()
	base := new(big.Int).Lsh(big.NewInt(1), uint(logQ/2))

	sqrtQ := bignum.SqrtFloor(q)
	lo, hi := base, sqrtQ
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	ratio := new(big.Int).Div(hi, lo)
	if ratio.Cmp(big.NewInt(4)) > 0 {
		panic(fmt.Sprintf("rlwe: decomposition base %s and sqrt(q) %s disagree beyond the expected bound", base, sqrtQ))
	}
	return base
}

// fromDecoded builds Parameters directly from an already-known q,
// bypassing the selector search; used by UnmarshalBinary
// to reconstruct Parameters exactly rather than re-deriving a possibly
// different prime for the same QBits.
func fromDecoded(lit ParametersLiteral, q *big.Int) (Parameters, error) {
	n := 1 << uint(lit.LogN)
	t := new(big.Int).SetUint64(lit.PlaintextModulus)
	if t.Cmp(q) >= 0 {
		return Parameters{}, paramErr("fromDecoded", "plaintext modulus t=%s must be smaller than q=%s", t.String(), q.String())
	}
	r, err := ring.NewRing(n, q)
	if err != nil {
		return Parameters{}, paramErr("fromDecoded", "%v", err)
	}
	sigma := lit.Sigma
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	delta := new(big.Int).Div(q, t)
	decompositionBase := decompositionBaseFor(q)
	return Parameters{
		logN:               lit.LogN,
		n:                  n,
		t:                  t,
		sigma:              sigma,
		delta:              delta,
		decompositionBase:  decompositionBase,
		requireNTTFriendly: lit.RequireNTTFriendly,
		ring:               r,
	}, nil
}

// N returns the ring degree.
func (p Parameters) N() int { return p.n }

// LogN returns log2(N).
func (p Parameters) LogN() int { return p.logN }

// T returns the plaintext modulus.
func (p Parameters) T() *big.Int { return new(big.Int).Set(p.t) }

// Q returns the ciphertext modulus.
func (p Parameters) Q() *big.Int { return new(big.Int).Set(p.ring.Q) }

// Sigma returns the noise standard deviation.
func (p Parameters) Sigma() float64 { return p.sigma }

// Delta returns Δ = floor(q/t), the plaintext scaling factor.
func (p Parameters) Delta() *big.Int { return new(big.Int).Set(p.delta) }

// DecompositionBase returns T, the relinearization base.
func (p Parameters) DecompositionBase() *big.Int { return new(big.Int).Set(p.decompositionBase) }

// RequireNTTFriendly reports whether the selector was constrained to
// find a prime q ≡ 1 (mod 2N).
func (p Parameters) RequireNTTFriendly() bool { return p.requireNTTFriendly }

// NTTFriendly reports whether the actual chosen q happens to satisfy
// q ≡ 1 (mod 2N), regardless of whether that was required.
func (p Parameters) NTTFriendly() bool { return ring.IsNTTFriendly(p.ring.Q, p.n) }

// Ring returns the underlying ring.Ring these Parameters are built on.
func (p Parameters) Ring() *ring.Ring { return p.ring }

// Equal reports whether two Parameters describe the same (N, t, q, σ).
func (p Parameters) Equal(other Parameters) bool {
	return p.n == other.n &&
		p.t.Cmp(other.t) == 0 &&
		p.ring.Q.Cmp(other.ring.Q) == 0 &&
		p.sigma == other.sigma
}

// fingerprintPayload returns the byte layout Fingerprint hashes: the
// same fields MarshalBinary writes, so two Parameters with identical
// wire encodings always have identical fingerprints.
func (p Parameters) fingerprintPayload() []byte {
	var buf fingerprintBuffer
	_ = p.MarshalBinaryTo(&buf)
	return buf.b
}

type fingerprintBuffer struct{ b []byte }

func (f *fingerprintBuffer) Write(p []byte) (int, error) {
	f.b = append(f.b, p...)
	return len(p), nil
}

// Fingerprint returns the 16-byte BLAKE3 digest of this Parameters'
// stable byte layout, used to detect mismatched ciphertexts on
// add/sub/multiply without comparing full Parameters values.
func (p Parameters) Fingerprint() [16]byte {
	sum := blake3.Sum256(p.fingerprintPayload())
	var out [16]byte
	copy(out[:], sum[:16])
	return out
}
