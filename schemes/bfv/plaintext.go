// Package bfv implements the Brakerski-Fan-Vercauteren scheme on top of
// core/rlwe: encoding, encryption, decryption, homomorphic add/sub/
// multiply, relinearization, and the Engine facade that ties them
// together.
package bfv

import (
	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
)

// Plaintext is a polynomial with every coefficient in [0, t). It
// carries its Parameters so Encrypt and Decode never need a second
// argument to know N and t.
type Plaintext struct {
	Value  ring.Poly
	Params rlwe.Parameters
}

// NewPlaintext returns a zero-valued Plaintext for params.
func NewPlaintext(params rlwe.Parameters) *Plaintext {
	return &Plaintext{Value: params.Ring().NewPoly(), Params: params}
}
