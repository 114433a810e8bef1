package rlwe

import "github.com/tuneinsight/bfvengine/ring"

// SecretKey holds one ternary-coefficient polynomial s. It is
// held only by the decrypting party and must never be shared.
type SecretKey struct {
	Value ring.Poly
}

// PublicKey holds the pair (b, a) with b = -(a·s + e) mod q.
// Freely distributable.
type PublicKey struct {
	B, A ring.Poly
}

// RelinearizationKey holds the two base-T encryptions of s^2 used to
// relinearize a size-3 ciphertext back down to size 2.
type RelinearizationKey struct {
	// K0 encrypts s^2 under s: K0 = (b0, a0).
	K0B, K0A ring.Poly
	// K1 encrypts T*s^2 under s: K1 = (b1, a1).
	K1B, K1A ring.Poly
}
