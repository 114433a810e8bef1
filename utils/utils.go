// Package utils collects small generic helpers shared across the
// engine's packages.
package utils

import (
	"math/big"

	"golang.org/x/exp/slices"
)

// EqualSlice reports whether two comparable slices hold the same
// elements in the same order.
func EqualSlice[T comparable](a, b []T) bool {
	return slices.Equal(a, b)
}

// EqualBigIntSlice reports whether two []*big.Int slices are
// elementwise equal. *big.Int is not comparable, so this cannot reuse
// slices.Equal directly.
func EqualBigIntSlice(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// CenteredWindow maps v, assumed to be in [0, modulus), into the
// centered window [-floor(modulus/2), ceil(modulus/2)) used by the
// Encoder's decode methods.
func CenteredWindow(v, modulus *big.Int) *big.Int {
	half := new(big.Int).Add(modulus, big.NewInt(1))
	half.Rsh(half, 1)
	out := new(big.Int).Mod(v, modulus)
	if out.Cmp(half) >= 0 {
		out.Sub(out, modulus)
	}
	return out
}
