// Package bignum provides arbitrary-precision numeric helpers the
// parameter selector and noise-budget diagnostics need beyond float64
// precision: q can run past the ~53 bits of mantissa float64 carries
// exactly, so deriving log2(q) for the decomposition base T, or
// cross-checking it against sqrt(q), goes through arbitrary-precision
// floats instead.
package bignum

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// Log2 returns log2(x) computed at prec bits of precision.
func Log2(x *big.Int, prec uint) *big.Float {
	f := new(big.Float).SetPrec(prec).SetInt(x)
	return bigfloat.Log2(f)
}

// Sqrt returns sqrt(x) computed at prec bits of precision.
func Sqrt(x *big.Int, prec uint) *big.Float {
	f := new(big.Float).SetPrec(prec).SetInt(x)
	return bigfloat.Sqrt(f)
}

// SqrtFloor returns floor(sqrt(x)) as a *big.Int, used by the
// parameter selector as a sanity cross-check on the decomposition base
// T it derives from Log2(q).
func SqrtFloor(x *big.Int) *big.Int {
	return new(big.Int).Sqrt(x)
}
