package ring

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
)

// ErrBackendUnavailable is returned by NewAcceleratedMultiplier. No
// accelerator binding ships with this module; an acceleration backend
// is specified only via the Multiplier interface contract. Callers are
// expected to catch this error and fall back to Native, logging a
// diagnostic.
var ErrBackendUnavailable = fmt.Errorf("ring: accelerated backend unavailable")

// NewAcceleratedMultiplier reports whether the host could in principle
// run an NTT-accelerated Multiplier satisfying the external
// multiplier contract (an NTT-friendly modulus and SIMD support useful
// to such a kernel), then always fails with ErrBackendUnavailable: this
// module carries no accelerator implementation, only the contract an
// external one must satisfy.
func NewAcceleratedMultiplier(r *Ring) (Multiplier, error) {
	nttFriendly := IsNTTFriendly(r.Q, r.N)
	return nil, fmt.Errorf("%w (ntt_friendly=%v, avx2=%v, avx512=%v)",
		ErrBackendUnavailable, nttFriendly, cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.AVX512F))
}
