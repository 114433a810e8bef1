package bfv

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
)

// BackendInfo reports which ring multiplication strategy an Evaluator
// is using.
type BackendInfo struct {
	BackendName string
	Q           *big.Int
	NTTFriendly bool
}

// Evaluator implements the homomorphic operations:
// componentwise add/sub, tensoring multiplication, and base-T
// relinearization. An Evaluator with no RelinearizationKey installed
// can still Add, Sub and Multiply; only Relinearize requires one.
type Evaluator struct {
	params rlwe.Parameters
	rlk    *rlwe.RelinearizationKey
	mult   ring.Multiplier
	tensor TensorMultiplier
}

// NewEvaluator returns an Evaluator for params. rlk may be nil; it is
// only needed by Relinearize.
func NewEvaluator(params rlwe.Parameters, rlk *rlwe.RelinearizationKey) *Evaluator {
	return &Evaluator{
		params: params,
		rlk:    rlk,
		mult:   ring.NewNativeMultiplier(params.Ring()),
		tensor: NewNativeTensorMultiplier(params),
	}
}

// WithTensorMultiplier returns a copy of ev using an alternate
// TensorMultiplier, leaving ev itself untouched.
func (ev *Evaluator) WithTensorMultiplier(t TensorMultiplier) *Evaluator {
	cp := *ev
	cp.tensor = t
	return &cp
}

// BackendInfo reports the Multiplier backend this Evaluator uses, the
// ciphertext modulus, and whether it is NTT-friendly.
func (ev *Evaluator) BackendInfo() BackendInfo {
	return BackendInfo{
		BackendName: ev.mult.Backend().String(),
		Q:           ev.params.Q(),
		NTTFriendly: ev.params.NTTFriendly(),
	}
}

// AddNew returns a+b componentwise. Both must have matching
// size and Parameters fingerprint.
func (ev *Evaluator) AddNew(a, b *Ciphertext) (*Ciphertext, error) {
	if err := checkCompatible("bfv.Evaluator.AddNew", a, b); err != nil {
		return nil, err
	}
	r := a.Params.Ring()
	out := make([]ring.Poly, a.Size())
	for i := range out {
		out[i] = r.Add(a.Value[i], b.Value[i])
	}
	return &Ciphertext{Value: out, Params: a.Params}, nil
}

// SubNew returns a-b componentwise.
func (ev *Evaluator) SubNew(a, b *Ciphertext) (*Ciphertext, error) {
	if err := checkCompatible("bfv.Evaluator.SubNew", a, b); err != nil {
		return nil, err
	}
	r := a.Params.Ring()
	out := make([]ring.Poly, a.Size())
	for i := range out {
		out[i] = r.Sub(a.Value[i], b.Value[i])
	}
	return &Ciphertext{Value: out, Params: a.Params}, nil
}

// MultiplyNew tensors two size-2 ciphertexts into a size-3 ciphertext.
// The result must be relinearized before it can be decrypted.
func (ev *Evaluator) MultiplyNew(a, b *Ciphertext) (*Ciphertext, error) {
	if err := checkCompatible("bfv.Evaluator.MultiplyNew", a, b); err != nil {
		return nil, err
	}
	if a.Size() != 2 {
		return nil, fmt.Errorf("bfv.Evaluator.MultiplyNew: operands must have size 2, got %d", a.Size())
	}

	d0, d1, d2, err := ev.tensor.Multiply(a.Value[0], a.Value[1], b.Value[0], b.Value[1])
	if err != nil {
		return nil, fmt.Errorf("bfv.Evaluator.MultiplyNew: %w", err)
	}

	return &Ciphertext{Value: []ring.Poly{d0, d1, d2}, Params: a.Params}, nil
}

// RelinearizeNew reduces a size-3 ciphertext back to size 2 using the
// installed RelinearizationKey: decompose d2 in base T on its
// centered representatives, then
//
//	c0' = d0 + d2_0*k0.B + d2_1*k1.B (mod q)
//	c1' = d1 + d2_0*k0.A + d2_1*k1.A (mod q)
func (ev *Evaluator) RelinearizeNew(ct *Ciphertext) (*Ciphertext, error) {
	if ev.rlk == nil {
		return nil, rlwe.NewKeyError("bfv.Evaluator.RelinearizeNew", "no relinearization key installed")
	}
	if ct.Size() != 3 {
		return nil, fmt.Errorf("bfv.Evaluator.RelinearizeNew: ciphertext must have size 3, got %d", ct.Size())
	}
	if ct.Params.Fingerprint() != ev.params.Fingerprint() {
		return nil, rlwe.NewParameterMismatch("bfv.Evaluator.RelinearizeNew", "ciphertext was produced under different parameters")
	}

	r := ev.params.Ring()
	T := ev.params.DecompositionBase()

	d2c := r.ReduceCenter(ct.Value[2])
	d2lo, d2hi := decomposeBaseT(d2c, T, ev.params.Q())

	term0b, err := ev.mult.Multiply(d2lo, ev.rlk.K0B)
	if err != nil {
		return nil, fmt.Errorf("bfv.Evaluator.RelinearizeNew: %w", err)
	}
	term0a, err := ev.mult.Multiply(d2lo, ev.rlk.K0A)
	if err != nil {
		return nil, fmt.Errorf("bfv.Evaluator.RelinearizeNew: %w", err)
	}
	term1b, err := ev.mult.Multiply(d2hi, ev.rlk.K1B)
	if err != nil {
		return nil, fmt.Errorf("bfv.Evaluator.RelinearizeNew: %w", err)
	}
	term1a, err := ev.mult.Multiply(d2hi, ev.rlk.K1A)
	if err != nil {
		return nil, fmt.Errorf("bfv.Evaluator.RelinearizeNew: %w", err)
	}

	c0 := r.Add(r.Add(ct.Value[0], term0b), term1b)
	c1 := r.Add(r.Add(ct.Value[1], term0a), term1a)

	return &Ciphertext{Value: []ring.Poly{c0, c1}, Params: ct.Params}, nil
}

// decomposeBaseT splits the centered representatives of d2 as
// d2 = lo + T*hi per coefficient (lo in [0, T)), then folds both parts
// into [0, q) so they satisfy the Multiplier contract.
func decomposeBaseT(d2 ring.Poly, T, q *big.Int) (lo, hi ring.Poly) {
	lo = make(ring.Poly, len(d2))
	hi = make(ring.Poly, len(d2))
	for i, v := range d2 {
		l := new(big.Int).Mod(v, T)
		h := new(big.Int).Sub(v, l)
		h.Div(h, T)
		lo[i] = new(big.Int).Mod(l, q)
		hi[i] = new(big.Int).Mod(h, q)
	}
	return lo, hi
}
