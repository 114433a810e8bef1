package rlwe

import (
	"bytes"
	"math/big"

	"github.com/tuneinsight/bfvengine/ring"
	"github.com/tuneinsight/bfvengine/wire"
)

// MarshalBinary encodes sk as magic "FHES", version, then its
// polynomial, using the same header and polynomial encoding as
// Ciphertext but with no size byte or fingerprint.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteHeader(&buf, wire.MagicSecretKey); err != nil {
		return nil, err
	}
	if err := wire.WritePoly(&buf, sk.Value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a buffer written by MarshalBinary. q bounds
// the coefficient range check in wire.ReadPoly; pass nil to skip it.
func (sk *SecretKey) UnmarshalBinary(data []byte, q *big.Int) error {
	r := bytes.NewReader(data)
	if err := wire.ReadHeader(r, wire.MagicSecretKey); err != nil {
		return err
	}
	p, err := wire.ReadPoly(r, q)
	if err != nil {
		return err
	}
	sk.Value = p
	return nil
}

// MarshalBinary encodes pk as magic "FHEK", version, then B and A.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteHeader(&buf, wire.MagicPublicKey); err != nil {
		return nil, err
	}
	if err := wire.WritePoly(&buf, pk.B); err != nil {
		return nil, err
	}
	if err := wire.WritePoly(&buf, pk.A); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a buffer written by MarshalBinary.
func (pk *PublicKey) UnmarshalBinary(data []byte, q *big.Int) error {
	r := bytes.NewReader(data)
	if err := wire.ReadHeader(r, wire.MagicPublicKey); err != nil {
		return err
	}
	b, err := wire.ReadPoly(r, q)
	if err != nil {
		return err
	}
	a, err := wire.ReadPoly(r, q)
	if err != nil {
		return err
	}
	pk.B, pk.A = b, a
	return nil
}

// MarshalBinary encodes rlk as magic "FHER", version, then K0B, K0A,
// K1B, K1A in that order.
func (rlk *RelinearizationKey) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteHeader(&buf, wire.MagicRelinearizationKey); err != nil {
		return nil, err
	}
	for _, p := range []ring.Poly{rlk.K0B, rlk.K0A, rlk.K1B, rlk.K1A} {
		if err := wire.WritePoly(&buf, p); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a buffer written by MarshalBinary.
func (rlk *RelinearizationKey) UnmarshalBinary(data []byte, q *big.Int) error {
	r := bytes.NewReader(data)
	if err := wire.ReadHeader(r, wire.MagicRelinearizationKey); err != nil {
		return err
	}
	polys := make([]ring.Poly, 4)
	for i := range polys {
		p, err := wire.ReadPoly(r, q)
		if err != nil {
			return err
		}
		polys[i] = p
	}
	rlk.K0B, rlk.K0A, rlk.K1B, rlk.K1A = polys[0], polys[1], polys[2], polys[3]
	return nil
}
