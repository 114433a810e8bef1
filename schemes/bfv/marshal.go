package bfv

import (
	"bytes"

	"github.com/tuneinsight/bfvengine/core/rlwe"
	"github.com/tuneinsight/bfvengine/ring"
	"github.com/tuneinsight/bfvengine/wire"
)

// MarshalBinary encodes pt the same way a Ciphertext's polynomials are
// encoded: a bare length-prefixed coefficient vector, since a
// Plaintext carries no size or fingerprint of its own (the wire
// package only defines magic headers for Parameters, Ciphertext and
// the key kinds).
func (pt *Plaintext) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WritePoly(&buf, pt.Value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a buffer written by MarshalBinary, validating
// coefficients against params.T().
func (pt *Plaintext) UnmarshalBinary(data []byte, params rlwe.Parameters) error {
	r := bytes.NewReader(data)
	p, err := wire.ReadPoly(r, params.T())
	if err != nil {
		return err
	}
	pt.Value = p
	pt.Params = params
	return nil
}

// MarshalBinary encodes ct as magic "FHEC", version, a u8 size, the
// owning Parameters' 16-byte fingerprint, then `size` polynomials.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteHeader(&buf, wire.MagicCiphertext); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(byte(ct.Size())); err != nil {
		return nil, err
	}
	fp := ct.Params.Fingerprint()
	if _, err := buf.Write(fp[:]); err != nil {
		return nil, err
	}
	for _, p := range ct.Value {
		if err := wire.WritePoly(&buf, p); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a buffer written by MarshalBinary. params
// must be the Parameters the ciphertext was encrypted under; its
// fingerprint is checked against the one embedded in the buffer and a
// *rlwe.ParameterMismatch is returned on mismatch.
func (ct *Ciphertext) UnmarshalBinary(data []byte, params rlwe.Parameters) error {
	r := bytes.NewReader(data)
	if err := wire.ReadHeader(r, wire.MagicCiphertext); err != nil {
		return err
	}

	sizeByte := make([]byte, 1)
	if _, err := r.Read(sizeByte); err != nil {
		return &wire.Error{Op: "bfv.Ciphertext.UnmarshalBinary", Msg: "truncated size byte"}
	}
	size := int(sizeByte[0])

	var fp [16]byte
	if _, err := r.Read(fp[:]); err != nil {
		return &wire.Error{Op: "bfv.Ciphertext.UnmarshalBinary", Msg: "truncated fingerprint"}
	}
	if want := params.Fingerprint(); fp != want {
		return rlwe.NewParameterMismatch("bfv.Ciphertext.UnmarshalBinary", "embedded parameter fingerprint does not match params")
	}

	polys := make([]ring.Poly, size)
	for i := range polys {
		p, err := wire.ReadPoly(r, params.Q())
		if err != nil {
			return err
		}
		polys[i] = p
	}
	ct.Value = polys
	ct.Params = params
	return nil
}
