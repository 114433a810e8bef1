package rlwe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/tuneinsight/bfvengine/wire"
)

// MarshalBinaryTo writes the wire encoding of Parameters to w:
// magic "FHEP", version, N (u32), t (u64), q (length-prefixed
// big-integer), σ·10 (u16).
func (p Parameters) MarshalBinaryTo(w io.Writer) error {
	if err := wire.WriteHeader(w, wire.MagicParameters); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(p.n)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, p.t.Uint64()); err != nil {
		return err
	}
	if err := wire.WriteBigInt(w, p.ring.Q); err != nil {
		return err
	}
	sigmaFixed := uint16(math.Round(p.sigma * 10))
	return binary.Write(w, binary.LittleEndian, sigmaFixed)
}

// MarshalBinary returns the wire encoding of Parameters.
func (p Parameters) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.MarshalBinaryTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a buffer written by MarshalBinary. Besides
// the magic/version/length checks common to every wire.Error, this
// also re-derives logN, Δ and T from the decoded (N, t, q) so a
// round-tripped Parameters is Equal to, and has the same Fingerprint
// as, the one that was encoded. The RequireNTTFriendly flag is not part
// of the wire layout, so the decoded value always reports false.
func (p *Parameters) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	if err := wire.ReadHeader(r, wire.MagicParameters); err != nil {
		return err
	}

	var n32 uint32
	if err := binary.Read(r, binary.LittleEndian, &n32); err != nil {
		return fmt.Errorf("rlwe.Parameters.UnmarshalBinary: truncated N: %w", err)
	}
	var tRaw uint64
	if err := binary.Read(r, binary.LittleEndian, &tRaw); err != nil {
		return fmt.Errorf("rlwe.Parameters.UnmarshalBinary: truncated t: %w", err)
	}
	q, err := wire.ReadBigInt(r)
	if err != nil {
		return err
	}
	var sigmaFixed uint16
	if err := binary.Read(r, binary.LittleEndian, &sigmaFixed); err != nil {
		return fmt.Errorf("rlwe.Parameters.UnmarshalBinary: truncated sigma: %w", err)
	}

	logN := 0
	for (1 << uint(logN)) < int(n32) {
		logN++
	}

	lit := ParametersLiteral{
		LogN:             logN,
		PlaintextModulus: tRaw,
		QBits:            q.BitLen(),
		Sigma:            float64(sigmaFixed) / 10,
	}
	// Reconstruct directly from the decoded q rather than re-running
	// the selector (which might land on a different prime for the
	// same QBits): build the Parameters by hand, mirroring
	// NewParametersFromLiteral's derivation of Δ, T and the Ring.
	reconstructed, err := fromDecoded(lit, q)
	if err != nil {
		return fmt.Errorf("rlwe.Parameters.UnmarshalBinary: %w", err)
	}
	*p = reconstructed
	return nil
}
