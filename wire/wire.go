// Package wire implements the stable little-endian byte layout
// shared by every serializable type in the engine: Parameters, the
// three key types and Ciphertext all build on the same magic+version
// header and length-prefixed big-integer encoding; Plaintext uses the
// polynomial encoding alone, with no header.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/tuneinsight/bfvengine/ring"
)

// Magic values identifying each serialized object kind.
const (
	MagicParameters         = "FHEP"
	MagicCiphertext         = "FHEC"
	MagicSecretKey          = "FHES"
	MagicPublicKey          = "FHEK"
	MagicRelinearizationKey = "FHER"

	// Version is the current wire format version. Readers reject any
	// other value with an Error rather than guessing at forward
	// compatibility.
	Version uint16 = 1
)

// Error reports a malformed or truncated wire buffer: bad magic,
// unknown version, truncated buffer, or a coefficient out of range.
type Error struct {
	Op  string
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("wire: %s: %s", e.Op, e.Msg) }

func errf(op, format string, args ...interface{}) error {
	return &Error{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// WriteHeader writes the 4-byte magic followed by the 2-byte version.
func WriteHeader(w io.Writer, magic string) error {
	if len(magic) != 4 {
		panic("wire: magic must be 4 bytes")
	}
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, Version)
}

// ReadHeader reads and validates the magic and version, failing with a
// wire.Error if either is wrong.
func ReadHeader(r io.Reader, wantMagic string) error {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return errf("ReadHeader", "truncated magic: %v", err)
	}
	if string(buf) != wantMagic {
		return errf("ReadHeader", "bad magic %q, want %q", buf, wantMagic)
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return errf("ReadHeader", "truncated version: %v", err)
	}
	if version != Version {
		return errf("ReadHeader", "unknown version %d", version)
	}
	return nil
}

// WriteBigInt writes x as a u16 byte-length prefix followed by its
// unsigned big-endian bytes.
func WriteBigInt(w io.Writer, x *big.Int) error {
	if x.Sign() < 0 {
		return errf("WriteBigInt", "cannot serialize negative value %s", x.String())
	}
	b := x.Bytes()
	if len(b) > 0xFFFF {
		return errf("WriteBigInt", "value too large (%d bytes)", len(b))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadBigInt reads a u16-length-prefixed unsigned big integer.
func ReadBigInt(r io.Reader) (*big.Int, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errf("ReadBigInt", "truncated length prefix: %v", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errf("ReadBigInt", "truncated value: %v", err)
	}
	return new(big.Int).SetBytes(buf), nil
}

// WritePoly writes a u32 coefficient count followed by each
// coefficient via WriteBigInt.
func WritePoly(w io.Writer, p ring.Poly) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p))); err != nil {
		return err
	}
	for _, c := range p {
		if err := WriteBigInt(w, c); err != nil {
			return err
		}
	}
	return nil
}

// ReadPoly reads a polynomial written by WritePoly. If q is non-nil,
// every coefficient is validated to lie in [0, q); a coefficient out of
// range is rejected with a wire.Error.
func ReadPoly(r io.Reader, q *big.Int) (ring.Poly, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errf("ReadPoly", "truncated coefficient count: %v", err)
	}
	p := make(ring.Poly, n)
	for i := range p {
		c, err := ReadBigInt(r)
		if err != nil {
			return nil, err
		}
		if q != nil && c.Cmp(q) >= 0 {
			return nil, errf("ReadPoly", "coefficient %d=%s out of range [0,%s)", i, c.String(), q.String())
		}
		p[i] = c
	}
	return p, nil
}
