// Package shortvec implements the compact-u16 length prefix used throughout
// the Solana transaction wire format.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

const maxEncodedSize = 3

var (
	ErrOutOfRange   = errors.New("length out of compact-u16 range")
	ErrNonCanonical = errors.New("non-canonical compact-u16 encoding")
)

// EncodeLen writes length as a compact-u16 and returns the bytes written.
func EncodeLen(w io.ByteWriter, length int) (int, error) {
	if length < 0 || length > math.MaxUint16 {
		return 0, errors.Wrapf(ErrOutOfRange, "%d", length)
	}

	for written := 1; ; written++ {
		b := byte(length & 0x7f)
		length >>= 7
		if length == 0 {
			return written, w.WriteByte(b)
		}
		if err := w.WriteByte(b | 0x80); err != nil {
			return written - 1, err
		}
	}
}

// DecodeLen reads a compact-u16. Encodings with redundant trailing zero
// bytes, or that exceed 16 bits, are rejected.
func DecodeLen(r io.ByteReader) (int, error) {
	var value int
	for i := 0; i < maxEncodedSize; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		if i > 0 && b == 0 {
			return 0, ErrNonCanonical
		}
		value |= int(b&0x7f) << (7 * i)

		if b&0x80 == 0 {
			if value > math.MaxUint16 {
				return 0, ErrOutOfRange
			}
			return value, nil
		}
	}
	return 0, ErrOutOfRange
}
