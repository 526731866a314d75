// Package binary reads and writes fixed little-endian layouts at a moving
// offset. Every getter checks bounds, so a truncated buffer surfaces as
// ErrUnexpectedEnd instead of a panic.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
)

var ErrUnexpectedEnd = errors.New("unexpected end of data")

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:*offset+ed25519.PublicKeySize], src)
	*offset += ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

// PutString writes a u32 length prefix followed by the raw bytes.
func PutString(dst []byte, v string, offset *int) {
	PutUint32(dst, uint32(len(v)), offset)
	copy(dst[*offset:], v)
	*offset += len(v)
}

// StringSize is the encoded size of v under PutString.
func StringSize(v string) int {
	return 4 + len(v)
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if err := checkBounds(src, *offset, ed25519.PublicKeySize); err != nil {
		return err
	}
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return nil
}

func GetUint64(src []byte, dst *uint64, offset *int) error {
	if err := checkBounds(src, *offset, 8); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
	return nil
}

func GetUint32(src []byte, dst *uint32, offset *int) error {
	if err := checkBounds(src, *offset, 4); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
	return nil
}

func GetUint8(src []byte, dst *uint8, offset *int) error {
	if err := checkBounds(src, *offset, 1); err != nil {
		return err
	}
	*dst = src[*offset]
	*offset += 1
	return nil
}

// GetString reads a u32 length prefix followed by that many bytes. The bytes
// are not checked for UTF-8 validity.
func GetString(src []byte, dst *string, offset *int) error {
	var length uint32
	start := *offset
	if err := GetUint32(src, &length, offset); err != nil {
		return err
	}
	if err := checkBounds(src, *offset, int(length)); err != nil {
		*offset = start
		return errors.Wrapf(err, "string length %d", length)
	}
	*dst = string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return nil
}

func checkBounds(src []byte, offset, size int) error {
	if offset < 0 || size < 0 || offset+size > len(src) || offset+size < offset {
		return ErrUnexpectedEnd
	}
	return nil
}
