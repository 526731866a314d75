package anchor

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

var (
	ErrInvalidString  = errors.New("invalid utf-8 string")
	ErrInvalidBool    = errors.New("invalid bool value")
	ErrTrailingData   = errors.New("unexpected trailing data")
	ErrStringTooLarge = errors.New("string length exceeds remaining data")
)

// Decoder reads Borsh encoded account data strictly. Lengths that overrun the
// buffer, malformed UTF-8 and bool bytes other than 0 or 1 are errors, which
// lets callers tell one schema generation from another.
type Decoder struct {
	dec *bin.Decoder
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{dec: bin.NewBorshDecoder(data)}
}

// SkipDiscriminator consumes the leading 8 bytes without validating them.
func (d *Decoder) SkipDiscriminator() error {
	_, err := d.dec.ReadNBytes(DiscriminatorSize)
	return errors.Wrap(err, "discriminator")
}

// ExpectDiscriminator consumes the leading 8 bytes and checks them.
func (d *Decoder) ExpectDiscriminator(expected []byte) error {
	actual, err := d.dec.ReadNBytes(DiscriminatorSize)
	if err != nil {
		return errors.Wrap(err, "discriminator")
	}
	if !bytes.Equal(actual, expected) {
		return errors.Errorf("discriminator mismatch: %x", actual)
	}
	return nil
}

func (d *Decoder) ReadKey() (ed25519.PublicKey, error) {
	raw, err := d.dec.ReadNBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, raw)
	return key, nil
}

func (d *Decoder) ReadString() (string, error) {
	raw, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidString
	}
	return string(raw), nil
}

// ReadBytes reads a Vec<u8>.
func (d *Decoder) ReadBytes() ([]byte, error) {
	length, err := d.dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	if uint64(length) > uint64(d.dec.Remaining()) {
		return nil, ErrStringTooLarge
	}
	raw, err := d.dec.ReadNBytes(int(length))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (d *Decoder) ReadUint8() (uint8, error) {
	return d.dec.ReadUint8()
}

func (d *Decoder) ReadUint32() (uint32, error) {
	return d.dec.ReadUint32(binary.LittleEndian)
}

func (d *Decoder) ReadUint64() (uint64, error) {
	return d.dec.ReadUint64(binary.LittleEndian)
}

func (d *Decoder) ReadInt64() (int64, error) {
	return d.dec.ReadInt64(binary.LittleEndian)
}

func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.dec.ReadUint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

func (d *Decoder) Remaining() int {
	return d.dec.Remaining()
}

// Finish accepts zero padding after the last field, which over-allocated
// accounts carry, and rejects anything else.
func (d *Decoder) Finish() error {
	if d.dec.Remaining() == 0 {
		return nil
	}
	rest, err := d.dec.ReadNBytes(d.dec.Remaining())
	if err != nil {
		return err
	}
	for _, b := range rest {
		if b != 0 {
			return ErrTrailingData
		}
	}
	return nil
}
