package anchor

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
)

// Encoder builds instruction data: a discriminator followed by Borsh encoded
// arguments. Write errors are impossible on the in-memory buffer, so the
// first one is kept and reported by Bytes.
type Encoder struct {
	buf *bytes.Buffer
	enc *bin.Encoder
	err error
}

// NewInstructionEncoder starts instruction data with the given discriminator.
func NewInstructionEncoder(discriminator []byte) *Encoder {
	e := NewEncoder()
	e.WriteRaw(discriminator)
	return e
}

func NewEncoder() *Encoder {
	buf := bytes.NewBuffer(nil)
	return &Encoder{
		buf: buf,
		enc: bin.NewBorshEncoder(buf),
	}
}

func (e *Encoder) WriteRaw(b []byte) *Encoder {
	e.keep(e.enc.WriteBytes(b, false))
	return e
}

func (e *Encoder) WriteKey(key ed25519.PublicKey) *Encoder {
	padded := make([]byte, ed25519.PublicKeySize)
	copy(padded, key)
	return e.WriteRaw(padded)
}

// WriteString writes a u32 little-endian length followed by the UTF-8 bytes.
func (e *Encoder) WriteString(v string) *Encoder {
	e.keep(e.enc.WriteUint32(uint32(len(v)), binary.LittleEndian))
	return e.WriteRaw([]byte(v))
}

// WriteBytes writes a Vec<u8>, which shares the string layout.
func (e *Encoder) WriteBytes(v []byte) *Encoder {
	e.keep(e.enc.WriteUint32(uint32(len(v)), binary.LittleEndian))
	return e.WriteRaw(v)
}

func (e *Encoder) WriteUint8(v uint8) *Encoder {
	e.keep(e.enc.WriteUint8(v))
	return e
}

func (e *Encoder) WriteUint32(v uint32) *Encoder {
	e.keep(e.enc.WriteUint32(v, binary.LittleEndian))
	return e
}

func (e *Encoder) WriteUint64(v uint64) *Encoder {
	e.keep(e.enc.WriteUint64(v, binary.LittleEndian))
	return e
}

func (e *Encoder) WriteInt64(v int64) *Encoder {
	e.keep(e.enc.WriteInt64(v, binary.LittleEndian))
	return e
}

func (e *Encoder) WriteBool(v bool) *Encoder {
	e.keep(e.enc.WriteBool(v))
	return e
}

// Bytes returns the encoded data. It panics on a write failure, which can
// only come from a broken encoder.
func (e *Encoder) Bytes() []byte {
	if e.err != nil {
		panic(e.err)
	}
	return e.buf.Bytes()
}

func (e *Encoder) keep(err error) {
	if e.err == nil {
		e.err = err
	}
}
