package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32

	programDerivedAddressMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrInvalidPublicKey      = errors.New("invalid public key")
	ErrBumpSeedNotFound      = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress hashes the seeds, program and the PDA marker into a
// candidate address. Candidates that decompress to a valid ed25519 point have
// a private key, so they are rejected with ErrInvalidPublicKey.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return nil, ErrTooManySeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(programDerivedAddressMarker))

	var candidate [32]byte
	copy(candidate[:], h.Sum(nil))

	// The standard library keeps the extended group element internal, so the
	// on-curve check goes through the edwards25519 package directly.
	var point edwards25519.ExtendedGroupElement
	if point.FromBytes(&candidate) {
		return nil, ErrInvalidPublicKey
	}

	return candidate[:], nil
}

// FindProgramAddressAndBump searches bump seeds from 255 down to 0 and returns
// the first off-curve address along with the bump that produced it.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return nil, 0, ErrTooManySeeds
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := math.MaxUint8; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}

		pub, err := CreateProgramAddress(program, withBump...)
		if err == nil {
			return pub, uint8(bump), nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}
	}

	return nil, 0, ErrBumpSeedNotFound
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}
