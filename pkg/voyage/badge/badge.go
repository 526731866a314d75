package badge

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	badgeprogram "github.com/captain-sol/voyage-client/pkg/solana/badge"
)

// Badge is a decoded badge record as presented to callers.
type Badge struct {
	badgeprogram.BadgeAccount

	Address ed25519.PublicKey

	// IsOwned is derived from the connected wallet's holdings and is the only
	// field that changes when the wallet changes.
	IsOwned bool
}

func (b *Badge) Clone() *Badge {
	cloned := *b
	cloned.Address = append(ed25519.PublicKey(nil), b.Address...)
	cloned.Creator = append(ed25519.PublicKey(nil), b.Creator...)
	cloned.Mint = append(ed25519.PublicKey(nil), b.Mint...)
	return &cloned
}

func (b *Badge) IsCreatedBy(key ed25519.PublicKey) bool {
	return len(key) > 0 && bytes.Equal(b.Creator, key)
}

// MintSet is a set of mint addresses keyed by their base58 encoding.
type MintSet map[string]struct{}

func NewMintSet(mints ...ed25519.PublicKey) MintSet {
	set := make(MintSet, len(mints))
	for _, mint := range mints {
		set.Add(mint)
	}
	return set
}

func (s MintSet) Add(mint ed25519.PublicKey) {
	s[base58.Encode(mint)] = struct{}{}
}

func (s MintSet) Contains(mint ed25519.PublicKey) bool {
	_, ok := s[base58.Encode(mint)]
	return ok
}
