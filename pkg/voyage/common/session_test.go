package common

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/captain-sol/voyage-client/pkg/solana"
)

type nopSigner struct{}

func (nopSigner) SignAndSend(context.Context, *solana.Transaction) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func TestWalletSession(t *testing.T) {
	var nilSession *WalletSession
	assert.False(t, nilSession.IsConnected())
	assert.False(t, nilSession.CanSign())
	assert.Equal(t, "disconnected", nilSession.String())

	address := make(ed25519.PublicKey, ed25519.PublicKeySize)
	readOnly := NewWalletSession("devnet", address, nil)
	assert.True(t, readOnly.IsConnected())
	assert.False(t, readOnly.CanSign())
	assert.Equal(t, "devnet:11111111111111111111111111111111", readOnly.String())

	assert.True(t, NewWalletSession("devnet", address, nopSigner{}).CanSign())
}

func TestPrograms_Validate(t *testing.T) {
	assert.NoError(t, DevnetPrograms().Validate())

	programs := DevnetPrograms()
	programs.Campaign = nil
	assert.Error(t, programs.Validate())
}
