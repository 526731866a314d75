package common

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/captain-sol/voyage-client/pkg/solana"
)

// Signer is the external wallet provider. It signs with the session's key and
// submits the transaction, returning the first signature.
type Signer interface {
	SignAndSend(ctx context.Context, txn *solana.Transaction) (solana.Signature, error)
}

// WalletSession is the connected wallet, passed explicitly to every call that
// needs one. The zero value is a disconnected session.
type WalletSession struct {
	// Cluster names the chain the wallet is connected to, such as "devnet".
	Cluster string

	Address ed25519.PublicKey
	Signer  Signer
}

func NewWalletSession(cluster string, address ed25519.PublicKey, signer Signer) *WalletSession {
	return &WalletSession{
		Cluster: cluster,
		Address: address,
		Signer:  signer,
	}
}

// IsConnected reports whether a wallet address is available.
func (s *WalletSession) IsConnected() bool {
	return s != nil && len(s.Address) == ed25519.PublicKeySize
}

// CanSign reports whether transactions can be submitted for the session.
func (s *WalletSession) CanSign() bool {
	return s.IsConnected() && s.Signer != nil
}

func (s *WalletSession) String() string {
	if !s.IsConnected() {
		return "disconnected"
	}
	return s.Cluster + ":" + base58.Encode(s.Address)
}
