package common

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/solana/captainsol"
)

// Programs holds the deployment specific addresses the client targets.
type Programs struct {
	Badge               ed25519.PublicKey
	BadgePlatformWallet ed25519.PublicKey

	Campaign               ed25519.PublicKey
	CampaignPlatformWallet ed25519.PublicKey
}

// DevnetPrograms returns the addresses of the devnet deployment.
func DevnetPrograms() *Programs {
	return &Programs{
		Badge:                  badge.PROGRAM_ID,
		BadgePlatformWallet:    badge.PLATFORM_WALLET,
		Campaign:               captainsol.PROGRAM_ID,
		CampaignPlatformWallet: captainsol.PLATFORM_WALLET,
	}
}

func (p *Programs) Validate() error {
	for name, key := range map[string]ed25519.PublicKey{
		"badge program":            p.Badge,
		"badge platform wallet":    p.BadgePlatformWallet,
		"campaign program":         p.Campaign,
		"campaign platform wallet": p.CampaignPlatformWallet,
	} {
		if len(key) != ed25519.PublicKeySize {
			return NewValidationError(name, "must be a 32 byte public key")
		}
	}
	return nil
}
