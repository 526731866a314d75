package badge

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/token"
)

var (
	BadgePrefix = []byte("badge")
	MintPrefix  = []byte("mint")
)

// MaxBadgeIdLength is the PDA seed limit, which bounds the badge id in bytes.
const MaxBadgeIdLength = solana.MaxSeedLength

type GetBadgeAddressArgs struct {
	Program ed25519.PublicKey
	Creator ed25519.PublicKey
	BadgeId string
}

// GetBadgeAddress derives ["badge", creator, badge_id].
func GetBadgeAddress(args *GetBadgeAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.Creator) != ed25519.PublicKeySize || len(args.BadgeId) == 0 {
		return nil, 0, ErrInvalidSeed
	}

	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		BadgePrefix,
		args.Creator,
		[]byte(args.BadgeId),
	)
}

type GetMintAddressArgs struct {
	Program ed25519.PublicKey
	Badge   ed25519.PublicKey
}

// GetMintAddress derives ["mint", badge].
func GetMintAddress(args *GetMintAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.Badge) != ed25519.PublicKeySize {
		return nil, 0, ErrInvalidSeed
	}

	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		MintPrefix,
		args.Badge,
	)
}

// GetHolderTokenAddress is the Token-2022 associated account that holds a
// badge for owner.
func GetHolderTokenAddress(owner, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return token.GetAssociatedAccountForProgram(owner, mint, TOKEN_2022_PROGRAM_ID)
}
