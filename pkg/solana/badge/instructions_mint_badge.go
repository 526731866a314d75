package badge

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var mintBadgeInstructionDiscriminator = []byte{242, 234, 237, 183, 232, 245, 146, 1}

// MintBadgeInstructionAccounts purchases one badge. The payer's lamports
// are split between the creator and the platform wallet on chain.
type MintBadgeInstructionAccounts struct {
	Program ed25519.PublicKey

	Payer                 ed25519.PublicKey
	Creator               ed25519.PublicKey
	Badge                 ed25519.PublicKey
	Mint                  ed25519.PublicKey
	RecipientTokenAccount ed25519.PublicKey
	PlatformWallet        ed25519.PublicKey
}

func NewMintBadgeInstruction(accounts *MintBadgeInstructionAccounts) solana.Instruction {
	platformWallet := accounts.PlatformWallet
	if len(platformWallet) == 0 {
		platformWallet = PLATFORM_WALLET
	}

	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(mintBadgeInstructionDiscriminator).Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Creator,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Badge,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.RecipientTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  platformWallet,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  TOKEN_2022_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
