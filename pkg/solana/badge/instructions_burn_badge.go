package badge

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var burnBadgeInstructionDiscriminator = []byte{147, 51, 198, 68, 57, 24, 194, 28}

type BurnBadgeInstructionAccounts struct {
	Program ed25519.PublicKey

	Owner             ed25519.PublicKey
	Badge             ed25519.PublicKey
	Mint              ed25519.PublicKey
	OwnerTokenAccount ed25519.PublicKey
}

func NewBurnBadgeInstruction(accounts *BurnBadgeInstructionAccounts) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(burnBadgeInstructionDiscriminator).Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Owner,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Badge,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.OwnerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  TOKEN_2022_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
