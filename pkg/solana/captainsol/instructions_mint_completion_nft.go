package captainsol

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var mintCompletionNftInstructionDiscriminator = []byte{245, 144, 96, 193, 169, 1, 173, 249}

type MintCompletionNftInstructionAccounts struct {
	Program ed25519.PublicKey

	Participant         ed25519.PublicKey
	Campaign            ed25519.PublicKey
	ParticipantProgress ed25519.PublicKey
	NftMint             ed25519.PublicKey
	NftTokenAccount     ed25519.PublicKey
}

func NewMintCompletionNftInstruction(accounts *MintCompletionNftInstructionAccounts) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(mintCompletionNftInstructionDiscriminator).Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Participant,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Campaign,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ParticipantProgress,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.NftMint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.NftTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  TOKEN_2022_PROGRAM_ID,
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
