package captainsol

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var submitModuleCompletionInstructionDiscriminator = []byte{65, 204, 57, 12, 65, 122, 44, 39}

type SubmitModuleCompletionInstructionAccounts struct {
	Program ed25519.PublicKey

	Participant         ed25519.PublicKey
	Campaign            ed25519.PublicKey
	Module              ed25519.PublicKey
	ParticipantProgress ed25519.PublicKey
}

func NewSubmitModuleCompletionInstruction(accounts *SubmitModuleCompletionInstructionAccounts) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(submitModuleCompletionInstructionDiscriminator).Bytes(),

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
				PublicKey:  accounts.Module,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ParticipantProgress,
				IsWritable: true,
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
