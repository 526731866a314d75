package captainsol

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var registerParticipantInstructionDiscriminator = []byte{248, 112, 38, 215, 226, 230, 249, 40}

type RegisterParticipantInstructionAccounts struct {
	Program ed25519.PublicKey

	Participant         ed25519.PublicKey
	Campaign            ed25519.PublicKey
	ParticipantProgress ed25519.PublicKey
}

func NewRegisterParticipantInstruction(accounts *RegisterParticipantInstructionAccounts) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(registerParticipantInstructionDiscriminator).Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Participant,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Campaign,
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
