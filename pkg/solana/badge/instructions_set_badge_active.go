package badge

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var (
	deactivateBadgeInstructionDiscriminator = []byte{127, 209, 207, 209, 5, 144, 73, 125}
	reactivateBadgeInstructionDiscriminator = []byte{205, 233, 92, 253, 27, 218, 18, 56}
)

// SetBadgeActiveInstructionAccounts is shared by deactivate_badge and
// reactivate_badge, which only differ in the flag they write.
type SetBadgeActiveInstructionAccounts struct {
	Program ed25519.PublicKey

	Creator ed25519.PublicKey
	Badge   ed25519.PublicKey
}

func NewDeactivateBadgeInstruction(accounts *SetBadgeActiveInstructionAccounts) solana.Instruction {
	return newSetBadgeActiveInstruction(deactivateBadgeInstructionDiscriminator, accounts)
}

func NewReactivateBadgeInstruction(accounts *SetBadgeActiveInstructionAccounts) solana.Instruction {
	return newSetBadgeActiveInstruction(reactivateBadgeInstructionDiscriminator, accounts)
}

func newSetBadgeActiveInstruction(discriminator []byte, accounts *SetBadgeActiveInstructionAccounts) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(discriminator).Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Creator,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Badge,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}
