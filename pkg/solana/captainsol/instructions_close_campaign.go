package captainsol

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var closeCampaignInstructionDiscriminator = []byte{65, 49, 110, 7, 63, 238, 206, 77}

type CloseCampaignInstructionAccounts struct {
	Program ed25519.PublicKey

	Creator  ed25519.PublicKey
	Campaign ed25519.PublicKey
}

func NewCloseCampaignInstruction(accounts *CloseCampaignInstructionAccounts) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: anchor.NewInstructionEncoder(closeCampaignInstructionDiscriminator).Bytes(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Creator,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Campaign,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}
