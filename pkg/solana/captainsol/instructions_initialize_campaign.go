package captainsol

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var initializeCampaignInstructionDiscriminator = []byte{169, 88, 7, 6, 9, 165, 65, 132}

type InitializeCampaignInstructionArgs struct {
	CampaignId   uint64
	IpfsHash     string
	StartTime    int64
	EndTime      int64
	TotalModules uint8
	NftLimit     uint32
}

// InitializeCampaignInstructionAccounts creates a campaign. The creator pays
// the platform fee into PlatformWallet, which defaults to the deployment's
// wallet.
type InitializeCampaignInstructionAccounts struct {
	Program ed25519.PublicKey

	Creator        ed25519.PublicKey
	Campaign       ed25519.PublicKey
	PlatformWallet ed25519.PublicKey
}

func NewInitializeCampaignInstruction(
	accounts *InitializeCampaignInstructionAccounts,
	args *InitializeCampaignInstructionArgs,
) solana.Instruction {
	platformWallet := accounts.PlatformWallet
	if len(platformWallet) == 0 {
		platformWallet = PLATFORM_WALLET
	}

	data := anchor.NewInstructionEncoder(initializeCampaignInstructionDiscriminator).
		WriteUint64(args.CampaignId).
		WriteString(args.IpfsHash).
		WriteInt64(args.StartTime).
		WriteInt64(args.EndTime).
		WriteUint8(args.TotalModules).
		WriteUint32(args.NftLimit).
		Bytes()

	return solana.Instruction{
		Program: programOrDefault(accounts.Program),

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Creator,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Campaign,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  platformWallet,
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
