package badge

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var initializeBadgeInstructionDiscriminator = []byte{96, 16, 131, 182, 237, 29, 205, 74}

type InitializeBadgeInstructionArgs struct {
	BadgeId     string
	Name        string
	Description string
	Uri         string
	Price       uint64
}

type InitializeBadgeInstructionAccounts struct {
	Program ed25519.PublicKey

	Creator ed25519.PublicKey
	Badge   ed25519.PublicKey
	Mint    ed25519.PublicKey
}

func NewInitializeBadgeInstruction(
	accounts *InitializeBadgeInstructionAccounts,
	args *InitializeBadgeInstructionArgs,
) solana.Instruction {
	data := anchor.NewInstructionEncoder(initializeBadgeInstructionDiscriminator).
		WriteString(args.BadgeId).
		WriteString(args.Name).
		WriteString(args.Description).
		WriteString(args.Uri).
		WriteUint64(args.Price).
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
				PublicKey:  TOKEN_2022_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
