package captainsol

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

var addModuleInstructionDiscriminator = []byte{81, 183, 101, 212, 17, 241, 122, 204}

type AddModuleInstructionArgs struct {
	ModuleId uint8
	IpfsHash string
}

type AddModuleInstructionAccounts struct {
	Program ed25519.PublicKey

	Creator  ed25519.PublicKey
	Campaign ed25519.PublicKey
	Module   ed25519.PublicKey
}

func NewAddModuleInstruction(
	accounts *AddModuleInstructionAccounts,
	args *AddModuleInstructionArgs,
) solana.Instruction {
	data := anchor.NewInstructionEncoder(addModuleInstructionDiscriminator).
		WriteUint8(args.ModuleId).
		WriteString(args.IpfsHash).
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
				PublicKey:  accounts.Module,
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
