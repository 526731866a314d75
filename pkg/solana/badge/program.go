package badge

import (
	"crypto/ed25519"
	"errors"

	"github.com/mr-tron/base58"

	"github.com/captain-sol/voyage-client/pkg/solana/system"
	"github.com/captain-sol/voyage-client/pkg/solana/token"
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")
	ErrInvalidSeed        = errors.New("invalid address seed")
)

// Devnet deployment. Callers that target another cluster pass their own
// program id through the Program fields.
var (
	PROGRAM_ADDRESS = mustBase58Decode("4VsU6pPcYaJp9uBx83AjULcKShKchujxLPGAMapnf5jw")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)

	PLATFORM_WALLET = ed25519.PublicKey(mustBase58Decode("2p8QvK4XLymfAFrdPxJChT5E44bKxHpsguL4K2rjJ1ZU"))
)

var (
	SYSTEM_PROGRAM_ID           = system.ProgramKey
	TOKEN_2022_PROGRAM_ID       = token.Token2022ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey
	SYSVAR_RENT_PUBKEY          = system.RentSysVar
)

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	if len(program) == 0 {
		return PROGRAM_ID
	}
	return program
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
