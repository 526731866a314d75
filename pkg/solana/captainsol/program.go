package captainsol

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
	PROGRAM_ADDRESS = mustBase58Decode("5xGZmXnD9DcdzHqY5H7UEBrkGC57CLejiVQz6AS7EphZ")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)

	PLATFORM_WALLET = ed25519.PublicKey(mustBase58Decode("9Hbby1f64TMhu4E9qPQwiP7gm8PLWqm72pumgo4ENpeH"))
)

var (
	SYSTEM_PROGRAM_ID     = system.ProgramKey
	TOKEN_2022_PROGRAM_ID = token.Token2022ProgramKey
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
