package campaign

import (
	"crypto/ed25519"
	"strings"
	"unicode/utf8"

	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

// MaxIpfsHashLength is the space the campaign program reserves for a hash.
const MaxIpfsHashLength = 64

func validateIpfsHash(ipfsHash string) (string, error) {
	ipfsHash = strings.TrimSpace(ipfsHash)
	if len(ipfsHash) == 0 {
		return "", common.NewValidationError("ipfs hash", "is required")
	}
	if !utf8.ValidString(ipfsHash) {
		return "", common.NewValidationError("ipfs hash", "is not valid utf-8")
	}
	if len(ipfsHash) > MaxIpfsHashLength {
		return "", common.NewValidationError("ipfs hash", "is %d bytes, limit is %d", len(ipfsHash), MaxIpfsHashLength)
	}
	return ipfsHash, nil
}

func validateKey(field string, key ed25519.PublicKey) error {
	if len(key) != ed25519.PublicKeySize {
		return common.NewValidationError(field, "must be a 32 byte public key")
	}
	return nil
}
