package badge

import (
	"crypto/rand"
	"math/big"
)

const (
	badgeIdPrefix = "arm"
	badgeIdSuffix = 6

	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateBadgeId returns a random id such as "arm3k9xq0", well under the
// seed limit.
func GenerateBadgeId() (string, error) {
	max := big.NewInt(int64(len(base36Alphabet)))

	id := make([]byte, 0, len(badgeIdPrefix)+badgeIdSuffix)
	id = append(id, badgeIdPrefix...)
	for i := 0; i < badgeIdSuffix; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		id = append(id, base36Alphabet[n.Int64()])
	}
	return string(id), nil
}
