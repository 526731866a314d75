package badge

import (
	"crypto/ed25519"
	"strings"
	"unicode/utf8"

	badgeprogram "github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

// Byte bounds enforced by the badge program's account space.
const (
	MaxBadgeIdLength     = badgeprogram.MaxBadgeIdLength
	MaxNameLength        = 32
	MaxDescriptionLength = 200
	MaxUriLength         = 200
)

// InitializeArgs is the badge creation form.
type InitializeArgs struct {
	BadgeId     string
	Name        string
	Description string
	Uri         string
	PriceInSol  float64
}

// normalize trims every text field and checks it against the program bounds.
// The price is converted to lamports here so a rejected price never reaches
// the encoder.
func (a *InitializeArgs) normalize() (*badgeprogram.InitializeBadgeInstructionArgs, error) {
	badgeId, err := validateBadgeId(a.BadgeId)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(a.Name)
	if len(name) == 0 {
		return nil, common.NewValidationError("name", "is required")
	}
	if err := validateText("name", name, MaxNameLength); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(a.Description)
	if err := validateText("description", description, MaxDescriptionLength); err != nil {
		return nil, err
	}

	uri := strings.TrimSpace(a.Uri)
	if len(uri) == 0 {
		return nil, common.NewValidationError("uri", "is required")
	}
	if err := validateText("uri", uri, MaxUriLength); err != nil {
		return nil, err
	}

	price, err := common.SolToLamports(a.PriceInSol)
	if err != nil {
		return nil, err
	}
	if price == 0 {
		return nil, common.NewValidationError("price", "must be greater than zero")
	}

	return &badgeprogram.InitializeBadgeInstructionArgs{
		BadgeId:     badgeId,
		Name:        name,
		Description: description,
		Uri:         uri,
		Price:       price,
	}, nil
}

func validateBadgeId(badgeId string) (string, error) {
	badgeId = strings.TrimSpace(badgeId)
	if len(badgeId) == 0 {
		return "", common.NewValidationError("badge id", "is required")
	}
	if err := validateText("badge id", badgeId, MaxBadgeIdLength); err != nil {
		return "", err
	}
	return badgeId, nil
}

func validateText(field, value string, maxLength int) error {
	if !utf8.ValidString(value) {
		return common.NewValidationError(field, "is not valid utf-8")
	}
	if len(value) > maxLength {
		return common.NewValidationError(field, "is %d bytes, limit is %d", len(value), maxLength)
	}
	return nil
}

func validateKey(field string, key ed25519.PublicKey) error {
	if len(key) != ed25519.PublicKeySize {
		return common.NewValidationError(field, "must be a 32 byte public key")
	}
	return nil
}
