package badge

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
	"github.com/captain-sol/voyage-client/pkg/solana/binary"
)

// LegacyDescription is the description given to badges decoded from the v1
// layout, which has no description field. Those badges cannot be paused.
const LegacyDescription = "Legacy Badge"

const (
	MinBadgeAccountSize = (8 + // discriminator
		32 + // creator
		8 + // price
		32 + // mint
		4 + // badge_id
		4 + // name
		4 + // description
		4 + // uri
		1 + // is_active
		1) // bump

	MinLegacyBadgeAccountSize = (8 + // discriminator
		32 + // creator
		8 + // price
		32 + // mint
		4 + // badge_id
		4 + // uri
		1) // bump
)

var BadgeAccountDiscriminator = []byte{40, 127, 162, 181, 177, 154, 1, 48}

type BadgeAccount struct {
	Creator     ed25519.PublicKey
	Price       uint64
	Mint        ed25519.PublicKey
	BadgeId     string
	Name        string
	Description string
	Uri         string
	IsActive    bool
	Bump        uint8

	// IsLegacy is set when the account was decoded from the v1 layout. It is
	// not stored on chain.
	IsLegacy bool
}

// DecodeBadgeAccount decodes a badge account of either schema generation. The
// v2 layout is preferred and v1 is the fallback. Adding a generation means
// adding one more attempt here.
//
// Both layouts tolerate zero padding, so a padded v1 account can also parse
// as v2 with its bump and padding read as the later v2 fields. When the v1
// parse succeeds and everything after its bump is zero, the account is v1. A
// real v2 account only looks like that with an all-NUL description, an empty
// uri, is_active false and bump 0.
func DecodeBadgeAccount(data []byte) (*BadgeAccount, error) {
	var legacy BadgeAccount
	legacyEnd, v1Err := legacy.unmarshalLegacy(data)

	var account BadgeAccount
	v2Err := account.Unmarshal(data)
	if v2Err == nil {
		if v1Err == nil && isZeroPadding(data[legacyEnd:]) {
			return &legacy, nil
		}
		return &account, nil
	}

	if v1Err == nil {
		return &legacy, nil
	}

	return nil, errors.Wrapf(ErrInvalidAccountData, "v2: %s, v1: %s", v2Err.Error(), v1Err.Error())
}

func isZeroPadding(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

// Unmarshal decodes the current (v2) Borsh layout. The discriminator is
// skipped rather than checked, since both generations share it.
func (obj *BadgeAccount) Unmarshal(data []byte) error {
	if len(data) < MinBadgeAccountSize {
		return errors.Wrapf(ErrInvalidAccountData, "size %d below minimum %d", len(data), MinBadgeAccountSize)
	}

	d := anchor.NewDecoder(data)

	var err error
	if err = d.SkipDiscriminator(); err != nil {
		return err
	}
	if obj.Creator, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if obj.Price, err = d.ReadUint64(); err != nil {
		return errors.Wrap(err, "price")
	}
	if obj.Mint, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if obj.BadgeId, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "badge_id")
	}
	if obj.Name, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "name")
	}
	if obj.Description, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "description")
	}
	if obj.Uri, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "uri")
	}
	if obj.IsActive, err = d.ReadBool(); err != nil {
		return errors.Wrap(err, "is_active")
	}
	if obj.Bump, err = d.ReadUint8(); err != nil {
		return errors.Wrap(err, "bump")
	}
	if err = d.Finish(); err != nil {
		return err
	}

	obj.IsLegacy = false
	return nil
}

// UnmarshalLegacy decodes the original (v1) layout, which predates name,
// description and is_active. Bytes after the bump are ignored.
func (obj *BadgeAccount) UnmarshalLegacy(data []byte) error {
	_, err := obj.unmarshalLegacy(data)
	return err
}

// unmarshalLegacy returns the offset just past the bump.
func (obj *BadgeAccount) unmarshalLegacy(data []byte) (int, error) {
	if len(data) < MinLegacyBadgeAccountSize {
		return 0, errors.Wrapf(ErrInvalidAccountData, "size %d below minimum %d", len(data), MinLegacyBadgeAccountSize)
	}

	offset := anchor.DiscriminatorSize

	if err := binary.GetKey32(data, &obj.Creator, &offset); err != nil {
		return 0, errors.Wrap(err, "creator")
	}
	if err := binary.GetUint64(data, &obj.Price, &offset); err != nil {
		return 0, errors.Wrap(err, "price")
	}
	if err := binary.GetKey32(data, &obj.Mint, &offset); err != nil {
		return 0, errors.Wrap(err, "mint")
	}
	if err := binary.GetString(data, &obj.BadgeId, &offset); err != nil {
		return 0, errors.Wrap(err, "badge_id")
	}
	if err := binary.GetString(data, &obj.Uri, &offset); err != nil {
		return 0, errors.Wrap(err, "uri")
	}
	if err := binary.GetUint8(data, &obj.Bump, &offset); err != nil {
		return 0, errors.Wrap(err, "bump")
	}

	obj.Name = obj.BadgeId
	obj.Description = LegacyDescription
	obj.IsActive = true
	obj.IsLegacy = true
	return offset, nil
}

// Marshal encodes the account in the v2 layout.
func (obj *BadgeAccount) Marshal() []byte {
	return anchor.NewInstructionEncoder(BadgeAccountDiscriminator).
		WriteKey(obj.Creator).
		WriteUint64(obj.Price).
		WriteKey(obj.Mint).
		WriteString(obj.BadgeId).
		WriteString(obj.Name).
		WriteString(obj.Description).
		WriteString(obj.Uri).
		WriteBool(obj.IsActive).
		WriteUint8(obj.Bump).
		Bytes()
}

// MarshalLegacy encodes the account in the v1 layout.
func (obj *BadgeAccount) MarshalLegacy() []byte {
	data := make([]byte, MinLegacyBadgeAccountSize+len(obj.BadgeId)+len(obj.Uri))

	var offset int
	copy(data, BadgeAccountDiscriminator)
	offset += anchor.DiscriminatorSize

	binary.PutKey32(data, obj.Creator, &offset)
	binary.PutUint64(data, obj.Price, &offset)
	binary.PutKey32(data, obj.Mint, &offset)
	binary.PutString(data, obj.BadgeId, &offset)
	binary.PutString(data, obj.Uri, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

// IsPausable reports whether deactivate and reactivate exist for the badge.
// The description check covers records built outside DecodeBadgeAccount.
func (obj *BadgeAccount) IsPausable() bool {
	return !obj.IsLegacy && obj.Description != LegacyDescription
}

func (obj *BadgeAccount) String() string {
	return fmt.Sprintf(
		"Badge{creator=%s,price=%d,mint=%s,badge_id=%s,name=%s,uri=%s,is_active=%v,bump=%d,legacy=%v}",
		base58.Encode(obj.Creator),
		obj.Price,
		base58.Encode(obj.Mint),
		obj.BadgeId,
		obj.Name,
		obj.Uri,
		obj.IsActive,
		obj.Bump,
		obj.IsLegacy,
	)
}
