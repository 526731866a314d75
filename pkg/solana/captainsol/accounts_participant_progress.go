package captainsol

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

const MinParticipantProgressAccountSize = (8 + // discriminator
	32 + // participant
	32 + // campaign
	4 + // completed_modules
	1 + // nft_minted
	8 + // registered_at
	1) // bump

var ParticipantProgressAccountDiscriminator = []byte{79, 33, 223, 205, 245, 203, 227, 237}

// ParticipantProgressAccount tracks one participant in one campaign.
// CompletedModules is a bitmap: module n is bit n%8 of byte n/8.
type ParticipantProgressAccount struct {
	Participant      ed25519.PublicKey
	Campaign         ed25519.PublicKey
	CompletedModules []byte
	NftMinted        bool
	RegisteredAt     int64
	Bump             uint8
}

func (obj *ParticipantProgressAccount) Unmarshal(data []byte) error {
	if len(data) < MinParticipantProgressAccountSize {
		return errors.Wrapf(ErrInvalidAccountData, "size %d below minimum %d", len(data), MinParticipantProgressAccountSize)
	}

	d := anchor.NewDecoder(data)

	var err error
	if err = d.ExpectDiscriminator(ParticipantProgressAccountDiscriminator); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	if obj.Participant, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "participant")
	}
	if obj.Campaign, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "campaign")
	}
	if obj.CompletedModules, err = d.ReadBytes(); err != nil {
		return errors.Wrap(err, "completed_modules")
	}
	if obj.NftMinted, err = d.ReadBool(); err != nil {
		return errors.Wrap(err, "nft_minted")
	}
	if obj.RegisteredAt, err = d.ReadInt64(); err != nil {
		return errors.Wrap(err, "registered_at")
	}
	if obj.Bump, err = d.ReadUint8(); err != nil {
		return errors.Wrap(err, "bump")
	}
	return d.Finish()
}

func (obj *ParticipantProgressAccount) Marshal() []byte {
	return anchor.NewInstructionEncoder(ParticipantProgressAccountDiscriminator).
		WriteKey(obj.Participant).
		WriteKey(obj.Campaign).
		WriteBytes(obj.CompletedModules).
		WriteBool(obj.NftMinted).
		WriteInt64(obj.RegisteredAt).
		WriteUint8(obj.Bump).
		Bytes()
}

func (obj *ParticipantProgressAccount) IsModuleCompleted(moduleId uint8) bool {
	index := int(moduleId / 8)
	if index >= len(obj.CompletedModules) {
		return false
	}
	return obj.CompletedModules[index]&(1<<(moduleId%8)) != 0
}

// SetModuleCompleted marks a module locally, growing the bitmap as needed.
// It's used to reflect a confirmed submission without re-reading the account.
func (obj *ParticipantProgressAccount) SetModuleCompleted(moduleId uint8) {
	index := int(moduleId / 8)
	for len(obj.CompletedModules) <= index {
		obj.CompletedModules = append(obj.CompletedModules, 0)
	}
	obj.CompletedModules[index] |= 1 << (moduleId % 8)
}

func (obj *ParticipantProgressAccount) CompletedCount() int {
	var count int
	for _, b := range obj.CompletedModules {
		for ; b != 0; b &= b - 1 {
			count++
		}
	}
	return count
}

// HasCompletedAll reports whether modules 0 through totalModules-1 are all
// marked.
func (obj *ParticipantProgressAccount) HasCompletedAll(totalModules uint8) bool {
	for i := 0; i < int(totalModules); i++ {
		if !obj.IsModuleCompleted(uint8(i)) {
			return false
		}
	}
	return true
}

func (obj *ParticipantProgressAccount) String() string {
	return fmt.Sprintf(
		"ParticipantProgress{participant=%s,campaign=%s,completed=%d,nft_minted=%v,registered_at=%d,bump=%d}",
		base58.Encode(obj.Participant),
		base58.Encode(obj.Campaign),
		obj.CompletedCount(),
		obj.NftMinted,
		obj.RegisteredAt,
		obj.Bump,
	)
}
