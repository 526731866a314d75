package captainsol

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

const MinModuleAccountSize = (8 + // discriminator
	1 + // module_id
	4 + // ipfs_hash
	32 + // campaign
	1) // bump

var ModuleAccountDiscriminator = []byte{234, 149, 112, 29, 65, 203, 69, 160}

type ModuleAccount struct {
	ModuleId uint8
	IpfsHash string
	Campaign ed25519.PublicKey
	Bump     uint8
}

func (obj *ModuleAccount) Unmarshal(data []byte) error {
	if len(data) < MinModuleAccountSize {
		return errors.Wrapf(ErrInvalidAccountData, "size %d below minimum %d", len(data), MinModuleAccountSize)
	}

	d := anchor.NewDecoder(data)

	var err error
	if err = d.ExpectDiscriminator(ModuleAccountDiscriminator); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	if obj.ModuleId, err = d.ReadUint8(); err != nil {
		return errors.Wrap(err, "module_id")
	}
	if obj.IpfsHash, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "ipfs_hash")
	}
	if obj.Campaign, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "campaign")
	}
	if obj.Bump, err = d.ReadUint8(); err != nil {
		return errors.Wrap(err, "bump")
	}
	return d.Finish()
}

func (obj *ModuleAccount) Marshal() []byte {
	return anchor.NewInstructionEncoder(ModuleAccountDiscriminator).
		WriteUint8(obj.ModuleId).
		WriteString(obj.IpfsHash).
		WriteKey(obj.Campaign).
		WriteUint8(obj.Bump).
		Bytes()
}

func (obj *ModuleAccount) String() string {
	return fmt.Sprintf(
		"Module{module_id=%d,ipfs_hash=%s,campaign=%s,bump=%d}",
		obj.ModuleId,
		obj.IpfsHash,
		base58.Encode(obj.Campaign),
		obj.Bump,
	)
}
