package captainsol

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

const (
	MinCampaignAccountSize = (8 + // discriminator
		32 + // creator
		32 + // platform_wallet
		8 + // start_time
		8 + // end_time
		1 + // status
		4 + // ipfs_hash
		1 + // total_modules
		4 + // nft_limit
		4 + // nft_minted_count
		1) // bump

	// CreatorOffset is where the creator key starts, for memcmp filters.
	CreatorOffset = 8
)

var CampaignAccountDiscriminator = []byte{50, 40, 49, 11, 157, 220, 229, 192}

type CampaignAccount struct {
	Creator        ed25519.PublicKey
	PlatformWallet ed25519.PublicKey
	StartTime      int64
	EndTime        int64
	Status         CampaignStatus
	IpfsHash       string
	TotalModules   uint8
	NftLimit       uint32
	NftMintedCount uint32
	Bump           uint8
}

func (obj *CampaignAccount) Unmarshal(data []byte) error {
	if len(data) < MinCampaignAccountSize {
		return errors.Wrapf(ErrInvalidAccountData, "size %d below minimum %d", len(data), MinCampaignAccountSize)
	}

	d := anchor.NewDecoder(data)

	var err error
	if err = d.ExpectDiscriminator(CampaignAccountDiscriminator); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	if obj.Creator, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if obj.PlatformWallet, err = d.ReadKey(); err != nil {
		return errors.Wrap(err, "platform_wallet")
	}
	if obj.StartTime, err = d.ReadInt64(); err != nil {
		return errors.Wrap(err, "start_time")
	}
	if obj.EndTime, err = d.ReadInt64(); err != nil {
		return errors.Wrap(err, "end_time")
	}

	status, err := d.ReadUint8()
	if err != nil {
		return errors.Wrap(err, "status")
	}
	obj.Status = CampaignStatus(status)
	if !obj.Status.IsValid() {
		return errors.Wrapf(ErrUnknownCampaignStatus, "status %d", status)
	}

	if obj.IpfsHash, err = d.ReadString(); err != nil {
		return errors.Wrap(err, "ipfs_hash")
	}
	if obj.TotalModules, err = d.ReadUint8(); err != nil {
		return errors.Wrap(err, "total_modules")
	}
	if obj.NftLimit, err = d.ReadUint32(); err != nil {
		return errors.Wrap(err, "nft_limit")
	}
	if obj.NftMintedCount, err = d.ReadUint32(); err != nil {
		return errors.Wrap(err, "nft_minted_count")
	}
	if obj.Bump, err = d.ReadUint8(); err != nil {
		return errors.Wrap(err, "bump")
	}
	return d.Finish()
}

func (obj *CampaignAccount) Marshal() []byte {
	return anchor.NewInstructionEncoder(CampaignAccountDiscriminator).
		WriteKey(obj.Creator).
		WriteKey(obj.PlatformWallet).
		WriteInt64(obj.StartTime).
		WriteInt64(obj.EndTime).
		WriteUint8(uint8(obj.Status)).
		WriteString(obj.IpfsHash).
		WriteUint8(obj.TotalModules).
		WriteUint32(obj.NftLimit).
		WriteUint32(obj.NftMintedCount).
		WriteUint8(obj.Bump).
		Bytes()
}

// IsLive reports whether the campaign accepts participant actions at the
// given unix time.
func (obj *CampaignAccount) IsLive(now int64) bool {
	return obj.Status == CampaignStatusActive && now >= obj.StartTime && now < obj.EndTime
}

// HasNftCapacity reports whether another completion NFT can be minted. A
// limit of zero means unlimited.
func (obj *CampaignAccount) HasNftCapacity() bool {
	return obj.NftLimit == 0 || obj.NftMintedCount < obj.NftLimit
}

func (obj *CampaignAccount) String() string {
	return fmt.Sprintf(
		"Campaign{creator=%s,platform_wallet=%s,start_time=%d,end_time=%d,status=%s,ipfs_hash=%s,total_modules=%d,nft_limit=%d,nft_minted_count=%d,bump=%d}",
		base58.Encode(obj.Creator),
		base58.Encode(obj.PlatformWallet),
		obj.StartTime,
		obj.EndTime,
		obj.Status,
		obj.IpfsHash,
		obj.TotalModules,
		obj.NftLimit,
		obj.NftMintedCount,
		obj.Bump,
	)
}
