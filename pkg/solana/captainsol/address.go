package captainsol

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/captain-sol/voyage-client/pkg/solana"
)

var (
	CampaignPrefix    = []byte("campaign")
	ModulePrefix      = []byte("module")
	ParticipantPrefix = []byte("participant")
	NftPrefix         = []byte("nft")
	NftTokenPrefix    = []byte("nft_token")
)

type GetCampaignAddressArgs struct {
	Program    ed25519.PublicKey
	Creator    ed25519.PublicKey
	CampaignId uint64
}

// GetCampaignAddress derives ["campaign", creator, campaign_id as u64 LE].
func GetCampaignAddress(args *GetCampaignAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.Creator) != ed25519.PublicKeySize {
		return nil, 0, ErrInvalidSeed
	}

	campaignId := make([]byte, 8)
	binary.LittleEndian.PutUint64(campaignId, args.CampaignId)

	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		CampaignPrefix,
		args.Creator,
		campaignId,
	)
}

type GetModuleAddressArgs struct {
	Program  ed25519.PublicKey
	Campaign ed25519.PublicKey
	ModuleId uint8
}

// GetModuleAddress derives ["module", campaign, module_id].
func GetModuleAddress(args *GetModuleAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.Campaign) != ed25519.PublicKeySize {
		return nil, 0, ErrInvalidSeed
	}

	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		ModulePrefix,
		args.Campaign,
		[]byte{args.ModuleId},
	)
}

// ParticipantAddressArgs identifies the per participant accounts of a
// campaign.
type ParticipantAddressArgs struct {
	Program     ed25519.PublicKey
	Campaign    ed25519.PublicKey
	Participant ed25519.PublicKey
}

// GetParticipantProgressAddress derives ["participant", campaign, participant].
func GetParticipantProgressAddress(args *ParticipantAddressArgs) (ed25519.PublicKey, uint8, error) {
	return getParticipantScopedAddress(ParticipantPrefix, args)
}

// GetNftMintAddress derives ["nft", campaign, participant], the completion NFT
// mint.
func GetNftMintAddress(args *ParticipantAddressArgs) (ed25519.PublicKey, uint8, error) {
	return getParticipantScopedAddress(NftPrefix, args)
}

// GetNftTokenAddress derives ["nft_token", campaign, participant], the
// account that receives the completion NFT.
func GetNftTokenAddress(args *ParticipantAddressArgs) (ed25519.PublicKey, uint8, error) {
	return getParticipantScopedAddress(NftTokenPrefix, args)
}

func getParticipantScopedAddress(prefix []byte, args *ParticipantAddressArgs) (ed25519.PublicKey, uint8, error) {
	if len(args.Campaign) != ed25519.PublicKeySize || len(args.Participant) != ed25519.PublicKeySize {
		return nil, 0, ErrInvalidSeed
	}

	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		prefix,
		args.Campaign,
		args.Participant,
	)
}
