package campaign

import (
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/captainsol"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

// Builder turns logical campaign identifiers into campaign program
// instructions. Every address is derived internally.
type Builder struct {
	program        ed25519.PublicKey
	platformWallet ed25519.PublicKey
}

func NewBuilder(programs *common.Programs) *Builder {
	return &Builder{
		program:        programs.Campaign,
		platformWallet: programs.CampaignPlatformWallet,
	}
}

type InitializeCampaignArgs struct {
	CampaignId   uint64
	IpfsHash     string
	StartTime    int64
	EndTime      int64
	TotalModules uint8

	// NftLimit of zero leaves completion NFTs unlimited.
	NftLimit uint32
}

func (a *InitializeCampaignArgs) normalize() (*captainsol.InitializeCampaignInstructionArgs, error) {
	ipfsHash, err := validateIpfsHash(a.IpfsHash)
	if err != nil {
		return nil, err
	}
	if a.EndTime <= a.StartTime {
		return nil, common.NewValidationError("end time", "must be after the start time")
	}
	if a.TotalModules == 0 {
		return nil, common.NewValidationError("total modules", "must be at least one")
	}

	return &captainsol.InitializeCampaignInstructionArgs{
		CampaignId:   a.CampaignId,
		IpfsHash:     ipfsHash,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		TotalModules: a.TotalModules,
		NftLimit:     a.NftLimit,
	}, nil
}

// CampaignAddress derives the campaign PDA for (creator, campaignId).
func (b *Builder) CampaignAddress(creator ed25519.PublicKey, campaignId uint64) (ed25519.PublicKey, error) {
	if err := validateKey("creator", creator); err != nil {
		return nil, err
	}

	address, _, err := captainsol.GetCampaignAddress(&captainsol.GetCampaignAddressArgs{
		Program:    b.program,
		Creator:    creator,
		CampaignId: campaignId,
	})
	if err != nil {
		return nil, common.NewDerivationError("campaign", err)
	}
	return address, nil
}

// ModuleAddress derives the module PDA for moduleId within campaign.
func (b *Builder) ModuleAddress(campaign ed25519.PublicKey, moduleId uint8) (ed25519.PublicKey, error) {
	if err := validateKey("campaign", campaign); err != nil {
		return nil, err
	}

	address, _, err := captainsol.GetModuleAddress(&captainsol.GetModuleAddressArgs{
		Program:  b.program,
		Campaign: campaign,
		ModuleId: moduleId,
	})
	if err != nil {
		return nil, common.NewDerivationError("module", err)
	}
	return address, nil
}

// ProgressAddress derives the participant progress PDA.
func (b *Builder) ProgressAddress(campaign, participant ed25519.PublicKey) (ed25519.PublicKey, error) {
	args, err := b.participantArgs(campaign, participant)
	if err != nil {
		return nil, err
	}

	address, _, err := captainsol.GetParticipantProgressAddress(args)
	if err != nil {
		return nil, common.NewDerivationError("participant progress", err)
	}
	return address, nil
}

func (b *Builder) InitializeCampaign(creator ed25519.PublicKey, args *InitializeCampaignArgs) (solana.Instruction, error) {
	normalized, err := args.normalize()
	if err != nil {
		return solana.Instruction{}, err
	}

	campaign, err := b.CampaignAddress(creator, normalized.CampaignId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return captainsol.NewInitializeCampaignInstruction(
		&captainsol.InitializeCampaignInstructionAccounts{
			Program:        b.program,
			Creator:        creator,
			Campaign:       campaign,
			PlatformWallet: b.platformWallet,
		},
		normalized,
	), nil
}

// AddModule registers module moduleId of the creator's campaign. The module
// count is checked on chain when the campaign record is not at hand.
func (b *Builder) AddModule(creator ed25519.PublicKey, campaignId uint64, moduleId uint8, ipfsHash string) (solana.Instruction, error) {
	ipfsHash, err := validateIpfsHash(ipfsHash)
	if err != nil {
		return solana.Instruction{}, err
	}

	campaign, err := b.CampaignAddress(creator, campaignId)
	if err != nil {
		return solana.Instruction{}, err
	}

	module, err := b.ModuleAddress(campaign, moduleId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return captainsol.NewAddModuleInstruction(
		&captainsol.AddModuleInstructionAccounts{
			Program:  b.program,
			Creator:  creator,
			Campaign: campaign,
			Module:   module,
		},
		&captainsol.AddModuleInstructionArgs{
			ModuleId: moduleId,
			IpfsHash: ipfsHash,
		},
	), nil
}

// CreateCampaignWithModules returns the initialize instruction followed by
// one add module instruction per module, in module id order. Modules share
// the campaign's ipfs hash unless moduleIpfsHashes gives one per module.
func (b *Builder) CreateCampaignWithModules(creator ed25519.PublicKey, args *InitializeCampaignArgs, moduleIpfsHashes ...string) ([]solana.Instruction, error) {
	if len(moduleIpfsHashes) > 0 && len(moduleIpfsHashes) != int(args.TotalModules) {
		return nil, common.NewValidationError("module ipfs hashes", "got %d for %d modules", len(moduleIpfsHashes), args.TotalModules)
	}

	initialize, err := b.InitializeCampaign(creator, args)
	if err != nil {
		return nil, err
	}

	instructions := []solana.Instruction{initialize}
	for moduleId := 0; moduleId < int(args.TotalModules); moduleId++ {
		ipfsHash := args.IpfsHash
		if len(moduleIpfsHashes) > 0 {
			ipfsHash = moduleIpfsHashes[moduleId]
		}

		addModule, err := b.AddModule(creator, args.CampaignId, uint8(moduleId), ipfsHash)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, addModule)
	}
	return instructions, nil
}

func (b *Builder) CloseCampaign(creator ed25519.PublicKey, campaignId uint64) (solana.Instruction, error) {
	campaign, err := b.CampaignAddress(creator, campaignId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return captainsol.NewCloseCampaignInstruction(&captainsol.CloseCampaignInstructionAccounts{
		Program:  b.program,
		Creator:  creator,
		Campaign: campaign,
	}), nil
}

func (b *Builder) RegisterParticipant(participant, campaign ed25519.PublicKey) (solana.Instruction, error) {
	progress, err := b.ProgressAddress(campaign, participant)
	if err != nil {
		return solana.Instruction{}, err
	}

	return captainsol.NewRegisterParticipantInstruction(&captainsol.RegisterParticipantInstructionAccounts{
		Program:             b.program,
		Participant:         participant,
		Campaign:            campaign,
		ParticipantProgress: progress,
	}), nil
}

func (b *Builder) SubmitModuleCompletion(participant, campaign ed25519.PublicKey, moduleId uint8) (solana.Instruction, error) {
	progress, err := b.ProgressAddress(campaign, participant)
	if err != nil {
		return solana.Instruction{}, err
	}

	module, err := b.ModuleAddress(campaign, moduleId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return captainsol.NewSubmitModuleCompletionInstruction(&captainsol.SubmitModuleCompletionInstructionAccounts{
		Program:             b.program,
		Participant:         participant,
		Campaign:            campaign,
		Module:              module,
		ParticipantProgress: progress,
	}), nil
}

// SubmitModuleCompletionFor is SubmitModuleCompletion with the module id
// checked against a decoded campaign.
func (b *Builder) SubmitModuleCompletionFor(participant ed25519.PublicKey, campaign *Campaign, moduleId uint8) (solana.Instruction, error) {
	if campaign == nil {
		return solana.Instruction{}, common.NewValidationError("campaign", "is required")
	}
	if moduleId >= campaign.TotalModules {
		return solana.Instruction{}, common.NewValidationError("module id", "%d is out of range for %d modules", moduleId, campaign.TotalModules)
	}
	return b.SubmitModuleCompletion(participant, campaign.Address, moduleId)
}

func (b *Builder) MintCompletionNft(participant, campaign ed25519.PublicKey) (solana.Instruction, error) {
	args, err := b.participantArgs(campaign, participant)
	if err != nil {
		return solana.Instruction{}, err
	}

	progress, _, err := captainsol.GetParticipantProgressAddress(args)
	if err != nil {
		return solana.Instruction{}, common.NewDerivationError("participant progress", err)
	}
	nftMint, _, err := captainsol.GetNftMintAddress(args)
	if err != nil {
		return solana.Instruction{}, common.NewDerivationError("nft mint", err)
	}
	nftTokenAccount, _, err := captainsol.GetNftTokenAddress(args)
	if err != nil {
		return solana.Instruction{}, common.NewDerivationError("nft token account", err)
	}

	return captainsol.NewMintCompletionNftInstruction(&captainsol.MintCompletionNftInstructionAccounts{
		Program:             b.program,
		Participant:         participant,
		Campaign:            campaign,
		ParticipantProgress: progress,
		NftMint:             nftMint,
		NftTokenAccount:     nftTokenAccount,
	}), nil
}

func (b *Builder) participantArgs(campaign, participant ed25519.PublicKey) (*captainsol.ParticipantAddressArgs, error) {
	if err := validateKey("campaign", campaign); err != nil {
		return nil, err
	}
	if err := validateKey("participant", participant); err != nil {
		return nil, err
	}
	return &captainsol.ParticipantAddressArgs{
		Program:     b.program,
		Campaign:    campaign,
		Participant: participant,
	}, nil
}
