package badge

import (
	"bytes"
	"crypto/ed25519"

	"github.com/captain-sol/voyage-client/pkg/solana"
	badgeprogram "github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

// Builder turns logical badge identifiers into badge program instructions.
// Every address is derived internally.
type Builder struct {
	program        ed25519.PublicKey
	platformWallet ed25519.PublicKey
}

func NewBuilder(programs *common.Programs) *Builder {
	return &Builder{
		program:        programs.Badge,
		platformWallet: programs.BadgePlatformWallet,
	}
}

// Addresses of a badge and its mint.
type Addresses struct {
	Badge ed25519.PublicKey
	Mint  ed25519.PublicKey
}

// Derive returns the badge and mint addresses for (creator, badgeId).
func (b *Builder) Derive(creator ed25519.PublicKey, badgeId string) (*Addresses, error) {
	if err := validateKey("creator", creator); err != nil {
		return nil, err
	}
	badgeId, err := validateBadgeId(badgeId)
	if err != nil {
		return nil, err
	}

	badgeAddress, _, err := badgeprogram.GetBadgeAddress(&badgeprogram.GetBadgeAddressArgs{
		Program: b.program,
		Creator: creator,
		BadgeId: badgeId,
	})
	if err != nil {
		return nil, common.NewDerivationError("badge", err)
	}

	mintAddress, _, err := badgeprogram.GetMintAddress(&badgeprogram.GetMintAddressArgs{
		Program: b.program,
		Badge:   badgeAddress,
	})
	if err != nil {
		return nil, common.NewDerivationError("mint", err)
	}

	return &Addresses{Badge: badgeAddress, Mint: mintAddress}, nil
}

func (b *Builder) Initialize(creator ed25519.PublicKey, args *InitializeArgs) (solana.Instruction, error) {
	normalized, err := args.normalize()
	if err != nil {
		return solana.Instruction{}, err
	}

	addresses, err := b.Derive(creator, normalized.BadgeId)
	if err != nil {
		return solana.Instruction{}, err
	}

	return badgeprogram.NewInitializeBadgeInstruction(
		&badgeprogram.InitializeBadgeInstructionAccounts{
			Program: b.program,
			Creator: creator,
			Badge:   addresses.Badge,
			Mint:    addresses.Mint,
		},
		normalized,
	), nil
}

// Mint purchases one copy of the badge for payer. The price is split between
// the creator and the platform wallet on chain.
func (b *Builder) Mint(payer, creator ed25519.PublicKey, badgeId string) (solana.Instruction, error) {
	if err := validateKey("payer", payer); err != nil {
		return solana.Instruction{}, err
	}

	addresses, err := b.Derive(creator, badgeId)
	if err != nil {
		return solana.Instruction{}, err
	}

	recipient, err := badgeprogram.GetHolderTokenAddress(payer, addresses.Mint)
	if err != nil {
		return solana.Instruction{}, common.NewDerivationError("recipient token account", err)
	}

	return badgeprogram.NewMintBadgeInstruction(&badgeprogram.MintBadgeInstructionAccounts{
		Program:               b.program,
		Payer:                 payer,
		Creator:               creator,
		Badge:                 addresses.Badge,
		Mint:                  addresses.Mint,
		RecipientTokenAccount: recipient,
		PlatformWallet:        b.platformWallet,
	}), nil
}

func (b *Builder) Burn(owner, creator ed25519.PublicKey, badgeId string) (solana.Instruction, error) {
	if err := validateKey("owner", owner); err != nil {
		return solana.Instruction{}, err
	}

	addresses, err := b.Derive(creator, badgeId)
	if err != nil {
		return solana.Instruction{}, err
	}

	ownerTokenAccount, err := badgeprogram.GetHolderTokenAddress(owner, addresses.Mint)
	if err != nil {
		return solana.Instruction{}, common.NewDerivationError("owner token account", err)
	}

	return badgeprogram.NewBurnBadgeInstruction(&badgeprogram.BurnBadgeInstructionAccounts{
		Program:           b.program,
		Owner:             owner,
		Badge:             addresses.Badge,
		Mint:              addresses.Mint,
		OwnerTokenAccount: ownerTokenAccount,
	}), nil
}

// Deactivate pauses sales of a decoded badge. Legacy badges have no active
// flag on chain and are rejected.
func (b *Builder) Deactivate(creator ed25519.PublicKey, badge *Badge) (solana.Instruction, error) {
	if err := checkPausable(badge); err != nil {
		return solana.Instruction{}, err
	}
	return b.deactivateByID(creator, badge.BadgeId)
}

func (b *Builder) Reactivate(creator ed25519.PublicKey, badge *Badge) (solana.Instruction, error) {
	if err := checkPausable(badge); err != nil {
		return solana.Instruction{}, err
	}
	return b.reactivateByID(creator, badge.BadgeId)
}

// deactivateByID builds the instruction without the legacy check. Callers
// outside this package go through Deactivate or TogglePause.
func (b *Builder) deactivateByID(creator ed25519.PublicKey, badgeId string) (solana.Instruction, error) {
	accounts, err := b.setActiveAccounts(creator, badgeId)
	if err != nil {
		return solana.Instruction{}, err
	}
	return badgeprogram.NewDeactivateBadgeInstruction(accounts), nil
}

func (b *Builder) reactivateByID(creator ed25519.PublicKey, badgeId string) (solana.Instruction, error) {
	accounts, err := b.setActiveAccounts(creator, badgeId)
	if err != nil {
		return solana.Instruction{}, err
	}
	return badgeprogram.NewReactivateBadgeInstruction(accounts), nil
}

// TogglePause flips the active flag of a badge owned by caller.
func (b *Builder) TogglePause(caller ed25519.PublicKey, badge *Badge) (solana.Instruction, error) {
	if err := validateKey("caller", caller); err != nil {
		return solana.Instruction{}, err
	}
	if badge == nil {
		return solana.Instruction{}, common.NewValidationError("badge", "is required")
	}
	if !bytes.Equal(caller, badge.Creator) {
		return solana.Instruction{}, common.NewValidationError("caller", "only the badge creator can pause or unpause a badge")
	}

	if badge.IsActive {
		return b.Deactivate(caller, badge)
	}
	return b.Reactivate(caller, badge)
}

func (b *Builder) setActiveAccounts(creator ed25519.PublicKey, badgeId string) (*badgeprogram.SetBadgeActiveInstructionAccounts, error) {
	addresses, err := b.Derive(creator, badgeId)
	if err != nil {
		return nil, err
	}
	return &badgeprogram.SetBadgeActiveInstructionAccounts{
		Program: b.program,
		Creator: creator,
		Badge:   addresses.Badge,
	}, nil
}

func checkPausable(badge *Badge) error {
	if badge == nil {
		return common.NewValidationError("badge", "is required")
	}
	if !badge.IsPausable() {
		return common.NewValidationError("badge", "legacy badges cannot be paused or unpaused")
	}
	return nil
}
