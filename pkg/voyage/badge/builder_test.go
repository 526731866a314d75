package badge

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captain-sol/voyage-client/pkg/solana"
	badgeprogram "github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/testutil"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

func TestBuilder_Initialize(t *testing.T) {
	creator := testutil.GenerateSolanaKeys(t, 1)[0]
	builder := NewBuilder(common.DevnetPrograms())

	ix, err := builder.Initialize(creator, &InitializeArgs{
		BadgeId:     " arm123abc ",
		Name:        "Explorer",
		Description: "First voyage",
		Uri:         "https://example.com/badge.png",
		PriceInSol:  1.5,
	})
	require.NoError(t, err)

	addresses, err := builder.Derive(creator, "arm123abc")
	require.NoError(t, err)

	expected := badgeprogram.NewInitializeBadgeInstruction(
		&badgeprogram.InitializeBadgeInstructionAccounts{
			Creator: creator,
			Badge:   addresses.Badge,
			Mint:    addresses.Mint,
		},
		&badgeprogram.InitializeBadgeInstructionArgs{
			BadgeId:     "arm123abc",
			Name:        "Explorer",
			Description: "First voyage",
			Uri:         "https://example.com/badge.png",
			Price:       1_500_000_000,
		},
	)
	assert.Equal(t, expected, ix)
}

func TestBuilder_InitializeValidation(t *testing.T) {
	creator := testutil.GenerateSolanaKeys(t, 1)[0]
	builder := NewBuilder(common.DevnetPrograms())

	valid := func() *InitializeArgs {
		return &InitializeArgs{
			BadgeId:    "arm123abc",
			Name:       "Explorer",
			Uri:        "https://example.com/badge.png",
			PriceInSol: 0.1,
		}
	}

	for name, mutate := range map[string]func(*InitializeArgs){
		"empty badge id":       func(a *InitializeArgs) { a.BadgeId = "   " },
		"long badge id":        func(a *InitializeArgs) { a.BadgeId = strings.Repeat("a", MaxBadgeIdLength+1) },
		"invalid utf8":         func(a *InitializeArgs) { a.BadgeId = "arm\xff" },
		"empty name":           func(a *InitializeArgs) { a.Name = "" },
		"long name":            func(a *InitializeArgs) { a.Name = strings.Repeat("n", MaxNameLength+1) },
		"long description":     func(a *InitializeArgs) { a.Description = strings.Repeat("d", MaxDescriptionLength+1) },
		"empty uri":            func(a *InitializeArgs) { a.Uri = "\t" },
		"long uri":             func(a *InitializeArgs) { a.Uri = strings.Repeat("u", MaxUriLength+1) },
		"zero price":           func(a *InitializeArgs) { a.PriceInSol = 0 },
		"negative price":       func(a *InitializeArgs) { a.PriceInSol = -1 },
		"sub lamport price":    func(a *InitializeArgs) { a.PriceInSol = 1e-12 },
		"overflowing lamports": func(a *InitializeArgs) { a.PriceInSol = 1e11 },
	} {
		args := valid()
		mutate(args)

		_, err := builder.Initialize(creator, args)
		assert.True(t, errors.Is(err, common.ErrValidation), name)
	}

	// Multi-byte ids are bounded by bytes, not runes.
	args := valid()
	args.BadgeId = strings.Repeat("é", 16)
	_, err := builder.Initialize(creator, args)
	assert.NoError(t, err)
	args.BadgeId = strings.Repeat("é", 17)
	_, err = builder.Initialize(creator, args)
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = builder.Initialize(creator[:31], valid())
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestBuilder_MintAndBurn(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	payer, creator := keys[0], keys[1]
	programs := common.DevnetPrograms()
	builder := NewBuilder(programs)

	addresses, err := builder.Derive(creator, "arm1")
	require.NoError(t, err)
	holderAccount, err := badgeprogram.GetHolderTokenAddress(payer, addresses.Mint)
	require.NoError(t, err)

	ix, err := builder.Mint(payer, creator, "arm1")
	require.NoError(t, err)
	assert.Equal(t, badgeprogram.NewMintBadgeInstruction(&badgeprogram.MintBadgeInstructionAccounts{
		Program:               programs.Badge,
		Payer:                 payer,
		Creator:               creator,
		Badge:                 addresses.Badge,
		Mint:                  addresses.Mint,
		RecipientTokenAccount: holderAccount,
		PlatformWallet:        programs.BadgePlatformWallet,
	}), ix)

	ix, err = builder.Burn(payer, creator, "arm1")
	require.NoError(t, err)
	assert.Equal(t, badgeprogram.NewBurnBadgeInstruction(&badgeprogram.BurnBadgeInstructionAccounts{
		Program:           programs.Badge,
		Owner:             payer,
		Badge:             addresses.Badge,
		Mint:              addresses.Mint,
		OwnerTokenAccount: holderAccount,
	}), ix)

	_, err = builder.Mint(nil, creator, "arm1")
	assert.True(t, errors.Is(err, common.ErrValidation))
	_, err = builder.Burn(payer, creator, "")
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestBuilder_LegacyBadgesCannotBePaused(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	creator, stranger := keys[0], keys[1]
	builder := NewBuilder(common.DevnetPrograms())

	legacy := &Badge{BadgeAccount: badgeprogram.BadgeAccount{
		Creator:     creator,
		BadgeId:     "old",
		Description: badgeprogram.LegacyDescription,
		IsActive:    true,
	}}
	flagged := &Badge{BadgeAccount: badgeprogram.BadgeAccount{
		Creator:  creator,
		BadgeId:  "old2",
		IsActive: true,
		IsLegacy: true,
	}}

	for _, badge := range []*Badge{legacy, flagged} {
		for _, caller := range [][]byte{creator, stranger} {
			_, err := builder.Deactivate(caller, badge)
			assert.True(t, errors.Is(err, common.ErrValidation))
			_, err = builder.Reactivate(caller, badge)
			assert.True(t, errors.Is(err, common.ErrValidation))
		}
		_, err := builder.TogglePause(creator, badge)
		assert.True(t, errors.Is(err, common.ErrValidation))
	}
}

func TestBuilder_PauseRequiresDecodedRecord(t *testing.T) {
	creator := testutil.GenerateSolanaKeys(t, 1)[0]
	builder := NewBuilder(common.DevnetPrograms())

	_, err := builder.Deactivate(creator, nil)
	assert.True(t, errors.Is(err, common.ErrValidation))
	_, err = builder.Reactivate(creator, nil)
	assert.True(t, errors.Is(err, common.ErrValidation))

	// An over-allocated v1 record still decodes as legacy and stays unpausable.
	record := &badgeprogram.BadgeAccount{
		Creator: creator,
		Price:   1_000_000_000,
		Mint:    creator,
		BadgeId: "old",
		Uri:     "https://x",
		Bump:    3,
	}
	data := append(record.MarshalLegacy(), make([]byte, 64)...)
	decoded, err := badgeprogram.DecodeBadgeAccount(data)
	require.NoError(t, err)

	badge := &Badge{BadgeAccount: *decoded}
	_, err = builder.Deactivate(creator, badge)
	assert.True(t, errors.Is(err, common.ErrValidation))
	_, err = builder.Reactivate(creator, badge)
	assert.True(t, errors.Is(err, common.ErrValidation))
	_, err = builder.TogglePause(creator, badge)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestBuilder_TogglePause(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	creator, stranger := keys[0], keys[1]
	builder := NewBuilder(common.DevnetPrograms())

	badge := &Badge{BadgeAccount: badgeprogram.BadgeAccount{
		Creator:     creator,
		BadgeId:     "arm1",
		Description: "live",
		IsActive:    true,
	}}

	deactivate, err := builder.deactivateByID(creator, "arm1")
	require.NoError(t, err)
	reactivate, err := builder.reactivateByID(creator, "arm1")
	require.NoError(t, err)
	assert.NotEqual(t, deactivate.Data, reactivate.Data)

	ix, err := builder.TogglePause(creator, badge)
	require.NoError(t, err)
	assert.Equal(t, deactivate, ix)

	badge.IsActive = false
	ix, err = builder.TogglePause(creator, badge)
	require.NoError(t, err)
	assert.Equal(t, reactivate, ix)

	_, err = builder.TogglePause(stranger, badge)
	assert.True(t, errors.Is(err, common.ErrValidation))
	_, err = builder.TogglePause(creator, nil)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestBuilder_CustomProgram(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	programs := common.DevnetPrograms()
	programs.Badge = keys[1]

	devnet, err := NewBuilder(common.DevnetPrograms()).Derive(keys[0], "arm1")
	require.NoError(t, err)
	custom, err := NewBuilder(programs).Derive(keys[0], "arm1")
	require.NoError(t, err)
	assert.NotEqual(t, devnet.Badge, custom.Badge)

	ix, err := NewBuilder(programs).deactivateByID(keys[0], "arm1")
	require.NoError(t, err)
	assert.EqualValues(t, keys[1], ix.Program)
	assertInstructionAccounts(t, ix, keys[0], custom.Badge)
}

func assertInstructionAccounts(t *testing.T, ix solana.Instruction, keys ...[]byte) {
	require.Len(t, ix.Accounts, len(keys))
	for i, key := range keys {
		assert.EqualValues(t, key, ix.Accounts[i].PublicKey)
	}
}
