package badge

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgeprogram "github.com/captain-sol/voyage-client/pkg/solana/badge"
	"github.com/captain-sol/voyage-client/pkg/testutil"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

func TestMain(m *testing.M) {
	testutil.DisableLogging()
	m.Run()
}

type readerEnv struct {
	client   *testutil.FakeSolanaClient
	reader   *Reader
	programs *common.Programs
}

func setup(t *testing.T) *readerEnv {
	programs := common.DevnetPrograms()
	client := testutil.NewFakeSolanaClient()
	return &readerEnv{
		client:   client,
		reader:   NewReader(client, programs),
		programs: programs,
	}
}

func (e *readerEnv) addBadge(t *testing.T, account *badgeprogram.BadgeAccount, legacy bool) ed25519.PublicKey {
	address := testutil.GenerateSolanaKeys(t, 1)[0]
	data := account.Marshal()
	if legacy {
		data = account.MarshalLegacy()
	}
	e.client.AddProgramAccount(e.programs.Badge, address, data)
	return address
}

func newBadgeAccount(t *testing.T, badgeId string, isActive bool) *badgeprogram.BadgeAccount {
	keys := testutil.GenerateSolanaKeys(t, 2)
	return &badgeprogram.BadgeAccount{
		Creator:     keys[0],
		Price:       250_000_000,
		Mint:        keys[1],
		BadgeId:     badgeId,
		Name:        "Badge " + badgeId,
		Description: "description",
		Uri:         "https://example.com/" + badgeId,
		IsActive:    isActive,
		Bump:        254,
	}
}

func TestReader_ListAllBadges(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	live := newBadgeAccount(t, "live", true)
	paused := newBadgeAccount(t, "paused", false)
	legacy := &badgeprogram.BadgeAccount{
		Creator: make([]byte, 32),
		Price:   1_000_000_000,
		Mint:    ed25519.PublicKey(repeat(0x01, 32)),
		BadgeId: "test1",
		Uri:     "https://x",
		Bump:    3,
	}

	liveAddress := env.addBadge(t, live, false)
	env.addBadge(t, paused, false)
	legacyAddress := env.addBadge(t, legacy, true)
	env.client.AddProgramAccount(env.programs.Badge, testutil.GenerateSolanaKeys(t, 1)[0], repeat(0xff, 10))

	listing, err := env.reader.ListAllBadges(ctx, nil)
	require.NoError(t, err)
	require.Len(t, listing.Badges, 3)
	assert.Equal(t, 1, listing.Skipped)
	assert.Equal(t, 0, env.client.TokenAccountCalls)

	assert.EqualValues(t, liveAddress, listing.Badges[0].Address)
	assert.Equal(t, *live, listing.Badges[0].BadgeAccount)

	decodedLegacy := listing.Find(legacyAddress)
	require.NotNil(t, decodedLegacy)
	assert.Equal(t, "test1", decodedLegacy.BadgeId)
	assert.Equal(t, "test1", decodedLegacy.Name)
	assert.EqualValues(t, 1_000_000_000, decodedLegacy.Price)
	assert.True(t, decodedLegacy.IsActive)
	assert.Equal(t, badgeprogram.LegacyDescription, decodedLegacy.Description)
	assert.EqualValues(t, 3, decodedLegacy.Bump)
	assert.True(t, decodedLegacy.IsLegacy)
	assert.False(t, decodedLegacy.IsPausable())

	for _, badge := range listing.Badges {
		assert.False(t, badge.IsOwned)
	}
}

func TestReader_ListAllBadges_CorruptRecordsAreSkipped(t *testing.T) {
	env := setup(t)
	logs := testutil.CaptureLogs(t)

	for i := 0; i < 4; i++ {
		env.addBadge(t, newBadgeAccount(t, "b"+string(rune('0'+i)), true), false)
	}
	valid := newBadgeAccount(t, "truncated", true).Marshal()
	env.client.AddProgramAccount(env.programs.Badge, testutil.GenerateSolanaKeys(t, 1)[0], valid[:10])

	listing, err := env.reader.ListAllBadges(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, listing.Badges, 4)
	assert.Equal(t, 1, listing.Skipped)

	require.Len(t, logs.AllEntries(), 1)
	entry := logs.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.True(t, errors.Is(entry.Data[logrus.ErrorKey].(error), common.ErrDecode))
}

func TestReader_ListAllBadges_Ownership(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	owner := testutil.GenerateSolanaKeys(t, 1)[0]
	session := common.NewWalletSession("devnet", owner, nil)

	held := newBadgeAccount(t, "held", true)
	burned := newBadgeAccount(t, "burned", true)
	other := newBadgeAccount(t, "other", true)
	for _, account := range []*badgeprogram.BadgeAccount{held, burned, other} {
		env.addBadge(t, account, false)
	}

	env.client.AddHolding(owner, held.Mint, 1, 0)
	env.client.AddHolding(owner, burned.Mint, 0, 0)
	env.client.AddHolding(owner, other.Mint, 100, 6)

	owned, err := env.reader.OwnedMints(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, NewMintSet(held.Mint), owned)

	listing, err := env.reader.ListAllBadges(ctx, session)
	require.NoError(t, err)
	require.Len(t, listing.Badges, 3)
	for _, badge := range listing.Badges {
		assert.Equal(t, owned.Contains(badge.Mint), badge.IsOwned, badge.BadgeId)
	}
	require.Len(t, listing.Owned(), 1)
	assert.Equal(t, "held", listing.Owned()[0].BadgeId)

	// Changing the owned set only changes the ownership flags.
	recomputed := listing.WithOwnedMints(NewMintSet(other.Mint, burned.Mint))
	require.Len(t, recomputed.Badges, 3)
	for i, badge := range recomputed.Badges {
		before := listing.Badges[i]
		assert.Equal(t, before.BadgeAccount, badge.BadgeAccount)
		assert.Equal(t, before.Address, badge.Address)
		assert.Equal(t, badge.BadgeId != "held", badge.IsOwned)
	}
	assert.True(t, listing.Badges[0].IsOwned)
}

func TestReader_ListAllBadges_Errors(t *testing.T) {
	env := setup(t)
	session := common.NewWalletSession("devnet", testutil.GenerateSolanaKeys(t, 1)[0], nil)

	env.client.TokenAccountsErr = errors.New("token accounts unavailable")
	_, err := env.reader.ListAllBadges(context.Background(), session)
	assert.Error(t, err)

	env.client.ProgramAccountsErr = errors.New("rpc unavailable")
	_, err = env.reader.ListAllBadges(context.Background(), session)
	assert.Error(t, err)
}

func repeat(b byte, n int) []byte {
	res := make([]byte, n)
	for i := range res {
		res[i] = b
	}
	return res
}
