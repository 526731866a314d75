package badge

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captain-sol/voyage-client/pkg/solana/anchor"
)

func TestBadgeAccount_DiscriminatorMatchesAnchor(t *testing.T) {
	assert.Equal(t, anchor.AccountDiscriminator("Badge"), BadgeAccountDiscriminator)
}

func TestBadgeAccount_V2RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name        string
		description string
		uri         string
	}{
		{"Explorer", "First voyage completed", "https://example.com/badge.json"},
		{"探検家", "Première étape ✓", "ipfs://bafy☉"},
		{"", "", ""},
		{strings.Repeat("n", 32), strings.Repeat("d", 200), strings.Repeat("u", 200)},
	} {
		expected := &BadgeAccount{
			Creator:     bytes.Repeat([]byte{7}, 32),
			Price:       1_500_000_000,
			Mint:        bytes.Repeat([]byte{9}, 32),
			BadgeId:     "arm7k2p9q",
			Name:        tc.name,
			Description: tc.description,
			Uri:         tc.uri,
			IsActive:    false,
			Bump:        254,
		}

		var actual BadgeAccount
		require.NoError(t, actual.Unmarshal(expected.Marshal()))
		assert.Equal(t, expected, &actual)

		decoded, err := DecodeBadgeAccount(expected.Marshal())
		require.NoError(t, err)
		assert.False(t, decoded.IsLegacy)
		assert.True(t, decoded.IsPausable())
	}
}

func TestBadgeAccount_V2ToleratesZeroPadding(t *testing.T) {
	expected := &BadgeAccount{
		Creator:  make([]byte, 32),
		Mint:     make([]byte, 32),
		BadgeId:  "padded",
		IsActive: true,
	}

	decoded, err := DecodeBadgeAccount(append(expected.Marshal(), make([]byte, 64)...))
	require.NoError(t, err)
	assert.Equal(t, expected, decoded)
}

func TestBadgeAccount_LegacyLayout(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	buf.Write(BadgeAccountDiscriminator)
	buf.Write(make([]byte, 32))
	binary.Write(buf, binary.LittleEndian, uint64(1000000000))
	buf.Write(bytes.Repeat([]byte{0x01}, 32))
	binary.Write(buf, binary.LittleEndian, uint32(5))
	buf.WriteString("test1")
	binary.Write(buf, binary.LittleEndian, uint32(len("https://x")))
	buf.WriteString("https://x")
	buf.WriteByte(3)

	decoded, err := DecodeBadgeAccount(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, make([]byte, 32), []byte(decoded.Creator))
	assert.EqualValues(t, 1000000000, decoded.Price)
	assert.Equal(t, bytes.Repeat([]byte{0x01}, 32), []byte(decoded.Mint))
	assert.Equal(t, "test1", decoded.BadgeId)
	assert.Equal(t, "test1", decoded.Name)
	assert.Equal(t, "https://x", decoded.Uri)
	assert.Equal(t, LegacyDescription, decoded.Description)
	assert.True(t, decoded.IsActive)
	assert.EqualValues(t, 3, decoded.Bump)
	assert.True(t, decoded.IsLegacy)
	assert.False(t, decoded.IsPausable())

	// The legacy encoder produces the same bytes.
	assert.Equal(t, buf.Bytes(), decoded.MarshalLegacy())

	// Trailing bytes after the bump are ignored.
	withTrailing, err := DecodeBadgeAccount(append(buf.Bytes(), 0xde, 0xad))
	require.NoError(t, err)
	assert.Equal(t, decoded, withTrailing)
}

func TestBadgeAccount_PaddedLegacyLayout(t *testing.T) {
	legacy := &BadgeAccount{
		Creator: make([]byte, 32),
		Price:   1000000000,
		Mint:    bytes.Repeat([]byte{0x01}, 32),
		BadgeId: "test1",
		Uri:     "https://x",
	}

	for _, bump := range []uint8{0, 3, 255} {
		legacy.Bump = bump

		for _, padding := range []int{1, 16, 64, 256} {
			data := append(legacy.MarshalLegacy(), make([]byte, padding)...)

			decoded, err := DecodeBadgeAccount(data)
			require.NoError(t, err)
			assert.True(t, decoded.IsLegacy, "bump=%d padding=%d", bump, padding)
			assert.False(t, decoded.IsPausable())
			assert.True(t, decoded.IsActive)
			assert.Equal(t, "test1", decoded.Name)
			assert.Equal(t, "https://x", decoded.Uri)
			assert.Equal(t, LegacyDescription, decoded.Description)
			assert.Equal(t, bump, decoded.Bump)
		}
	}
}

func TestBadgeAccount_V2WithSmallBumpIsNotLegacy(t *testing.T) {
	// The v1 reading of these bytes ends at the first byte of the description
	// length, and non-zero bytes follow it.
	for _, expected := range []*BadgeAccount{
		{Creator: make([]byte, 32), Mint: make([]byte, 32), BadgeId: "a", Name: "n", Uri: "u", Bump: 0},
		{Creator: make([]byte, 32), Mint: make([]byte, 32), BadgeId: "a", Name: "n", Description: "d", IsActive: false, Bump: 0},
	} {
		decoded, err := DecodeBadgeAccount(append(expected.Marshal(), make([]byte, 32)...))
		require.NoError(t, err)
		assert.Equal(t, expected, decoded)
	}
}

func TestBadgeAccount_BothLayoutsFail(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		make([]byte, 10),
		// v1 sized, but the badge id length runs past the end.
		append(append(make([]byte, 80), 0xff, 0, 0, 0), make([]byte, 10)...),
	} {
		_, err := DecodeBadgeAccount(data)
		require.Error(t, err)
		assert.Equal(t, ErrInvalidAccountData, errors.Cause(err))
	}
}

func TestBadgeAccount_V2Strictness(t *testing.T) {
	valid := (&BadgeAccount{
		Creator:     make([]byte, 32),
		Mint:        make([]byte, 32),
		BadgeId:     "id",
		Name:        "name",
		Description: "desc",
		Uri:         "uri",
		IsActive:    true,
		Bump:        1,
	}).Marshal()

	isActiveOffset := len(valid) - 2

	badBool := append([]byte{}, valid...)
	badBool[isActiveOffset] = 2
	var account BadgeAccount
	assert.Error(t, account.Unmarshal(badBool))

	trailing := append(append([]byte{}, valid...), 1)
	assert.Error(t, account.Unmarshal(trailing))

	badUTF8 := append([]byte{}, valid...)
	nameOffset := 8 + 32 + 8 + 32 + 4 + len("id") + 4
	badUTF8[nameOffset] = 0xff
	assert.Error(t, account.Unmarshal(badUTF8))

	for i := 0; i < len(valid); i++ {
		assert.Error(t, account.Unmarshal(valid[:i]))
	}
}

func TestBadgeAccount_String(t *testing.T) {
	account := &BadgeAccount{
		Creator: make(ed25519.PublicKey, 32),
		Mint:    make(ed25519.PublicKey, 32),
		BadgeId: "abc",
	}
	assert.Contains(t, account.String(), "badge_id=abc")
}
