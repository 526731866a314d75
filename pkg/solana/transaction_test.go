package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Generated by the Rust SDK transaction tests, re-signed with a keypair whose
// public half matches the seed.
//
// Reference: https://github.com/solana-labs/solana/blob/14339dec0a960e8161d1165b6a8e5cfb73e78f23/sdk/src/transaction.rs#L523
const rustGeneratedAdjusted = "ATMfBMZ8phHEheLph8K9TJhRKhnE4qNZvWiXdUdJRmlTCRsQjWmW2CkQJeRHBCcsqFm2gynjL40M9mTe0Dxp4QIBAAEDfEya6wnC7f3Cv53qnOEywwIJ928rIdqAlfXYI1adXroBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

func TestTransaction_CrossImpl(t *testing.T) {
	keypair := ed25519.NewKeyFromSeed([]byte{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75})
	programID := ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4,
		2, 2, 2}
	to := ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}

	tx := NewTransaction(
		keypair.Public().(ed25519.PublicKey),
		NewInstruction(
			programID,
			[]byte{1, 2, 3},
			NewAccountMeta(keypair.Public().(ed25519.PublicKey), true),
			NewAccountMeta(to, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))
	assert.Equal(t, rustGeneratedAdjusted, base64.StdEncoding.EncodeToString(tx.Marshal()))

	var decoded Transaction
	require.NoError(t, decoded.Unmarshal(tx.Marshal()))
	assert.Equal(t, tx.Marshal(), decoded.Marshal())
}

func TestTransaction_AccountOrdering(t *testing.T) {
	keys := generateKeys(t, 5)
	payer, creator, badge, mint, program := public(keys[0]), public(keys[1]), public(keys[2]), public(keys[3]), public(keys[4])

	tx := NewTransaction(
		payer,
		NewInstruction(
			program,
			[]byte{9},
			NewReadonlyAccountMeta(mint, false),
			NewAccountMeta(badge, false),
			NewReadonlyAccountMeta(creator, true),
			NewAccountMeta(payer, true),
		),
	)

	require.Len(t, tx.Message.Accounts, 5)
	assert.EqualValues(t, payer, tx.Message.Accounts[0])
	assert.EqualValues(t, creator, tx.Message.Accounts[1])
	assert.EqualValues(t, badge, tx.Message.Accounts[2])
	assert.EqualValues(t, mint, tx.Message.Accounts[3])
	assert.EqualValues(t, program, tx.Message.Accounts[4])

	assert.EqualValues(t, 2, tx.Message.Header.NumSignatures)
	assert.EqualValues(t, 1, tx.Message.Header.NumReadonlySigned)
	assert.EqualValues(t, 2, tx.Message.Header.NumReadOnly)
	assert.Len(t, tx.Signatures, 2)

	assert.EqualValues(t, 4, tx.Message.Instructions[0].ProgramIndex)
	assert.Equal(t, []byte{3, 2, 1, 0}, tx.Message.Instructions[0].Accounts)
	assert.EqualValues(t, payer, tx.Payer())
	assert.Equal(t, []ed25519.PublicKey{payer, creator}, tx.RequiredSigners())
}

func TestTransaction_DuplicateAccountsArePromoted(t *testing.T) {
	keys := generateKeys(t, 3)
	payer, shared, program := public(keys[0]), public(keys[1]), public(keys[2])

	tx := NewTransaction(
		payer,
		NewInstruction(program, nil, NewReadonlyAccountMeta(shared, false)),
		NewInstruction(program, nil, NewAccountMeta(shared, false)),
	)

	require.Len(t, tx.Message.Accounts, 3)
	assert.EqualValues(t, shared, tx.Message.Accounts[1])
	assert.EqualValues(t, 1, tx.Message.Header.NumReadOnly)
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, tx.Message.Instructions[0].Accounts, tx.Message.Instructions[1].Accounts)
}

func TestTransaction_SignRejectsUnknownSigner(t *testing.T) {
	keys := generateKeys(t, 3)

	tx := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), nil))
	assert.Error(t, tx.Sign(keys[2]))
	assert.Error(t, tx.Sign(keys[1]))
	assert.NoError(t, tx.Sign(keys[0]))
}

func TestTransaction_UnmarshalRejectsBadIndexes(t *testing.T) {
	keys := generateKeys(t, 2)

	tx := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), nil, NewAccountMeta(public(keys[0]), true)))
	tx.Message.Instructions[0].ProgramIndex = 2
	assert.Error(t, tx.Unmarshal(tx.Marshal()))

	tx = NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), nil, NewAccountMeta(public(keys[0]), true)))
	tx.Message.Instructions[0].Accounts = []byte{2}
	assert.Error(t, tx.Unmarshal(tx.Marshal()))

	var m Message
	assert.Error(t, m.Unmarshal(nil))
	assert.Error(t, m.Unmarshal([]byte{0x80, 1, 0, 0}))
}

func TestTransaction_Blockhash(t *testing.T) {
	keys := generateKeys(t, 2)
	tx := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}))

	var bh Blockhash
	bh[0] = 7
	tx.SetBlockhash(bh)
	require.NoError(t, tx.Sign(keys[0]))

	var decoded Transaction
	require.NoError(t, decoded.Unmarshal(tx.Marshal()))
	assert.Equal(t, bh, decoded.Message.RecentBlockhash)
	assert.True(t, ed25519.Verify(public(keys[0]), decoded.Message.Marshal(), decoded.Signature()))
}

func generateKeys(t *testing.T, amount int) []ed25519.PrivateKey {
	keys := make([]ed25519.PrivateKey, amount)
	for i := range keys {
		_, priv, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = priv
	}
	return keys
}

func public(key ed25519.PrivateKey) ed25519.PublicKey {
	return key.Public().(ed25519.PublicKey)
}
