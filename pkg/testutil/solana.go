package testutil

import (
	"bytes"
	"crypto/ed25519"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/captain-sol/voyage-client/pkg/solana"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// FakeSolanaClient is an in-memory solana.Client. Program accounts are
// returned in insertion order and filters are applied the way an RPC node
// applies them.
type FakeSolanaClient struct {
	mu sync.Mutex

	programAccounts map[string][]solana.KeyedAccount
	holdings        map[string][]solana.TokenHolding
	blockhash       solana.Blockhash

	ProgramAccountsErr error
	TokenAccountsErr   error
	BlockhashErr       error

	ProgramAccountCalls int
	TokenAccountCalls   int
}

func NewFakeSolanaClient() *FakeSolanaClient {
	return &FakeSolanaClient{
		programAccounts: make(map[string][]solana.KeyedAccount),
		holdings:        make(map[string][]solana.TokenHolding),
	}
}

// AddProgramAccount stores data at address, owned by program.
func (c *FakeSolanaClient) AddProgramAccount(program, address ed25519.PublicKey, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := base58.Encode(program)
	c.programAccounts[key] = append(c.programAccounts[key], solana.KeyedAccount{
		PublicKey: address,
		Account: solana.AccountInfo{
			Data:     data,
			Owner:    program,
			Lamports: 1,
		},
	})
}

// AddHolding records a token account for owner with the given mint balance.
func (c *FakeSolanaClient) AddHolding(owner, mint ed25519.PublicKey, amount uint64, decimals uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := base58.Encode(owner)
	c.holdings[key] = append(c.holdings[key], solana.TokenHolding{
		Mint:     mint,
		Owner:    owner,
		Amount:   amount,
		Decimals: decimals,
	})
}

func (c *FakeSolanaClient) SetBlockhash(hash solana.Blockhash) {
	c.mu.Lock()
	c.blockhash = hash
	c.mu.Unlock()
}

func (c *FakeSolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, accounts := range c.programAccounts {
		for _, keyed := range accounts {
			if bytes.Equal(keyed.PublicKey, account) {
				return keyed.Account, nil
			}
		}
	}
	return solana.AccountInfo{}, solana.ErrNoAccountInfo
}

func (c *FakeSolanaClient) GetLatestBlockhash() (solana.Blockhash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.BlockhashErr != nil {
		return solana.Blockhash{}, c.BlockhashErr
	}
	return c.blockhash, nil
}

func (c *FakeSolanaClient) GetProgramAccounts(program ed25519.PublicKey, _ solana.Commitment, filters ...solana.ProgramAccountFilter) ([]solana.KeyedAccount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ProgramAccountCalls++
	if c.ProgramAccountsErr != nil {
		return nil, c.ProgramAccountsErr
	}

	var result []solana.KeyedAccount
	for _, keyed := range c.programAccounts[base58.Encode(program)] {
		if matchesFilters(keyed.Account.Data, filters) {
			result = append(result, keyed)
		}
	}
	return result, nil
}

func (c *FakeSolanaClient) GetTokenAccountsByOwner(owner, _ ed25519.PublicKey) ([]solana.TokenHolding, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.TokenAccountCalls++
	if c.TokenAccountsErr != nil {
		return nil, c.TokenAccountsErr
	}
	return append([]solana.TokenHolding(nil), c.holdings[base58.Encode(owner)]...), nil
}

func matchesFilters(data []byte, filters []solana.ProgramAccountFilter) bool {
	for _, filter := range filters {
		if filter.DataSize != nil && uint64(len(data)) != *filter.DataSize {
			return false
		}
		if filter.Memcmp != nil {
			expected, err := base58.Decode(filter.Memcmp.Bytes)
			if err != nil {
				return false
			}
			start := int(filter.Memcmp.Offset)
			if start+len(expected) > len(data) || !bytes.Equal(data[start:start+len(expected)], expected) {
				return false
			}
		}
	}
	return true
}
