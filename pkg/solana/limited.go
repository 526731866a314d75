package solana

import (
	"crypto/ed25519"

	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/rate"
)

type limitedClient struct {
	log     *logrus.Entry
	client  Client
	limiter rate.Limiter
}

// NewLimitedClient wraps client so that calls over limiter's rate fail fast
// with ErrRateLimited instead of reaching the node. Each RPC method is
// limited separately.
func NewLimitedClient(client Client, limiter rate.Limiter) Client {
	return &limitedClient{
		log:     logrus.StandardLogger().WithField("type", "solana/limited_client"),
		client:  client,
		limiter: limiter,
	}
}

func (c *limitedClient) allow(method string) error {
	if c.limiter.Allow(method) {
		return nil
	}
	c.log.WithField("method", method).Debug("rate limited locally")
	return ErrRateLimited
}

func (c *limitedClient) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	if err := c.allow("getAccountInfo"); err != nil {
		return AccountInfo{}, err
	}
	return c.client.GetAccountInfo(account, commitment)
}

func (c *limitedClient) GetLatestBlockhash() (Blockhash, error) {
	if err := c.allow("getLatestBlockhash"); err != nil {
		return Blockhash{}, err
	}
	return c.client.GetLatestBlockhash()
}

func (c *limitedClient) GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountFilter) ([]KeyedAccount, error) {
	if err := c.allow("getProgramAccounts"); err != nil {
		return nil, err
	}
	return c.client.GetProgramAccounts(program, commitment, filters...)
}

func (c *limitedClient) GetTokenAccountsByOwner(owner, tokenProgram ed25519.PublicKey) ([]TokenHolding, error) {
	if err := c.allow("getTokenAccountsByOwner"); err != nil {
		return nil, err
	}
	return c.client.GetTokenAccountsByOwner(owner, tokenProgram)
}
