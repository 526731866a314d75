package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005

	encodingBase64     = "base64"
	encodingJSONParsed = "jsonParsed"
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

var (
	ErrNoAccountInfo = errors.New("no account info")
	ErrRateLimited   = errors.New("rate limited")
	ErrServiceError  = errors.New("service error")
)

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// KeyedAccount is an account returned from a program scan.
type KeyedAccount struct {
	PublicKey ed25519.PublicKey
	Account   AccountInfo
}

// TokenHolding is a parsed token account owned by a wallet.
type TokenHolding struct {
	Account  ed25519.PublicKey
	Mint     ed25519.PublicKey
	Owner    ed25519.PublicKey
	Amount   uint64
	Decimals uint8
}

// IsNonFungible reports whether the holding looks like an NFT the owner
// currently holds: zero decimals and a balance of at least one.
func (h TokenHolding) IsNonFungible() bool {
	return h.Decimals == 0 && h.Amount >= 1
}

// ProgramAccountFilter narrows a getProgramAccounts scan. Exactly one of the
// fields should be set.
type ProgramAccountFilter struct {
	Memcmp   *MemcmpFilter `json:"memcmp,omitempty"`
	DataSize *uint64       `json:"dataSize,omitempty"`
}

type MemcmpFilter struct {
	Offset uint64 `json:"offset"`
	Bytes  string `json:"bytes"`
}

// NewMemcmpFilter matches accounts whose data contains value at offset.
func NewMemcmpFilter(offset uint64, value []byte) ProgramAccountFilter {
	return ProgramAccountFilter{
		Memcmp: &MemcmpFilter{
			Offset: offset,
			Bytes:  base58.Encode(value),
		},
	}
}

// NewDataSizeFilter matches accounts with exactly size bytes of data.
func NewDataSizeFilter(size uint64) ProgramAccountFilter {
	return ProgramAccountFilter{DataSize: &size}
}

// Client is the read side of a Solana RPC node used by the voyage client.
// Writes go through an injected signer, never through this interface.
type Client interface {
	GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error)
	GetLatestBlockhash() (Blockhash, error)
	GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountFilter) ([]KeyedAccount, error)
	GetTokenAccountsByOwner(owner, tokenProgram ed25519.PublicKey) ([]TokenHolding, error)
}

type client struct {
	log    *logrus.Entry
	client jsonrpc.RPCClient

	blockMu   sync.RWMutex
	blockhash Blockhash
	lastWrite time.Time
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
	}
}

// call performs exactly one request. Retrying is left to the user, since a
// repeated call on the write path could duplicate an on-chain submission.
func (c *client) call(out interface{}, method string, params ...interface{}) error {
	err := c.client.CallFor(out, method, params...)
	if err == nil {
		return nil
	}
	return c.handleRpcError(method, err)
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return ErrRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errors.Wrap(ErrServiceError, rpcErr.Message)
	}
	return err
}

func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	// Randomize the refresh window so concurrent callers don't all hit the
	// node on the same tick.
	window := time.Duration(float64(2*time.Second) * (0.8 + rand.Float64()))

	c.blockMu.RLock()
	if time.Since(c.lastWrite) < window {
		hash = c.blockhash
	}
	c.blockMu.RUnlock()

	if hash != (Blockhash{}) {
		return hash, nil
	}

	var resp struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getLatestBlockhash", []interface{}{CommitmentConfirmed}); err != nil {
		return hash, errors.Wrap(err, "getLatestBlockhash() failed to send request")
	}

	hashBytes, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}
	if len(hashBytes) != len(hash) {
		return hash, errors.Errorf("invalid blockhash length: %d", len(hashBytes))
	}
	copy(hash[:], hashBytes)

	c.blockMu.Lock()
	c.blockhash = hash
	c.lastWrite = time.Now()
	c.blockMu.Unlock()

	return hash, nil
}

type rpcAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
}

func (a *rpcAccount) toAccountInfo() (info AccountInfo, err error) {
	info.Owner, err = base58.Decode(a.Owner)
	if err != nil {
		return info, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(a.Data) == 0 {
		return info, errors.New("missing account data")
	}
	info.Data, err = base64.StdEncoding.DecodeString(a.Data[0])
	if err != nil {
		return info, errors.Wrap(err, "invalid base64 encoded data")
	}

	info.Lamports = a.Lamports
	info.Executable = a.Executable
	return info, nil
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	config := struct {
		Commitment string `json:"commitment"`
		Encoding   string `json:"encoding"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   encodingBase64,
	}

	var resp struct {
		Value *rpcAccount `json:"value"`
	}
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), config); err != nil {
		return AccountInfo{}, errors.Wrap(err, "getAccountInfo() failed to send request")
	}
	if resp.Value == nil {
		return AccountInfo{}, ErrNoAccountInfo
	}

	return resp.Value.toAccountInfo()
}

func (c *client) GetProgramAccounts(program ed25519.PublicKey, commitment Commitment, filters ...ProgramAccountFilter) ([]KeyedAccount, error) {
	config := struct {
		Commitment string                 `json:"commitment"`
		Encoding   string                 `json:"encoding"`
		Filters    []ProgramAccountFilter `json:"filters,omitempty"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   encodingBase64,
		Filters:    filters,
	}

	var resp []struct {
		PubKey  string     `json:"pubkey"`
		Account rpcAccount `json:"account"`
	}
	if err := c.call(&resp, "getProgramAccounts", base58.Encode(program), config); err != nil {
		return nil, errors.Wrap(err, "getProgramAccounts() failed to send request")
	}

	accounts := make([]KeyedAccount, 0, len(resp))
	for _, raw := range resp {
		pub, err := base58.Decode(raw.PubKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid base58 encoded account address")
		}

		info, err := raw.Account.toAccountInfo()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account %s", raw.PubKey)
		}

		accounts = append(accounts, KeyedAccount{PublicKey: pub, Account: info})
	}
	return accounts, nil
}

func (c *client) GetTokenAccountsByOwner(owner, tokenProgram ed25519.PublicKey) ([]TokenHolding, error) {
	programFilter := struct {
		ProgramID string `json:"programId"`
	}{
		ProgramID: base58.Encode(tokenProgram),
	}
	config := struct {
		Encoding   string `json:"encoding"`
		Commitment string `json:"commitment"`
	}{
		Encoding:   encodingJSONParsed,
		Commitment: confirmationStatusConfirmed,
	}

	var resp struct {
		Value []struct {
			PubKey  string `json:"pubkey"`
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							Mint        string `json:"mint"`
							Owner       string `json:"owner"`
							TokenAmount struct {
								Amount   string `json:"amount"`
								Decimals uint8  `json:"decimals"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getTokenAccountsByOwner", base58.Encode(owner), programFilter, config); err != nil {
		return nil, errors.Wrap(err, "getTokenAccountsByOwner() failed to send request")
	}

	holdings := make([]TokenHolding, 0, len(resp.Value))
	for _, raw := range resp.Value {
		info := raw.Account.Data.Parsed.Info

		var holding TokenHolding
		var err error
		if holding.Account, err = base58.Decode(raw.PubKey); err != nil {
			return nil, errors.Wrap(err, "invalid base58 encoded token account")
		}
		if holding.Mint, err = base58.Decode(info.Mint); err != nil {
			return nil, errors.Wrap(err, "invalid base58 encoded mint")
		}
		if holding.Owner, err = base58.Decode(info.Owner); err != nil {
			return nil, errors.Wrap(err, "invalid base58 encoded owner")
		}
		if holding.Amount, err = strconv.ParseUint(info.TokenAmount.Amount, 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid token amount for %s", raw.PubKey)
		}
		holding.Decimals = info.TokenAmount.Decimals

		holdings = append(holdings, holding)
	}
	return holdings, nil
}
