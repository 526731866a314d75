package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     int             `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// newTestRPCServer answers every request through handler, which returns
// either a result or a JSON-RPC error object.
func newTestRPCServer(t *testing.T, handler func(req rpcRequest) (interface{}, map[string]interface{})) (*httptest.Server, *[]rpcRequest) {
	var seen []rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		seen = append(seen, req)

		result, rpcErr := handler(req)
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
		}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestClient_GetProgramAccounts(t *testing.T) {
	keys := generateKeys(t, 3)
	program, first, second := public(keys[0]), public(keys[1]), public(keys[2])

	server, seen := newTestRPCServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return []interface{}{
			map[string]interface{}{
				"pubkey": base58.Encode(first),
				"account": map[string]interface{}{
					"lamports": 10,
					"owner":    base58.Encode(program),
					"data":     []string{base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), "base64"},
				},
			},
			map[string]interface{}{
				"pubkey": base58.Encode(second),
				"account": map[string]interface{}{
					"lamports": 20,
					"owner":    base58.Encode(program),
					"data":     []string{"", "base64"},
				},
			},
		}, nil
	})

	accounts, err := New(server.URL).GetProgramAccounts(program, CommitmentConfirmed, NewMemcmpFilter(0, []byte{9, 9}))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.EqualValues(t, first, accounts[0].PublicKey)
	assert.Equal(t, []byte{1, 2, 3}, accounts[0].Account.Data)
	assert.EqualValues(t, 10, accounts[0].Account.Lamports)
	assert.EqualValues(t, program, accounts[0].Account.Owner)
	assert.EqualValues(t, second, accounts[1].PublicKey)
	assert.Empty(t, accounts[1].Account.Data)

	require.Len(t, *seen, 1)
	assert.Equal(t, "getProgramAccounts", (*seen)[0].Method)

	var params []json.RawMessage
	require.NoError(t, json.Unmarshal((*seen)[0].Params, &params))
	require.Len(t, params, 2)

	var config struct {
		Encoding string `json:"encoding"`
		Filters  []struct {
			Memcmp struct {
				Offset uint64 `json:"offset"`
				Bytes  string `json:"bytes"`
			} `json:"memcmp"`
		} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(params[1], &config))
	assert.Equal(t, "base64", config.Encoding)
	require.Len(t, config.Filters, 1)
	assert.Equal(t, base58.Encode([]byte{9, 9}), config.Filters[0].Memcmp.Bytes)
}

func TestClient_GetTokenAccountsByOwner(t *testing.T) {
	keys := generateKeys(t, 5)
	owner, tokenProgram, nftMint, fungibleMint, tokenAccount := public(keys[0]), public(keys[1]), public(keys[2]), public(keys[3]), public(keys[4])

	holding := func(mint ed25519.PublicKey, amount string, decimals int) map[string]interface{} {
		return map[string]interface{}{
			"pubkey": base58.Encode(tokenAccount),
			"account": map[string]interface{}{
				"data": map[string]interface{}{
					"program": "spl-token-2022",
					"parsed": map[string]interface{}{
						"type": "account",
						"info": map[string]interface{}{
							"mint":  base58.Encode(mint),
							"owner": base58.Encode(owner),
							"tokenAmount": map[string]interface{}{
								"amount":   amount,
								"decimals": decimals,
							},
						},
					},
				},
			},
		}
	}

	server, seen := newTestRPCServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": []interface{}{
				holding(nftMint, "1", 0),
				holding(fungibleMint, "5000", 6),
				holding(nftMint, "0", 0),
			},
		}, nil
	})

	holdings, err := New(server.URL).GetTokenAccountsByOwner(owner, tokenProgram)
	require.NoError(t, err)
	require.Len(t, holdings, 3)

	assert.EqualValues(t, nftMint, holdings[0].Mint)
	assert.EqualValues(t, owner, holdings[0].Owner)
	assert.True(t, holdings[0].IsNonFungible())
	assert.False(t, holdings[1].IsNonFungible())
	assert.EqualValues(t, 5000, holdings[1].Amount)
	assert.False(t, holdings[2].IsNonFungible())

	var params []json.RawMessage
	require.NoError(t, json.Unmarshal((*seen)[0].Params, &params))
	require.Len(t, params, 3)
	assert.JSONEq(t, `{"programId":"`+base58.Encode(tokenProgram)+`"}`, string(params[1]))
}

func TestClient_GetAccountInfo(t *testing.T) {
	keys := generateKeys(t, 2)

	server, _ := newTestRPCServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		var params []json.RawMessage
		var address string
		assert.NoError(t, json.Unmarshal(req.Params, &params))
		assert.NoError(t, json.Unmarshal(params[0], &address))
		if address == base58.Encode(public(keys[1])) {
			return map[string]interface{}{"value": nil}, nil
		}

		return map[string]interface{}{
			"value": map[string]interface{}{
				"lamports": 99,
				"owner":    base58.Encode(public(keys[1])),
				"data":     []string{base64.StdEncoding.EncodeToString([]byte("hello")), "base64"},
			},
		}, nil
	})

	c := New(server.URL)

	info, err := c.GetAccountInfo(public(keys[0]), CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), info.Data)
	assert.EqualValues(t, 99, info.Lamports)

	_, err = c.GetAccountInfo(public(keys[1]), CommitmentConfirmed)
	assert.Equal(t, ErrNoAccountInfo, err)
}

func TestClient_GetLatestBlockhash(t *testing.T) {
	var expected Blockhash
	for i := range expected {
		expected[i] = byte(i)
	}

	server, seen := newTestRPCServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": map[string]interface{}{
				"blockhash":            base58.Encode(expected[:]),
				"lastValidBlockHeight": 100,
			},
		}, nil
	})

	c := New(server.URL)

	actual, err := c.GetLatestBlockhash()
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	// Served from the cache window.
	actual, err = c.GetLatestBlockhash()
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
	assert.Len(t, *seen, 1)
}

func TestClient_ErrorsAreNotRetried(t *testing.T) {
	keys := generateKeys(t, 1)

	for _, tc := range []struct {
		code     int
		expected error
	}{
		{429, ErrRateLimited},
		{503, ErrServiceError},
		{rpcNodeUnhealthyCode, ErrServiceError},
	} {
		server, seen := newTestRPCServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
			return nil, map[string]interface{}{"code": tc.code, "message": "nope"}
		})

		_, err := New(server.URL).GetProgramAccounts(public(keys[0]), CommitmentConfirmed)
		require.Error(t, err)
		assert.Equal(t, tc.expected, errors.Cause(err))
		assert.Len(t, *seen, 1)
	}
}
